package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/pipe"
)

const prompt = "redisargs> "

// replCompleter implements readline.AutoCompleter for tab completion.
type replCompleter struct {
	reg *command.Registry
}

// Do returns completion candidates based on the current input.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	text := string(line[:pos])
	// Only complete the first word
	if strings.Contains(text, " ") {
		return nil, 0
	}

	seen := make(map[string]bool)
	for _, match := range c.reg.GetCommands(text) {
		// Compound names complete their first word only.
		word, _, _ := strings.Cut(match, " ")
		if len(word) < len(text) || seen[word] {
			continue
		}
		seen[word] = true
		newLine = append(newLine, []rune(strings.ToUpper(word[len(text):])+" "))
	}
	return newLine, len(text)
}

// replHinter implements readline.Painter and readline.Listener to display
// the argument synopsis below the input line. Paint only clears stale
// hints; OnChange writes the hint straight to stdout after readline has
// positioned the cursor, so readline's cursor math is never affected.
type replHinter struct {
	reg       *command.Registry
	out       io.Writer
	promptLen int
	termWidth int
}

// copyAppend returns line + suffix without touching line's backing array.
func copyAppend(line []rune, suffix string) []rune {
	sfx := []rune(suffix)
	out := make([]rune, len(line)+len(sfx))
	copy(out, line)
	copy(out[len(line):], sfx)
	return out
}

func (h *replHinter) Paint(line []rune, pos int) []rune {
	return copyAppend(line, "\033[J")
}

func (h *replHinter) OnChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	if len(line) == 0 {
		return nil, 0, false
	}

	text := string(line)
	name, rest, hasArgs := strings.Cut(text, " ")

	// Upper-case a known command word as soon as it is typed.
	if name != "" {
		upper := strings.ToUpper(name)
		if name != upper && h.reg.Get(upper) != nil {
			return []rune(upper + text[len(name):]), pos, true
		}
	}

	if !hasArgs || name == "" {
		return nil, 0, false
	}

	doc := h.reg.Lookup(strings.ToUpper(name), strings.Fields(rest))
	if doc == nil {
		return nil, 0, false
	}

	hint := strings.TrimSpace(doc.Command + " " + command.Hint(doc))
	col := h.promptLen + pos

	hintWidth := 2 + len(hint) + 3 + len(doc.Summary) // "  <hint> - <summary>"
	hintRows := 1
	if h.termWidth > 0 {
		hintRows = (hintWidth + h.termWidth - 1) / h.termWidth
	}

	// \n\r clears a row below, \033[<n>A and \033[<c>C restore the cursor.
	fmt.Fprintf(h.out, "\n\r\033[K  \033[36m%s\033[0m\033[34m - %s\033[0m\033[%dA\r\033[%dC",
		hint, doc.Summary, hintRows, col)

	return nil, 0, false
}

// session is the state the REPL handlers share.
type session struct {
	reg      *command.Registry
	out      io.Writer
	sink     *pipe.Pipe // nil unless --out is given
	showArgs bool
}

func newReplCmd() *cobra.Command {
	var (
		out      string
		showArgs bool
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively encode commands",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := &session{reg: loadRegistry(), out: os.Stdout, showArgs: showArgs}
			if out != "" {
				f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Open error: %v\n", err)
					os.Exit(1)
				}
				defer f.Close()
				s.sink = pipe.New(f, pipe.WithLogger(logger))
			}
			runRepl(s)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Also append every request to a file for redis-cli --pipe")
	cmd.Flags().BoolVarP(&showArgs, "args", "a", false, "List the arguments below the wire output")

	return cmd
}

func runRepl(s *session) {
	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, ".redisargs_history")

	tw, _, _ := term.GetSize(int(os.Stdout.Fd()))
	hinter := &replHinter{reg: s.reg, out: os.Stdout, promptLen: len(prompt), termWidth: tw}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    &replCompleter{reg: s.reg},
		Painter:         hinter,
		Listener:        hinter,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		if !s.handleLine(line) {
			break
		}

		// Refresh terminal width in case the window was resized.
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			hinter.termWidth = w
		}
	}

	if s.sink != nil {
		commands, n := s.sink.Stats()
		color.Green("Wrote %d requests (%d bytes)", commands, n)
	}
}
