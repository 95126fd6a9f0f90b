package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/output"
)

var colorError = color.New(color.FgRed)

// handleLine parses and handles one REPL line. It returns false when the
// session should end.
func (s *session) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	parsed, err := command.Parse(line, s.reg)
	if err != nil {
		s.errorf("Parse error: %v", err)
		return true
	}
	if parsed.Name == "" {
		return true
	}

	switch parsed.Name {
	case "EXIT":
		return false
	case "CLEAR":
		fmt.Fprint(s.out, "\033[2J\033[H")
	case "HELP":
		s.handleHelp(parsed)
	case "ARGS":
		s.showArgs = !s.showArgs
		state := "off"
		if s.showArgs {
			state = "on"
		}
		fmt.Fprintf(s.out, "Argument listing %s\n", state)
	default:
		s.handleEncode(parsed)
	}
	return true
}

func (s *session) handleHelp(parsed *command.ParsedCommand) {
	if len(parsed.Args) == 0 {
		s.warnf("Usage: HELP <command>")
		return
	}
	name := strings.ToUpper(parsed.Args[0])
	doc := s.reg.Lookup(name, parsed.Args[1:])
	if doc == nil {
		s.errorf("Unknown command: %s", name)
		return
	}
	fmt.Fprintf(s.out, "%s %s\n", doc.Command, command.Hint(doc))
	fmt.Fprintln(s.out, doc.Summary)
	if doc.Since != "" {
		fmt.Fprintf(s.out, "Since: %s\n", doc.Since)
	}
}

func (s *session) handleEncode(parsed *command.ParsedCommand) {
	opts := printOpts()
	if s.reg.IsDangerous(parsed.Name, parsed.Args...) {
		s.warnf("Warning: %s is considered dangerous to execute.", parsed.Name)
	}
	if parsed.Pipe != "" {
		s.warnf("Ignoring pipe to %q: nothing is executed.", parsed.Pipe)
	}

	output.PrintWire(s.out, parsed.CommandBytes, opts)
	if s.showArgs {
		fmt.Fprintln(s.out)
		output.PrintArguments(s.out, parsed.Arguments, opts)
	}

	if s.sink == nil {
		return
	}
	if err := s.sink.Send(parsed.Arguments); err != nil {
		s.errorf("Write error: %v", err)
		return
	}
	if err := s.sink.Flush(); err != nil {
		s.errorf("Write error: %v", err)
	}
}

func (s *session) warnf(format string, a ...any) {
	output.PrintWarning(s.out, fmt.Sprintf(format, a...), printOpts())
}

func (s *session) errorf(format string, a ...any) {
	colorError.Fprintf(s.out, format+"\n", a...)
}
