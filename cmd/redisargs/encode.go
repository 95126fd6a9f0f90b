package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/output"
	"github.com/cosmez/redisargs-go/internal/pipe"
)

type encodeOpts struct {
	codec    string
	out      string
	showArgs bool
	literal  bool
	raw      bool
}

func newEncodeCmd() *cobra.Command {
	var opts encodeOpts

	cmd := &cobra.Command{
		Use:   "encode COMMAND [ARG...]",
		Short: "Encode a command as a RESP request",
		Example: `  redisargs encode ZRANGE scores 0 -1 REV
  redisargs encode --codec gzip SET session:1 '{"user":1}'
  redisargs encode --out load.resp SET k v && redis-cli --pipe < load.resp`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reg := loadRegistry()

			parsed, err := command.Parse(commandLine(args, opts.codec), reg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
				os.Exit(1)
			}

			if reg.IsDangerous(parsed.Name, parsed.Args...) {
				output.PrintWarning(os.Stderr,
					fmt.Sprintf("Warning: %s is considered dangerous to execute.", parsed.Name), printOpts())
			}

			if opts.out != "" {
				if err := appendToFile(opts.out, parsed.Arguments); err != nil {
					fmt.Fprintf(os.Stderr, "Write error: %v\n", err)
					os.Exit(1)
				}
			}

			printEncoded(os.Stdout, parsed, opts)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&opts.codec, "codec", "", "Transform the SET value through a codec (base64, gzip, snappy)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Append the raw request to a file for redis-cli --pipe")
	cmd.Flags().BoolVarP(&opts.showArgs, "args", "a", false, "List the arguments below the wire output")
	cmd.Flags().BoolVarP(&opts.literal, "literal", "l", false, "Print the request as a single escaped line")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Write the raw request bytes to stdout")

	return cmd
}

// commandLine rebuilds a text command from already split arguments. Every
// argument is quoted so the tokenizer returns the exact bytes again.
func commandLine(args []string, codec string) string {
	var sb strings.Builder
	sb.WriteString(args[0])
	for _, a := range args[1:] {
		sb.WriteByte(' ')
		sb.WriteString(output.Quote([]byte(a)))
	}
	if codec != "" {
		sb.WriteString(" #:")
		sb.WriteString(codec)
	}
	return sb.String()
}

func printEncoded(w io.Writer, parsed *command.ParsedCommand, opts encodeOpts) {
	popts := printOpts()
	switch {
	case opts.raw:
		w.Write(parsed.CommandBytes)
		return
	case opts.literal:
		fmt.Fprintln(w, output.Literal(parsed.CommandBytes))
	default:
		output.PrintWire(w, parsed.CommandBytes, popts)
	}
	if opts.showArgs {
		fmt.Fprintln(w)
		output.PrintArguments(w, parsed.Arguments, popts)
	}
}

// appendToFile writes a through a pipe.Pipe at the end of path.
func appendToFile(path string, a *command.Arguments) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	p := pipe.New(f, pipe.WithLogger(logger))
	if err := p.Send(a); err != nil {
		return err
	}
	if err := p.Flush(); err != nil {
		return err
	}
	_, n := p.Stats()
	logger.Info().Str("file", path).Int64("bytes", n).Msg("request appended")
	return nil
}
