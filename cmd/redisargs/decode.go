package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmez/redisargs-go/internal/args"
	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/output"
	"github.com/cosmez/redisargs-go/internal/protocol"
	"github.com/cosmez/redisargs-go/internal/resp"
	"github.com/cosmez/redisargs-go/internal/serializer"
)

func newDecodeCmd() *cobra.Command {
	var codec string

	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "List the arguments of RESP requests read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			in := io.Reader(os.Stdin)
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					fmt.Fprintf(os.Stderr, "Open error: %v\n", err)
					os.Exit(1)
				}
				defer f.Close()
				in = f
			}

			n, err := decodeRequests(os.Stdout, in, codec, printOpts())
			logger.Debug().Int("requests", n).Msg("decoded")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Decode error: %v\n", err)
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&codec, "codec", "", "Reverse a codec on the last argument (base64, gzip, snappy)")

	return cmd
}

// decodeRequests prints every request in r and returns how many were read.
func decodeRequests(w io.Writer, r io.Reader, codec string, opts output.PrintOpts) (int, error) {
	var ser serializer.Serializer
	if codec != "" {
		var err error
		if ser, err = serializer.Get(codec); err != nil {
			return 0, err
		}
	}

	br := bufio.NewReader(r)
	for n := 0; ; n++ {
		raw, err := resp.ReadCommand(br)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("request %d: %w", n+1, err)
		}

		if ser != nil && len(raw) > 1 {
			last := len(raw) - 1
			if raw[last], err = ser.Deserialize(raw[last]); err != nil {
				return n, fmt.Errorf("request %d: %s: %w", n+1, codec, err)
			}
		}

		if n > 0 {
			fmt.Fprintln(w)
		}
		output.PrintArguments(w, toArguments(raw), opts)
	}
}

func toArguments(raw [][]byte) *command.Arguments {
	a := command.New(protocol.Command(raw[0]))
	for _, b := range raw[1:] {
		a.Add(args.FromBytes(b))
	}
	return a
}
