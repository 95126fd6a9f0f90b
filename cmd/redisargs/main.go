package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/output"
)

var (
	version = "dev" // set at build time via -ldflags "-X main.version=..."

	debug   bool
	noColor bool

	logger zerolog.Logger
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "redisargs",
		Short:   "Build Redis commands and show their RESP encoding",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
			if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
				color.NoColor = true
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newZRangeCmd(),
		newDecodeCmd(),
		newReplCmd(),
	)
	return rootCmd
}

func setupLogger() {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// printOpts returns the rendering options for stdout.
func printOpts() output.PrintOpts {
	return output.PrintOpts{Color: !color.NoColor}
}

func loadRegistry() *command.Registry {
	reg, err := command.NewRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load commands: %v\n", err)
		os.Exit(1)
	}
	return reg
}
