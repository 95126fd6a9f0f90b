package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/output"
	"github.com/cosmez/redisargs-go/internal/params"
	"github.com/cosmez/redisargs-go/internal/protocol"
	"github.com/cosmez/redisargs-go/internal/resp"
)

type zrangeOpts struct {
	key        string
	dst        string
	min, max   string
	by         string
	rev        bool
	limit      string
	withScores bool
	showArgs   bool
}

func newZRangeCmd() *cobra.Command {
	var opts zrangeOpts

	cmd := &cobra.Command{
		Use:   "zrange",
		Short: "Build a ZRANGE or ZRANGESTORE request",
		Example: `  redisargs zrange --key scores --min 0 --max -1
  redisargs zrange --key scores --by score --min 1.5 --max +inf --rev --limit 0,10
  redisargs zrange --key names --dst top --by lex --min [a --max (c`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a, p, err := buildZRange(opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			logger.Debug().
				Str("command", a.Command().String()).
				Uint64("range_hash", p.Hash()).
				Msg("range built")

			popts := printOpts()
			output.PrintWire(os.Stdout, resp.Encode(a), popts)
			if opts.showArgs {
				fmt.Println()
				output.PrintArguments(os.Stdout, a, popts)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "Source sorted set key")
	cmd.Flags().StringVar(&opts.dst, "dst", "", "Destination key, builds ZRANGESTORE")
	cmd.Flags().StringVar(&opts.min, "min", "0", "Range start")
	cmd.Flags().StringVar(&opts.max, "max", "-1", "Range stop")
	cmd.Flags().StringVar(&opts.by, "by", "index", "Range kind: index, score or lex")
	cmd.Flags().BoolVar(&opts.rev, "rev", false, "Reverse the ordering")
	cmd.Flags().StringVar(&opts.limit, "limit", "", "Limit as offset,count")
	cmd.Flags().BoolVar(&opts.withScores, "withscores", false, "Append WITHSCORES (ZRANGE only)")
	cmd.Flags().BoolVarP(&opts.showArgs, "args", "a", false, "List the arguments below the wire output")
	cmd.MarkFlagRequired("key")

	return cmd
}

// buildZRange turns the flags into an argument list and returns the range
// builder used for it.
func buildZRange(opts zrangeOpts) (*command.Arguments, *params.ZRangeParams, error) {
	if opts.key == "" {
		return nil, nil, fmt.Errorf("a source key is required")
	}

	var p *params.ZRangeParams
	switch strings.ToLower(opts.by) {
	case "", "index":
		min, err := strconv.ParseInt(opts.min, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid index %q: %w", opts.min, err)
		}
		max, err := strconv.ParseInt(opts.max, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid index %q: %w", opts.max, err)
		}
		p = params.NewZRange64(min, max)
	case "score":
		min, err := strconv.ParseFloat(opts.min, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid score %q: %w", opts.min, err)
		}
		max, err := strconv.ParseFloat(opts.max, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid score %q: %w", opts.max, err)
		}
		p = params.NewZRangeByScore(min, max)
	case "lex":
		p = params.NewZRangeByLex(opts.min, opts.max)
	default:
		return nil, nil, fmt.Errorf("unknown range kind %q (want index, score or lex)", opts.by)
	}

	if opts.rev {
		p.Rev()
	}
	if opts.limit != "" {
		offset, count, err := parseLimit(opts.limit)
		if err != nil {
			return nil, nil, err
		}
		p.Limit(offset, count)
	}

	var a *command.Arguments
	if opts.dst != "" {
		if opts.withScores {
			return nil, nil, fmt.Errorf("WITHSCORES is not supported by ZRANGESTORE")
		}
		a = command.New(protocol.ZRANGESTORE).Key(opts.dst).Key(opts.key)
	} else {
		a = command.New(protocol.ZRANGE).Key(opts.key)
	}
	a.AddParams(p)
	if opts.withScores {
		a.Add(protocol.WITHSCORES)
	}
	return a, p, nil
}

// parseLimit parses "offset,count".
func parseLimit(s string) (offset, count int, err error) {
	off, cnt, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid limit %q: expected offset,count", s)
	}
	offset, err = strconv.Atoi(strings.TrimSpace(off))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit offset %q: %w", off, err)
	}
	count, err = strconv.Atoi(strings.TrimSpace(cnt))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit count %q: %w", cnt, err)
	}
	return offset, count, nil
}
