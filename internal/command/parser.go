package command

import (
	"fmt"
	"strings"

	"github.com/cosmez/redisargs-go/internal/args"
	"github.com/cosmez/redisargs-go/internal/protocol"
	"github.com/cosmez/redisargs-go/internal/resp"
	"github.com/cosmez/redisargs-go/internal/serializer"
)

// Parse takes a raw input line, extracts modifiers, tokenizes it and builds
// the argument list and its RESP bytes. When reg is non-nil the command's
// documentation is attached and its arity is checked.
func Parse(input string, reg *Registry) (*ParsedCommand, error) {
	if strings.TrimSpace(input) == "" {
		return &ParsedCommand{}, nil
	}

	parsed := &ParsedCommand{
		Text: input,
	}

	// 1. Detect and strip `| shell cmd` suffix
	// This runs first so `GET key #:gzip | jq .` does not read "gzip | jq ."
	// as the codec name. Markers inside quotes belong to the argument.
	if pipeIdx := indexUnquoted(input, " | ", false); pipeIdx != -1 {
		parsed.Pipe = strings.TrimSpace(input[pipeIdx+3:])
		input = input[:pipeIdx]
	}

	// 2. Detect and strip `#:codec` suffix
	if codecIdx := indexUnquoted(input, "#:", true); codecIdx != -1 {
		parsed.Modifier = strings.TrimSpace(input[codecIdx+2:])
		input = input[:codecIdx]
	}

	// 3. Tokenize remaining text
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return parsed, nil
	}

	// 4. Extract Name and Args
	parsed.Name = strings.ToUpper(tokens[0])
	if len(tokens) > 1 {
		parsed.Args = tokens[1:]
	}

	// 5. Look up documentation
	if reg != nil {
		parsed.Doc = reg.Lookup(parsed.Name, parsed.Args)
	}

	// 6. Build the argument list
	a := New(protocol.Command(parsed.Name))
	for i, token := range parsed.Args {
		var arg args.Rawable = args.FromString(token)

		// The value argument of SET goes through the codec when one is given.
		if parsed.Name == string(protocol.SET) && i == 1 && parsed.Modifier != "" {
			encoded, err := serializer.Encode(parsed.Modifier, arg)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize value: %w", err)
			}
			arg = encoded
		}
		a.Add(arg)
	}
	parsed.Arguments = a

	if parsed.Doc != nil {
		if err := CheckArity(parsed.Doc, a); err != nil {
			return nil, err
		}
	}

	// 7. Encode
	parsed.CommandBytes = resp.Encode(a)

	return parsed, nil
}
