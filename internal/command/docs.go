package command

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:embed commands.json
var commandsJSON []byte

// ErrArity is returned when an argument list has the wrong number of
// arguments for its documented command.
var ErrArity = errors.New("wrong number of arguments")

// Registry holds the documentation for all known Redis commands.
type Registry struct {
	docs      []CommandDoc
	index     map[string]int // command name → index in docs slice
	dangerous map[string]bool
}

// NewRegistry initializes and returns a new command documentation registry.
func NewRegistry() (*Registry, error) {
	var docs []CommandDoc
	if err := json.Unmarshal(commandsJSON, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse embedded commands JSON: %w", err)
	}

	// Commands handled by the REPL itself, never encoded.
	appCommands := []CommandDoc{
		{Command: "EXIT", Summary: "Exit the application", Group: "application"},
		{Command: "HELP", Summary: "Show help for a command", Arguments: "[command]", Group: "application"},
		{Command: "CLEAR", Summary: "Clear the screen", Group: "application"},
		{Command: "ARGS", Summary: "Toggle the argument listing under the wire output", Group: "application"},
	}
	docs = append(docs, appCommands...)

	dangerousList := []string{
		"FLUSHDB", "FLUSHALL", "KEYS", "DEL", "CONFIG SET",
		"SHUTDOWN", "DEBUG",
	}
	dangerousMap := make(map[string]bool, len(dangerousList))
	for _, cmd := range dangerousList {
		dangerousMap[cmd] = true
	}

	idx := make(map[string]int, len(docs))
	for i, doc := range docs {
		idx[doc.Command] = i
	}

	return &Registry{
		docs:      docs,
		index:     idx,
		dangerous: dangerousMap,
	}, nil
}

// Get returns the documentation for a specific command, or nil if not found.
// It handles compound commands like "CLIENT INFO".
func (r *Registry) Get(cmd string) *CommandDoc {
	cmd = strings.ToUpper(cmd)
	if i, ok := r.index[cmd]; ok {
		return &r.docs[i]
	}
	return nil
}

// Lookup returns the documentation for name, preferring the compound form
// "NAME SUBCOMMAND" when the first argument names a documented subcommand.
func (r *Registry) Lookup(name string, args []string) *CommandDoc {
	if len(args) > 0 {
		if doc := r.Get(name + " " + args[0]); doc != nil {
			return doc
		}
	}
	return r.Get(name)
}

// GetCommands returns a list of command names that start with the given prefix.
// Used for tab completion.
func (r *Registry) GetCommands(prefix string) []string {
	prefix = strings.ToUpper(prefix)
	var matches []string
	for _, doc := range r.docs {
		if strings.HasPrefix(doc.Command, prefix) {
			matches = append(matches, doc.Command)
		}
	}
	return matches
}

// IsDangerous returns true if the command is destructive enough to deserve a
// warning before it is written anywhere. Like Lookup, the first argument is
// checked as a subcommand, so "CONFIG", ["SET", ...] matches "CONFIG SET".
func (r *Registry) IsDangerous(name string, args ...string) bool {
	name = strings.ToUpper(name)
	if len(args) > 0 && r.dangerous[name+" "+strings.ToUpper(args[0])] {
		return true
	}
	return r.dangerous[name]
}

// Hint returns the argument synopsis for doc, derived from its arity when
// no synopsis is documented.
func Hint(doc *CommandDoc) string {
	if doc.Arguments != "" {
		return doc.Arguments
	}
	// The subcommand word of a compound command is part of its arity.
	words := int64(strings.Count(doc.Command, " "))
	if doc.Arity < 0 {
		return arityHint(doc.Arity + words)
	}
	return arityHint(doc.Arity - words)
}

// CheckArity validates the size of a against doc.Arity.
func CheckArity(doc *CommandDoc, a *Arguments) error {
	name := strings.ToLower(doc.Command)
	got := int64(a.Size())
	switch {
	case doc.Arity > 0 && got != doc.Arity:
		return fmt.Errorf("%w for '%s' command: expected %d, got %d", ErrArity, name, doc.Arity-1, got-1)
	case doc.Arity < 0 && got < -doc.Arity:
		return fmt.Errorf("%w for '%s' command: expected at least %d, got %d", ErrArity, name, -doc.Arity-1, got-1)
	}
	return nil
}

// arityHint generates a basic argument hint string from the COMMAND arity.
// Arity includes the command name itself, so actual args = |arity| - 1.
func arityHint(arity int64) string {
	if arity == 0 || arity == 1 {
		return ""
	}
	if arity > 1 {
		n := int(arity) - 1
		parts := make([]string, n)
		for i := range parts {
			parts[i] = fmt.Sprintf("arg%d", i+1)
		}
		return strings.Join(parts, " ")
	}
	// Negative arity: at least |arity| - 1 args
	minArgs := int(-arity) - 1
	if minArgs == 0 {
		return "[arg ...]"
	}
	parts := make([]string, minArgs)
	for i := range parts {
		parts[i] = fmt.Sprintf("arg%d", i+1)
	}
	return strings.Join(parts, " ") + " [arg ...]"
}
