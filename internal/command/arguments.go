package command

import (
	"fmt"
	"iter"

	"github.com/cosmez/redisargs-go/internal/args"
	"github.com/cosmez/redisargs-go/internal/protocol"
)

// Params is implemented by builders that know how to append their own
// arguments, e.g. params.ZRangeParams.
type Params interface {
	AddParams(a *Arguments)
}

// Arguments is the ordered argument list of a single command. Position 0 is
// always the command itself; parameters follow in append order.
//
// An Arguments value belongs to the one flow that builds and sends it and
// is not safe for concurrent use.
type Arguments struct {
	command protocol.Command
	params  []args.Rawable
	keys    []args.Rawable
}

// New starts an argument list for cmd. The command cannot be changed later.
func New(cmd protocol.Command) *Arguments {
	return &Arguments{command: cmd}
}

// Command returns the command identifier.
func (a *Arguments) Command() protocol.Command {
	return a.command
}

// Add appends one parameter. A nil parameter panics.
func (a *Arguments) Add(r args.Rawable) *Arguments {
	if r == nil {
		panic(fmt.Sprintf("command: nil argument added to %s", a.command))
	}
	a.params = append(a.params, r)
	return a
}

// AddObject converts v with args.From and appends it.
func (a *Arguments) AddObject(v any) *Arguments {
	return a.Add(args.From(v))
}

// Key appends a key argument and remembers it in Keys.
func (a *Arguments) Key(v any) *Arguments {
	r := args.From(v)
	a.keys = append(a.keys, r)
	return a.Add(r)
}

// AddParams lets a builder append its arguments.
func (a *Arguments) AddParams(p Params) *Arguments {
	p.AddParams(a)
	return a
}

// Size returns the number of arguments including the command.
func (a *Arguments) Size() int {
	return len(a.params) + 1
}

// Get returns the argument at index, where 0 is the command. An index out of
// range panics.
func (a *Arguments) Get(index int) args.Rawable {
	if index < 0 || index >= a.Size() {
		panic(fmt.Sprintf("command: index %d out of range (size: %d)", index, a.Size()))
	}
	if index == 0 {
		return a.command
	}
	return a.params[index-1]
}

// Params yields the parameters without the command.
func (a *Arguments) Params() iter.Seq[args.Rawable] {
	return func(yield func(args.Rawable) bool) {
		for _, p := range a.params {
			if !yield(p) {
				return
			}
		}
	}
}

// All yields the command followed by every parameter.
func (a *Arguments) All() iter.Seq[args.Rawable] {
	return func(yield func(args.Rawable) bool) {
		if !yield(a.command) {
			return
		}
		for _, p := range a.params {
			if !yield(p) {
				return
			}
		}
	}
}

// Keys returns the arguments added through Key, in order.
func (a *Arguments) Keys() []args.Rawable {
	out := make([]args.Rawable, len(a.keys))
	copy(out, a.keys)
	return out
}

// Strings returns every argument, command included, decoded as text.
func (a *Arguments) Strings() []string {
	out := make([]string, 0, a.Size())
	for r := range a.All() {
		out = append(out, args.Decode(r))
	}
	return out
}

func (a *Arguments) String() string {
	return fmt.Sprintf("%q", a.Strings())
}
