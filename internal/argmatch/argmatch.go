// Package argmatch provides predicates over command.Arguments for tests.
//
// The same Matcher serves assertion call sites:
//
//	argmatch.AssertThat(t, a, argmatch.HasCommand(protocol.ZRANGE))
//	argmatch.AssertThat(t, a, argmatch.HasArgumentCount(3))
//	argmatch.AssertThat(t, a, argmatch.HasArgumentAt(1, args.FromInt64(100)))
//	argmatch.AssertThat(t, a, argmatch.HasArguments(protocol.ZRANGE, args.FromInt(0), args.FromInt(100)))
//
// and testify mock expectations:
//
//	sender.On("Send", argmatch.ArgThat(argmatch.CommandWithArgs(protocol.SET, "key"))).Return(nil)
package argmatch

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/cosmez/redisargs-go/internal/args"
	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/protocol"
)

// Matcher is a predicate over an argument list that can explain itself.
// String describes what is expected; DescribeMismatch describes what a
// non-matching candidate actually holds.
type Matcher interface {
	Matches(a *command.Arguments) bool
	String() string
	DescribeMismatch(a *command.Arguments) string
}

// matcher adapts closures to Matcher. A nil candidate never reaches the
// closures.
type matcher struct {
	match    func(*command.Arguments) bool
	describe string
	mismatch func(*command.Arguments) string
}

func (m matcher) Matches(a *command.Arguments) bool {
	return a != nil && m.match(a)
}

func (m matcher) String() string { return m.describe }

func (m matcher) DescribeMismatch(a *command.Arguments) string {
	if a == nil {
		return "was nil"
	}
	return m.mismatch(a)
}

// HasCommand matches a list whose command is cmd.
func HasCommand(cmd protocol.Command) Matcher {
	return matcher{
		match:    func(a *command.Arguments) bool { return a.Command() == cmd },
		describe: fmt.Sprintf("CommandArguments with command %q", cmd),
		mismatch: func(a *command.Arguments) string {
			return fmt.Sprintf("was CommandArguments with command %q", a.Command())
		},
	}
}

// HasArgumentCount matches a list of exactly n arguments, command included.
func HasArgumentCount(n int) Matcher {
	return matcher{
		match:    func(a *command.Arguments) bool { return a.Size() == n },
		describe: fmt.Sprintf("CommandArguments with argument count <%d>", n),
		mismatch: func(a *command.Arguments) string {
			return fmt.Sprintf("was CommandArguments with argument count <%d>", a.Size())
		},
	}
}

// HasArgumentAt matches a list holding expected at index, where 0 is the
// command. An index out of range does not match.
func HasArgumentAt(index int, expected args.Rawable) Matcher {
	inRange := func(a *command.Arguments) bool { return index >= 0 && index < a.Size() }
	return matcher{
		match: func(a *command.Arguments) bool {
			return inRange(a) && args.Equal(expected, a.Get(index))
		},
		describe: fmt.Sprintf("CommandArguments with argument at index <%d> equal to %q", index, text(expected)),
		mismatch: func(a *command.Arguments) string {
			if !inRange(a) {
				return fmt.Sprintf("index <%d> is out of bounds (size: <%d>)", index, a.Size())
			}
			return fmt.Sprintf("argument at index <%d> was %q", index, text(a.Get(index)))
		},
	}
}

// HasArguments matches a list equal to expected position by position: the
// command first, then every parameter, with no extras.
func HasArguments(expected ...args.Rawable) Matcher {
	return matcher{
		match: func(a *command.Arguments) bool {
			if a.Size() != len(expected) {
				return false
			}
			i := 0
			for actual := range a.All() {
				if !args.Equal(expected[i], actual) {
					return false
				}
				i++
			}
			return true
		},
		describe: fmt.Sprintf("CommandArguments with arguments %s", formatList(texts(slices.Values(expected)))),
		mismatch: func(a *command.Arguments) string {
			return fmt.Sprintf("was CommandArguments with arguments %s", formatList(texts(a.All())))
		},
	}
}

// ContainsArgument matches a list where some parameter holds exactly the
// UTF-8 bytes of expected. The command itself is not considered.
func ContainsArgument(expected string) Matcher {
	return matcher{
		match: func(a *command.Arguments) bool {
			for p := range a.Params() {
				if string(p.Raw()) == expected {
					return true
				}
			}
			return false
		},
		describe: fmt.Sprintf("CommandArguments containing argument %q", expected),
		mismatch: func(a *command.Arguments) string {
			return fmt.Sprintf("was CommandArguments with arguments %s", formatList(texts(a.All())))
		},
	}
}

// CommandIs is HasCommand under the name mock expectations usually read
// with.
func CommandIs(cmd protocol.Command) Matcher {
	return HasCommand(cmd)
}

// CommandWithArgs matches a list whose command is cmd and which contains
// the parameter expected.
func CommandWithArgs(cmd protocol.Command, expected string) Matcher {
	return AllOf(CommandIs(cmd), ContainsArgument(expected))
}

// AllOf matches when every m matches. The mismatch lists only the failing
// matchers.
func AllOf(ms ...Matcher) Matcher {
	descs := make([]string, len(ms))
	for i, m := range ms {
		descs[i] = "(" + m.String() + ")"
	}
	return matcher{
		match: func(a *command.Arguments) bool {
			for _, m := range ms {
				if !m.Matches(a) {
					return false
				}
			}
			return true
		},
		describe: strings.Join(descs, " and "),
		mismatch: func(a *command.Arguments) string {
			var failed []string
			for _, m := range ms {
				if !m.Matches(a) {
					failed = append(failed, m.String()+" "+m.DescribeMismatch(a))
				}
			}
			return strings.Join(failed, ", ")
		},
	}
}

// AssertThat reports a test error when a does not satisfy m. It returns
// whether the assertion held.
func AssertThat(tb testing.TB, a *command.Arguments, m Matcher) bool {
	tb.Helper()
	if m.Matches(a) {
		return true
	}
	tb.Errorf("\nExpected: %s\n     but: %s", m, m.DescribeMismatch(a))
	return false
}

// ArgThat turns m into a testify argument matcher for mock.On and
// AssertCalled.
func ArgThat(m Matcher) any {
	return mock.MatchedBy(func(a *command.Arguments) bool {
		return m.Matches(a)
	})
}

// text renders an argument as UTF-8 for descriptions; invalid sequences
// are escaped by the %q verbs that print it.
func text(r args.Rawable) string {
	if r == nil {
		return "<nil>"
	}
	return string(r.Raw())
}

func texts(rs iter.Seq[args.Rawable]) []string {
	var out []string
	for r := range rs {
		out = append(out, text(r))
	}
	return out
}

func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "<[" + strings.Join(quoted, ", ") + "]>"
}
