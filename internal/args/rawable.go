// Package args defines the values that make up a Redis command: anything
// that can render itself to the raw bytes sent inside a RESP bulk string.
package args

import (
	"bytes"
	"strings"
)

// Rawable is the single capability every command argument has: it knows the
// exact bytes it is sent as. Callers must not mutate the returned slice.
type Rawable interface {
	Raw() []byte
}

// Raw is an immutable byte-backed argument produced by the From* factories.
type Raw []byte

func (r Raw) Raw() []byte { return r }

// String returns the argument decoded one byte per character.
func (r Raw) String() string { return Decode(r) }

// Equal reports whether two arguments render to the same bytes. Concrete
// types do not matter: a keyword equals a Raw holding the same text.
func Equal(a, b Rawable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return bytes.Equal(a.Raw(), b.Raw())
}

// Decode converts raw bytes to text mapping each byte to the rune with the
// same value, the way the wire protocol treats bulk strings.
func Decode(r Rawable) string {
	if r == nil {
		return "<nil>"
	}
	return DecodeBytes(r.Raw())
}

// DecodeBytes is Decode for a bare byte slice.
func DecodeBytes(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < 0x80 {
			sb.WriteByte(c)
		} else {
			sb.WriteRune(rune(c))
		}
	}
	return sb.String()
}
