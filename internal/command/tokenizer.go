package command

import (
	"strconv"
	"strings"
	"unicode"
)

// tokenize splits the input string into tokens the way redis-cli does.
//
// Double quotes group words and understand \n, \r, \t, \\, \" and \xHH
// escapes, so arbitrary bytes can be typed. Single quotes group words and
// only understand \'. Outside quotes a backslash escapes the next character.
// An unterminated quote ends at the end of input.
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inToken := false

	const (
		none = iota
		double
		single
	)
	quote := none

	flush := func() {
		if inToken {
			tokens = append(tokens, current.String())
			current.Reset()
			inToken = false
		}
	}

	for i := 0; i < len(input); i++ {
		c := input[i]

		switch quote {
		case double:
			switch {
			case c == '"':
				quote = none
			case c == '\\' && i+1 < len(input):
				i++
				i += writeEscape(&current, input, i)
			default:
				current.WriteByte(c)
			}
			continue
		case single:
			switch {
			case c == '\'':
				quote = none
			case c == '\\' && i+1 < len(input) && input[i+1] == '\'':
				current.WriteByte('\'')
				i++
			default:
				current.WriteByte(c)
			}
			continue
		}

		switch {
		case c == '"':
			quote = double
			inToken = true
		case c == '\'':
			quote = single
			inToken = true
		case c == '\\' && i+1 < len(input):
			// Outside quotes the next character is taken literally.
			i++
			current.WriteByte(input[i])
			inToken = true
		case c < 0x80 && unicode.IsSpace(rune(c)):
			flush()
		default:
			current.WriteByte(c)
			inToken = true
		}
	}

	flush()
	return tokens
}

// writeEscape writes the character escaped at input[i] and returns how many
// extra bytes it consumed beyond input[i].
func writeEscape(sb *strings.Builder, input string, i int) int {
	switch c := input[i]; c {
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'a':
		sb.WriteByte('\a')
	case 'x':
		if i+2 < len(input) {
			if v, err := strconv.ParseUint(input[i+1:i+3], 16, 8); err == nil {
				sb.WriteByte(byte(v))
				return 2
			}
		}
		sb.WriteByte(c)
	default:
		sb.WriteByte(c)
	}
	return 0
}

// indexUnquoted returns the index of the first (or, with last, the final)
// occurrence of sep that is not inside a quoted token, or -1. Quote and
// escape rules are the ones tokenize applies.
func indexUnquoted(input, sep string, last bool) int {
	found := -1
	quote := byte(0)
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch quote {
		case '"':
			if c == '\\' {
				i++
			} else if c == '"' {
				quote = 0
			}
			continue
		case '\'':
			if c == '\\' && i+1 < len(input) && input[i+1] == '\'' {
				i++
			} else if c == '\'' {
				quote = 0
			}
			continue
		}

		switch {
		case c == '\\':
			i++
		case c == '"' || c == '\'':
			quote = c
		case strings.HasPrefix(input[i:], sep):
			if !last {
				return i
			}
			found = i
		}
	}
	return found
}
