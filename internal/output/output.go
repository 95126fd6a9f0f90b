package output

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/cosmez/redisargs-go/internal/command"
)

// PrintOpts configures how arguments and wire bytes are printed.
type PrintOpts struct {
	Color   bool
	Padding string
	Newline bool
}

var (
	colorCommand = color.New(color.FgHiYellow, color.Bold)
	colorString  = color.New(color.FgHiBlue)
	colorHeader  = color.New(color.FgHiGreen)
	colorIndex   = color.New(color.FgHiBlack)
	colorWarning = color.New(color.FgYellow)
)

// digitWidth returns the number of digits in n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	w := 0
	for n > 0 {
		w++
		n /= 10
	}
	return w
}

func fprint(w io.Writer, c *color.Color, useColor bool, s string) {
	if useColor {
		c.Fprint(w, s)
	} else {
		fmt.Fprint(w, s)
	}
}

// PrintArguments lists every argument of a, command first, redis-cli style:
//
//	1) "ZRANGE"
//	2) "0"
//	3) "1"
func PrintArguments(w io.Writer, a *command.Arguments, opts PrintOpts) {
	if a == nil {
		return
	}

	digits := digitWidth(a.Size())
	i := 0
	for arg := range a.All() {
		i++
		fmt.Fprint(w, opts.Padding)
		fprint(w, colorIndex, opts.Color, fmt.Sprintf("%*d) ", digits, i))

		c := colorString
		if i == 1 {
			c = colorCommand
		}
		fprint(w, c, opts.Color, Quote(arg.Raw()))
		fmt.Fprintln(w)
	}
}

// PrintWire prints RESP request bytes one protocol line at a time with the
// CRLF terminators made visible:
//
//	*3\r\n
//	$6\r\n
//	ZRANGE\r\n
//
// Bulk payloads are cut by their declared length, so a payload holding
// CRLF stays on one line. Anything that does not parse is printed escaped
// on a final line.
func PrintWire(w io.Writer, b []byte, opts PrintOpts) {
	for len(b) > 0 {
		end := bytes.Index(b, []byte("\r\n"))
		if end < 0 || (b[0] != '*' && b[0] != '$') {
			break
		}
		header := b[:end]
		fmt.Fprint(w, opts.Padding)
		fprint(w, colorHeader, opts.Color, escape(header)+`\r\n`)
		fmt.Fprintln(w)
		b = b[end+2:]

		if header[0] != '$' {
			continue
		}
		n, err := strconv.Atoi(string(header[1:]))
		if err != nil || n < 0 || n > len(b)-2 {
			break
		}
		fmt.Fprint(w, opts.Padding)
		fprint(w, colorString, opts.Color, escape(b[:n])+escape(b[n:n+2]))
		fmt.Fprintln(w)
		b = b[n+2:]
	}

	if len(b) > 0 {
		fmt.Fprint(w, opts.Padding)
		fprint(w, colorWarning, opts.Color, escape(b))
		fmt.Fprintln(w)
	}
	if opts.Newline {
		fmt.Fprintln(w)
	}
}

// PrintWarning prints a highlighted one-line warning.
func PrintWarning(w io.Writer, msg string, opts PrintOpts) {
	fprint(w, colorWarning, opts.Color, msg)
	fmt.Fprintln(w)
}

// Quote returns b in double quotes with non-printable bytes escaped the way
// redis-cli shows them.
func Quote(b []byte) string {
	return `"` + escape(b) + `"`
}

// Literal renders b as a Go-style string literal body, e.g. for pasting
// the wire format into a test expectation.
func Literal(b []byte) string {
	return escape(b)
}

func escape(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		default:
			if c >= 0x20 && c < 0x7f {
				sb.WriteByte(c)
			} else {
				fmt.Fprintf(&sb, `\x%02x`, c)
			}
		}
	}
	return sb.String()
}
