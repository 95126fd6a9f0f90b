// Package resptest captures the exact bytes the RESP writer produces so
// tests can compare them against literal strings such as
// "*3\r\n$6\r\nZRANGE\r\n...".
package resptest

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/cosmez/redisargs-go/internal/args"
	"github.com/cosmez/redisargs-go/internal/resp"
)

// CaptureCommandOutput encodes c into a fresh in-memory buffer and returns
// the wire bytes decoded one byte per character. An in-memory buffer cannot
// fail, so any error is reported as a fatal test failure.
func CaptureCommandOutput(tb testing.TB, c resp.Command) string {
	tb.Helper()

	var buf bytes.Buffer
	w := resp.NewWriter(&buf)
	if err := w.WriteCommand(c); err != nil {
		tb.Fatalf("Failed to serialize command arguments: %v", err)
	}
	if err := w.Flush(); err != nil {
		tb.Fatalf("Failed to flush command arguments: %v", err)
	}
	return args.DecodeBytes(buf.Bytes())
}

// DecodeCommandOutput parses a captured request back into its arguments,
// command first. Malformed input or trailing bytes fail the test.
func DecodeCommandOutput(tb testing.TB, wire string) []string {
	tb.Helper()

	r := bufio.NewReader(strings.NewReader(encodeLatin1(wire)))
	parts, err := resp.ReadCommand(r)
	if err != nil {
		tb.Fatalf("Failed to decode command output %q: %v", wire, err)
	}
	if r.Buffered() > 0 {
		tb.Fatalf("Unexpected trailing bytes after command in %q", wire)
	}

	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = args.DecodeBytes(p)
	}
	return out
}

// encodeLatin1 reverses args.DecodeBytes.
func encodeLatin1(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		sb.WriteByte(byte(r))
	}
	return sb.String()
}
