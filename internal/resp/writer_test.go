package resp_test

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/cosmez/redisargs-go/internal/args"
	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/protocol"
	"github.com/cosmez/redisargs-go/internal/resp"
)

func TestWriteCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     *command.Arguments
		expected string
	}{
		{
			name:     "Command Only",
			args:     command.New(protocol.PING),
			expected: "*1\r\n$4\r\nPING\r\n",
		},
		{
			name: "Long Bounds",
			args: command.New(protocol.ZRANGE).
				Add(args.FromInt64(3_000_000_000)).
				Add(args.FromInt64(3_000_000_099)),
			expected: "*3\r\n$6\r\nZRANGE\r\n$10\r\n3000000000\r\n$10\r\n3000000099\r\n",
		},
		{
			name:     "Empty Argument",
			args:     command.New(protocol.SET).Add(args.FromString("key")).Add(args.FromString("")),
			expected: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$0\r\n\r\n",
		},
		{
			name:     "Binary Argument",
			args:     command.New(protocol.SET).Add(args.FromString("k")).Add(args.FromBytes([]byte{0x00, '\r', '\n'})),
			expected: "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$3\r\n\x00\r\n\r\n",
		},
		{
			name:     "Multi-byte Length Is Byte Count",
			args:     command.New(protocol.ECHO).Add(args.FromString("héllo")),
			expected: "*2\r\n$4\r\nECHO\r\n$6\r\nhéllo\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := resp.NewWriter(&buf)
			if err := w.WriteCommand(tt.args); err != nil {
				t.Fatalf("WriteCommand failed: %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush failed: %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	a := command.New(protocol.ZRANGE).
		Add(args.FromFloat64(0.1)).
		Add(args.FromFloat64(1.1)).
		Add(protocol.BYSCORE)

	first := resp.Encode(a)
	second := resp.Encode(a)
	if !bytes.Equal(first, second) {
		t.Errorf("Expected identical output, got %q and %q", first, second)
	}
}

func TestWriteCommandStreamsMultipleCommands(t *testing.T) {
	var buf bytes.Buffer
	w := resp.NewWriter(&buf)
	w.WriteCommand(command.New(protocol.PING))
	w.WriteCommand(command.New(protocol.GET).Add(args.FromString("k")))

	if buf.Len() != 0 {
		t.Errorf("Expected nothing written before Flush, got %q", buf.String())
	}
	if w.Buffered() == 0 {
		t.Error("Expected buffered bytes before Flush")
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	expected := "*1\r\n$4\r\nPING\r\n*2\r\n$3\r\nGET\r\n$1\r\nk\r\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

var errSink = errors.New("sink closed")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errSink }

func TestWriteCommandSurfacesWriteErrors(t *testing.T) {
	// A 16 byte buffer forces a flush to the failing sink mid-command.
	w := resp.NewWriter(bufio.NewWriterSize(failingWriter{}, 16))
	a := command.New(protocol.SET).
		Add(args.FromString("a-key-longer-than-the-buffer")).
		Add(args.FromString("value"))

	err := w.WriteCommand(a)
	if !errors.Is(err, errSink) {
		t.Fatalf("Expected sink error, got %v", err)
	}

	// The writer stays failed.
	if err := w.WriteCommand(command.New(protocol.PING)); !errors.Is(err, errSink) {
		t.Errorf("Expected sticky sink error, got %v", err)
	}
	if err := w.Flush(); !errors.Is(err, errSink) {
		t.Errorf("Expected sticky sink error from Flush, got %v", err)
	}
}

func TestFlushSurfacesWriteErrors(t *testing.T) {
	w := resp.NewWriter(failingWriter{})
	if err := w.WriteCommand(command.New(protocol.PING)); err != nil {
		t.Fatalf("Expected buffered write to succeed, got %v", err)
	}
	if err := w.Flush(); !errors.Is(err, errSink) {
		t.Errorf("Expected sink error, got %v", err)
	}
}
