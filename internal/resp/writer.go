package resp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/cosmez/redisargs-go/internal/args"
)

const (
	arrayPrefix = '*'
	bulkPrefix  = '$'
)

var crlf = []byte{'\r', '\n'}

// Command is anything that can be sent as a multi-bulk request: a known
// number of arguments, the first of which is the command name.
// *command.Arguments satisfies it.
type Command interface {
	Size() int
	All() iter.Seq[args.Rawable]
}

// Writer streams commands in the RESP multi-bulk request format:
//
//	*<N>\r\n
//	$<len(arg)>\r\n<arg>\r\n   (N times)
//
// Arguments go out one at a time through a bufio.Writer, so nothing is
// materialized up front. Lengths are byte lengths.
type Writer struct {
	w       *bufio.Writer
	scratch []byte
	err     error
}

// NewWriter wraps w. If w is already a *bufio.Writer it is used directly.
func NewWriter(w io.Writer) *Writer {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	return &Writer{w: bw, scratch: make([]byte, 0, 24)}
}

// WriteCommand encodes c. After the first write error the Writer stays
// failed and every later call returns the same error.
func (w *Writer) WriteCommand(c Command) error {
	if w.err != nil {
		return w.err
	}

	w.writeHeader(arrayPrefix, c.Size())
	for arg := range c.All() {
		raw := arg.Raw()
		w.writeHeader(bulkPrefix, len(raw))
		w.write(raw)
		w.write(crlf)
		if w.err != nil {
			break
		}
	}

	if w.err != nil {
		w.err = fmt.Errorf("resp: write command: %w", w.err)
	}
	return w.err
}

// Flush writes any buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		w.err = fmt.Errorf("resp: flush: %w", err)
	}
	return w.err
}

// Buffered returns the number of bytes not yet flushed.
func (w *Writer) Buffered() int {
	return w.w.Buffered()
}

func (w *Writer) writeHeader(prefix byte, n int) {
	w.scratch = append(w.scratch[:0], prefix)
	w.scratch = strconv.AppendInt(w.scratch, int64(n), 10)
	w.scratch = append(w.scratch, crlf...)
	w.write(w.scratch)
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

// Encode returns the full encoding of c. Writing to a bytes.Buffer cannot
// fail, so an error here is a bug and panics.
func Encode(c Command) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteCommand(c); err != nil {
		panic(err)
	}
	if err := w.Flush(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
