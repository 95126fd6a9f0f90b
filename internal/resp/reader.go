package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrProtocol is wrapped by every error caused by malformed input.
var ErrProtocol = errors.New("resp: protocol error")

// Limits on declared sizes, matching the server's defaults
// (proto-max-bulk-len and the multibulk cap for a single request).
const (
	MaxArguments  = 1024 * 1024
	MaxBulkLength = 512 * 1024 * 1024
)

// Declared sizes are only trusted up to these bounds when allocating; past
// them the buffers grow with the bytes actually read.
const (
	preallocArguments = 64
	preallocBulk      = 64 * 1024
)

// ReadCommand reads one multi-bulk request, the format Writer produces, and
// returns its arguments with the command first. It returns io.EOF only when
// the reader is exhausted before the first byte.
func ReadCommand(r *bufio.Reader) ([][]byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if b != arrayPrefix {
		return nil, fmt.Errorf("%w: expected '*', got %q", ErrProtocol, b)
	}

	count, err := readLength(r)
	if err != nil {
		return nil, fmt.Errorf("invalid array count: %w", err)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: request must have at least one argument, got %d", ErrProtocol, count)
	}
	if count > MaxArguments {
		return nil, fmt.Errorf("%w: too many arguments: %d (max %d)", ErrProtocol, count, MaxArguments)
	}

	out := make([][]byte, 0, min(count, preallocArguments))
	for i := range count {
		arg, err := readBulk(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read argument %d: %w", i, err)
		}
		out = append(out, arg)
	}
	return out, nil
}

func readBulk(r *bufio.Reader) ([]byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	if b != bulkPrefix {
		return nil, fmt.Errorf("%w: expected '$', got %q", ErrProtocol, b)
	}

	length, err := readLength(r)
	if err != nil {
		return nil, fmt.Errorf("invalid bulk string length: %w", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: null bulk string in request", ErrProtocol)
	}
	if length > MaxBulkLength {
		return nil, fmt.Errorf("%w: bulk string too long: %d (max %d)", ErrProtocol, length, MaxBulkLength)
	}

	// Payload plus the trailing CRLF, read by exact count to stay binary safe.
	buf, err := readExact(r, length+2)
	if err != nil {
		return nil, fmt.Errorf("failed to read bulk string payload: %w", unexpectedEOF(err))
	}
	if buf[length] != '\r' || buf[length+1] != '\n' {
		return nil, fmt.Errorf("%w: expected CRLF after bulk string payload, got %q", ErrProtocol, buf[length:])
	}
	return buf[:length], nil
}

// readExact reads n bytes. Large payloads grow with the input instead of
// being allocated from the declared length up front.
func readExact(r io.Reader, n int) ([]byte, error) {
	if n <= preallocBulk {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}

	var buf bytes.Buffer
	buf.Grow(preallocBulk)
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readLength reads "<int>\r\n".
func readLength(r *bufio.Reader) (int, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, unexpectedEOF(err)
	}
	if !strings.HasSuffix(line, "\r\n") {
		return 0, fmt.Errorf("%w: line not terminated by CRLF", ErrProtocol)
	}
	n, err := strconv.Atoi(line[:len(line)-2])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return n, nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
