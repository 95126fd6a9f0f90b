// Package pipe writes encoded commands to a byte stream, e.g. a file that is
// later fed to `redis-cli --pipe`. It never opens connections.
package pipe

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/resp"
)

// Sender accepts fully built commands.
type Sender interface {
	Send(a *command.Arguments) error
}

var _ Sender = (*Pipe)(nil)

// Pipe buffers RESP requests for an io.Writer. It is not safe for
// concurrent use.
type Pipe struct {
	w        *resp.Writer
	counter  *countingWriter
	logger   zerolog.Logger
	commands int
}

// Option configures a Pipe.
type Option func(*Pipe)

// WithLogger logs every command at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipe) { p.logger = l }
}

// New returns a Pipe writing to w.
func New(w io.Writer, opts ...Option) *Pipe {
	cw := &countingWriter{w: w}
	p := &Pipe{
		w:       resp.NewWriter(cw),
		counter: cw,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Send encodes a into the buffer. Errors from the underlying writer are
// returned as is and leave the Pipe unusable.
func (p *Pipe) Send(a *command.Arguments) error {
	if err := p.w.WriteCommand(a); err != nil {
		p.logger.Error().Err(err).Str("command", a.Command().String()).Msg("failed to write command")
		return fmt.Errorf("failed to send %s: %w", a.Command(), err)
	}
	p.commands++
	p.logger.Debug().
		Str("command", a.Command().String()).
		Int("args", a.Size()).
		Int("seq", p.commands).
		Msg("command queued")
	return nil
}

// Flush writes buffered commands through to the underlying writer.
func (p *Pipe) Flush() error {
	if err := p.w.Flush(); err != nil {
		return err
	}
	p.logger.Debug().Int("commands", p.commands).Int64("bytes", p.counter.n).Msg("flushed")
	return nil
}

// Stats returns the number of commands sent and bytes flushed so far.
func (p *Pipe) Stats() (commands int, bytes int64) {
	return p.commands, p.counter.n
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
