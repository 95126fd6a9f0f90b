package pipe

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cosmez/redisargs-go/internal/argmatch"
	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/params"
	"github.com/cosmez/redisargs-go/internal/protocol"
)

func TestPipeWritesCommands(t *testing.T) {
	var out bytes.Buffer
	p := New(&out)

	require.NoError(t, p.Send(command.New(protocol.SET).Key("k").AddObject("v")))
	require.NoError(t, p.Send(command.New(protocol.ZRANGE).Key("z").AddParams(params.NewZRange(0, -1))))
	assert.Zero(t, out.Len(), "nothing should reach the writer before Flush")

	require.NoError(t, p.Flush())

	expected := "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n" +
		"*4\r\n$6\r\nZRANGE\r\n$1\r\nz\r\n$1\r\n0\r\n$2\r\n-1\r\n"
	assert.Equal(t, expected, out.String())

	commands, n := p.Stats()
	assert.Equal(t, 2, commands)
	assert.Equal(t, int64(len(expected)), n)
}

func TestPipeLogsCommands(t *testing.T) {
	var out, logs bytes.Buffer
	p := New(&out, WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))

	require.NoError(t, p.Send(command.New(protocol.PING)))
	require.NoError(t, p.Flush())

	assert.Contains(t, logs.String(), `"command":"PING"`)
	assert.Contains(t, logs.String(), `"message":"flushed"`)
}

var errClosed = errors.New("closed")

type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestPipeSurfacesWriteErrors(t *testing.T) {
	var logs strings.Builder
	p := New(closedWriter{}, WithLogger(zerolog.New(&logs)))

	require.NoError(t, p.Send(command.New(protocol.PING)))
	err := p.Flush()
	assert.ErrorIs(t, err, errClosed)

	err = p.Send(command.New(protocol.PING))
	assert.ErrorIs(t, err, errClosed)
	assert.Contains(t, logs.String(), "failed to write command")
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(a *command.Arguments) error {
	return m.Called(a).Error(0)
}

// storeTopScores is a small caller of Sender used to check call
// verification with argument matchers.
func storeTopScores(s Sender, dst, src string, limit int) error {
	a := command.New(protocol.ZRANGESTORE).Key(dst).Key(src).
		AddParams(params.NewZRangeByScore(0, 100).Rev().Limit(0, limit))
	return s.Send(a)
}

func TestSenderVerification(t *testing.T) {
	s := &mockSender{}
	s.On("Send", argmatch.ArgThat(argmatch.CommandWithArgs(protocol.ZRANGESTORE, "top"))).Return(nil)

	require.NoError(t, storeTopScores(s, "top", "scores", 10))

	s.AssertCalled(t, "Send", argmatch.ArgThat(argmatch.AllOf(
		argmatch.HasArgumentCount(10),
		argmatch.HasArgumentAt(5, protocol.BYSCORE),
		argmatch.ContainsArgument("LIMIT"),
	)))
	s.AssertNotCalled(t, "Send", argmatch.ArgThat(argmatch.CommandIs(protocol.ZRANGE)))
	s.AssertExpectations(t)
}
