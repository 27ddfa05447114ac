package bridge

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/host/hosttest"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf, core.InfoLevel)

	assert.False(t, s.Enabled(core.DebugLevel))
	assert.True(t, s.Enabled(core.InfoLevel))
	assert.False(t, s.Enabled(core.OffLevel))
	assert.Equal(t, core.InfoLevel, s.Filter().Level())

	s.Log(core.NewRecord(core.DebugLevel, "skipped"))
	s.Log(core.NewRecord(core.InfoLevel, "started"))
	s.Log(core.NewRecord(core.ErrorLevel, "failed x=1"))
	s.Flush()

	assert.Equal(t, "INFO started\nERROR failed x=1\n", buf.String())
	assert.Zero(t, s.Failed())
}

func TestWriterSink_WriteError(t *testing.T) {
	s := NewWriterSink(failingWriter{}, core.TraceLevel)
	s.Log(core.NewRecord(core.WarnLevel, "lost"))
	s.Log(core.NewRecord(core.WarnLevel, "lost"))
	assert.Equal(t, uint64(2), s.Failed())
}

func TestWriterSink_MirrorsHost(t *testing.T) {
	g, f := newHost(hosttest.CodeWarning)
	a, err := NewAsync(f, "app", Config{Gate: g})
	require.NoError(t, err)

	var buf bytes.Buffer
	m := NewMultiSink(a, NewWriterSink(&buf, core.DebugLevel))

	m.Log(core.NewRecord(core.DebugLevel, "local"))
	m.Log(core.NewRecord(core.WarnLevel, "shared"))
	require.NoError(t, a.Close())

	assert.Equal(t, []string{"shared"}, f.Messages())
	assert.Equal(t, "DEBUG local\nWARN shared\n", buf.String())
}
