package logger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/hostlog/bridge"
	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/formatter"
	"github.com/philipp01105/hostlog/gate"
	"github.com/philipp01105/hostlog/host/hosttest"
)

// memorySink records everything at or above min.
type memorySink struct {
	mu      sync.Mutex
	min     core.Level
	records []core.Record
	flushes int
	closed  bool
}

func (m *memorySink) Enabled(level core.Level) bool { return level.Valid() && level >= m.min }

func (m *memorySink) Log(rec core.Record) {
	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
}

func (m *memorySink) Flush() { m.flushes++ }

func (m *memorySink) messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.records))
	for i, r := range m.records {
		out[i] = r.Message()
	}
	return out
}

func (m *memorySink) last() core.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[len(m.records)-1]
}

type closingSink struct {
	memorySink
}

func (c *closingSink) Close() error {
	c.closed = true
	return nil
}

func TestLogger_LevelGate(t *testing.T) {
	sink := &memorySink{}
	log := NewBuilder().
		WithSink(sink).
		WithLevel(InfoLevel).
		Build()

	log.Trace("trace message")
	log.Debug("debug message")
	assert.Empty(t, sink.messages())

	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")
	assert.Equal(t, []string{"info message", "warn message", "error message"}, sink.messages())
}

func TestLogger_SinkFilter(t *testing.T) {
	sink := &memorySink{min: WarnLevel}
	log := NewBuilder().WithSink(sink).Build()

	assert.False(t, log.Enabled(InfoLevel))
	assert.True(t, log.Enabled(WarnLevel))
	assert.False(t, log.Enabled(OffLevel))

	log.Info("dropped")
	log.Warn("kept")
	assert.Equal(t, []string{"kept"}, sink.messages())
}

func TestLogger_RecordLevel(t *testing.T) {
	tests := []struct {
		name  string
		logf  func(*Logger)
		level core.Level
	}{
		{"trace", func(l *Logger) { l.Trace("m") }, TraceLevel},
		{"debug", func(l *Logger) { l.Debug("m") }, DebugLevel},
		{"info", func(l *Logger) { l.Info("m") }, InfoLevel},
		{"warn", func(l *Logger) { l.Warn("m") }, WarnLevel},
		{"error", func(l *Logger) { l.Error("m") }, ErrorLevel},
		{"log", func(l *Logger) { l.Log(WarnLevel, "m") }, WarnLevel},
		{"errorf", func(l *Logger) { l.Errorf("%s", "m") }, ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &memorySink{}
			tt.logf(NewBuilder().WithSink(sink).Build())
			require.Len(t, sink.records, 1)
			assert.Equal(t, tt.level, sink.last().Level())
			assert.Equal(t, "m", sink.last().Message())
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	sink := &memorySink{}
	log := NewBuilder().WithSink(sink).Build()

	log.Info("test",
		String("str", "value"),
		Int("int", 42),
		Bool("bool", true),
		Float64("float", 3.14),
		Err(errors.New("boom")),
		Duration("took", 1500*time.Millisecond),
	)

	assert.Equal(t, "test str=value int=42 bool=true float=3.14 error=boom took=1.5s", sink.last().Message())
}

func TestLogger_With(t *testing.T) {
	sink := &memorySink{}
	parent := NewBuilder().
		WithSink(sink).
		WithFields(String("app", "test")).
		Build()

	child := parent.With(String("request_id", "123"))

	parent.Info("parent message")
	assert.Equal(t, "parent message app=test", sink.last().Message())

	child.Info("child message")
	assert.Equal(t, "child message app=test request_id=123", sink.last().Message())

	// the parent is unaffected by the child
	parent.Info("again")
	assert.NotContains(t, sink.last().Message(), "request_id")
}

func TestLogger_FormattedLogging(t *testing.T) {
	sink := &memorySink{}
	log := NewBuilder().WithSink(sink).Build()

	log.Infof("User %s logged in with ID %d", "alice", 123)
	assert.Equal(t, "User alice logged in with ID 123", sink.last().Message())
}

func TestLogger_Formatter(t *testing.T) {
	sink := &memorySink{}
	log := NewBuilder().
		WithSink(sink).
		WithFormatter(formatter.NewJSONFormatter(formatter.Config{})).
		Build()

	log.Warn("disk low", Int("free_mb", 12))
	assert.Equal(t, `{"message":"disk low","free_mb":12}`, sink.last().Message())
}

func TestLogger_Caller(t *testing.T) {
	sink := &memorySink{}
	log := NewBuilder().WithSink(sink).WithCaller(true).Build()

	log.Info("where")
	msg := sink.last().Message()
	assert.True(t, strings.HasPrefix(msg, "[logger_test.go:"), msg)
	assert.True(t, strings.HasSuffix(msg, "] where"), msg)
}

func TestLogger_DisabledDoesNotFormat(t *testing.T) {
	sink := &memorySink{min: OffLevel}
	log := NewBuilder().WithSink(sink).Build()

	called := false
	log.Debug("never", Any("lazy", stringerFunc(func() string {
		called = true
		return "x"
	})))
	assert.False(t, called)
	assert.Empty(t, sink.messages())
}

type stringerFunc func() string

func (f stringerFunc) String() string { return f() }

func TestLogger_FlushAndClose(t *testing.T) {
	sink := &memorySink{}
	log := NewBuilder().WithSink(sink).Build()
	log.Flush()
	assert.Equal(t, 1, sink.flushes)
	assert.NoError(t, log.Close())

	cs := &closingSink{}
	require.NoError(t, NewBuilder().WithSink(cs).Build().Close())
	assert.True(t, cs.closed)
}

func TestLogger_NopDefault(t *testing.T) {
	log := NewBuilder().Build()
	assert.False(t, log.Enabled(ErrorLevel))
	log.Error("goes nowhere")
}

func TestLogger_SyncBridge(t *testing.T) {
	g := gate.New()
	fac := hosttest.New(g)
	fac.SetLevel("app", hosttest.CodeInfo)

	b, err := bridge.NewSync(fac, "app", bridge.Config{Gate: g})
	require.NoError(t, err)

	log := NewBuilder().WithSink(b).Build()
	log.Debug("filtered")
	log.Info("hello", String("user", "alice"))
	log.Error("failed")

	assert.Equal(t, []string{"hello user=alice", "failed"}, fac.Messages())
	calls := fac.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, hosttest.CodeInfo, calls[0].Code)
	assert.Equal(t, hosttest.CodeError, calls[1].Code)
	assert.Zero(t, fac.Violations())
}

func TestLogger_AsyncBridge(t *testing.T) {
	g := gate.New()
	fac := hosttest.New(g)
	fac.SetLevel("app", hosttest.CodeDebug)

	b, err := bridge.NewAsync(fac, "app", bridge.Config{Gate: g})
	require.NoError(t, err)

	log := NewBuilder().WithSink(b).Build()
	for i := 0; i < 10; i++ {
		log.Debugf("message %d", i)
	}
	require.NoError(t, log.Close())

	msgs := fac.Messages()
	require.Len(t, msgs, 10)
	for i, m := range msgs {
		assert.Equal(t, "message "+string(rune('0'+i)), m)
	}
}

// runs fails the test if fn blocks, e.g. on a gate its caller holds.
func runs(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("logging call blocked on the gate")
	}
}

func TestLogger_ContextReusesGuard(t *testing.T) {
	g := gate.New()
	fac := hosttest.New(g)
	fac.SetLevel("app", hosttest.CodeDebug-5) // below Debug: Trace passes

	b, err := bridge.NewSync(fac, "app", bridge.Config{Gate: g})
	require.NoError(t, err)
	local := &memorySink{}

	direct := NewBuilder().WithSink(b).Build()
	multi := NewBuilder().WithSink(bridge.NewMultiSink(b, local)).Build()

	// Go code invoked from a host callback already holds the gate.
	outer := g.Enter()
	ctx := gate.NewContext(context.Background(), outer)
	runs(t, func() {
		direct.InfoContext(ctx, "info", Int("n", 1))
		direct.TraceContext(ctx, "trace")
		direct.DebugContext(ctx, "debug")
		direct.WarnContext(ctx, "warn")
		direct.ErrorContext(ctx, "error")
		direct.LogContext(ctx, WarnLevel, "log")
		multi.InfoContext(ctx, "multi")
	})
	outer.Release()

	direct.Info("plain")

	assert.Equal(t,
		[]string{"info n=1", "trace", "debug", "warn", "error", "log", "multi", "plain"},
		fac.Messages())
	assert.Equal(t, []string{"multi"}, local.messages())
	assert.Zero(t, fac.Violations())
}

func TestLogger_ContextLevelCheck(t *testing.T) {
	sink := &memorySink{min: WarnLevel}
	log := NewBuilder().WithSink(sink).Build()

	log.InfoContext(context.Background(), "dropped")
	log.ErrorContext(context.Background(), "kept")
	assert.Equal(t, []string{"kept"}, sink.messages())
}

func TestLogger_CloseThroughMultiSink(t *testing.T) {
	g := gate.New()
	fac := hosttest.New(g)
	fac.SetLevel("app", hosttest.CodeInfo)

	b, err := bridge.NewAsync(fac, "app", bridge.Config{Gate: g})
	require.NoError(t, err)
	cs := &closingSink{}

	log := NewBuilder().WithSink(bridge.NewMultiSink(b, cs)).Build()
	log.Info("a")
	log.Info("b")
	require.NoError(t, log.Close())

	assert.Equal(t, []string{"a", "b"}, fac.Messages())
	assert.True(t, cs.closed)
}

func TestDefault_Replace(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	sink := &memorySink{}
	SetDefault(NewBuilder().WithSink(sink).Build())

	Info("one")
	With(String("k", "v")).Warn("two")
	Errorf("three %d", 3)
	Debug("four")

	assert.Equal(t, []string{"one", "two k=v", "three 3", "four"}, sink.messages())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", TraceLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warning", WarnLevel},
		{"WARN", WarnLevel},
		{"error", ErrorLevel},
		{"CRITICAL", ErrorLevel},
		{"fatal", ErrorLevel},
		{"off", OffLevel},
		{"bogus", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
