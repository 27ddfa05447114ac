package logger

import (
	"context"
	"fmt"
	"time"

	"github.com/philipp01105/hostlog/bridge"
	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/formatter"
)

// Logger renders structured log calls into records for a sink (immutable)
type Logger struct {
	sink          bridge.Sink
	formatter     formatter.Formatter
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	sink          bridge.Sink
	formatter     formatter.Formatter
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.TraceLevel, // the sink's filter decides by default
		callerSkip: 3,               // GetCaller -> log -> Info -> caller
	}
}

// WithSink sets the sink records are delivered to
func (b *Builder) WithSink(s bridge.Sink) *Builder {
	b.sink = s
	return b
}

// WithFormatter sets how entries are rendered into record messages
// (default: TextFormatter)
func (b *Builder) WithFormatter(f formatter.Formatter) *Builder {
	b.formatter = f
	return b
}

// WithLevel sets a minimum level applied before the sink's own filter
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	sink := b.sink
	if sink == nil {
		sink = bridge.NopSink{}
	}
	f := b.formatter
	if f == nil {
		f = formatter.NewTextFormatter(formatter.Config{IncludeCaller: b.includeCaller})
	}
	return &Logger{
		sink:          sink,
		formatter:     f,
		level:         b.level,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
	}
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &Logger{
		sink:          l.sink,
		formatter:     l.formatter,
		level:         l.level,
		fields:        newFields,
		includeCaller: l.includeCaller,
		callerSkip:    l.callerSkip,
	}
}

// Enabled reports whether a call at level would produce a record
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level && l.sink.Enabled(level)
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	if !l.Enabled(level) {
		return
	}
	l.log(context.Background(), level, msg, fields)
}

// log renders the entry and hands the record to the sink. The message is
// fully formatted before the sink sees it. ctx is passed to sinks that can
// reuse a gate guard carried in it.
func (l *Logger) log(ctx context.Context, level core.Level, msg string, fields []core.Field) {
	entry := core.GetEntry()
	entry.Time = time.Now()
	entry.Level = level
	entry.Message = msg

	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}
	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip)
	}

	rec := core.NewRecord(level, l.formatter.Format(entry))
	core.PutEntry(entry)
	bridge.LogContext(ctx, l.sink, rec)
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(context.Background(), core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(context.Background(), core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(context.Background(), core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(context.Background(), core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(context.Background(), core.ErrorLevel, msg, fields)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(context.Background(), core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(context.Background(), core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(context.Background(), core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(context.Background(), core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(context.Background(), core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// LogContext logs a message at the specified level. Code running inside a
// host callback passes the context from gate.NewContext so a synchronous
// sink reuses the held gate instead of blocking on it.
func (l *Logger) LogContext(ctx context.Context, level core.Level, msg string, fields ...core.Field) {
	if !l.Enabled(level) {
		return
	}
	l.log(ctx, level, msg, fields)
}

// TraceContext logs a trace message, see LogContext
func (l *Logger) TraceContext(ctx context.Context, msg string, fields ...core.Field) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(ctx, core.TraceLevel, msg, fields)
}

// DebugContext logs a debug message, see LogContext
func (l *Logger) DebugContext(ctx context.Context, msg string, fields ...core.Field) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(ctx, core.DebugLevel, msg, fields)
}

// InfoContext logs an info message, see LogContext
func (l *Logger) InfoContext(ctx context.Context, msg string, fields ...core.Field) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(ctx, core.InfoLevel, msg, fields)
}

// WarnContext logs a warning message, see LogContext
func (l *Logger) WarnContext(ctx context.Context, msg string, fields ...core.Field) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(ctx, core.WarnLevel, msg, fields)
}

// ErrorContext logs an error message, see LogContext
func (l *Logger) ErrorContext(ctx context.Context, msg string, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(ctx, core.ErrorLevel, msg, fields)
}

// Flush flushes the sink
func (l *Logger) Flush() {
	l.sink.Flush()
}

// Close closes the sink if it can be closed, e.g. an AsyncBridge or
// bridge.Global() in front of one, waiting for queued records within the
// sink's drain timeout
func (l *Logger) Close() error {
	if c, ok := l.sink.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
