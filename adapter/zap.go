package adapter

import (
	"context"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/hostlog/bridge"
	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/formatter"
)

// ZapCore is a zapcore.Core that delivers to a bridge.Sink.
type ZapCore struct {
	sink      bridge.Sink
	formatter formatter.Formatter
	fields    []core.Field
	ctx       context.Context
}

var _ zapcore.Core = (*ZapCore)(nil)

// ZapContext returns a field carrying ctx to a ZapCore. Code running inside
// a host callback passes the context from gate.NewContext, either per call
// or through Logger.With, so a synchronous sink reuses the held gate. Other
// cores ignore the field.
func ZapContext(ctx context.Context) zapcore.Field {
	return zapcore.Field{Type: zapcore.SkipType, Interface: ctx}
}

// contextFrom returns the last context carried by a ZapContext field, or
// def if there is none.
func contextFrom(def context.Context, fields []zapcore.Field) context.Context {
	ctx := def
	for _, f := range fields {
		if f.Type != zapcore.SkipType {
			continue
		}
		if c, ok := f.Interface.(context.Context); ok {
			ctx = c
		}
	}
	return ctx
}

// NewZapCore creates a zapcore.Core that delivers to sink. A nil formatter
// selects the text formatter.
func NewZapCore(sink bridge.Sink, f formatter.Formatter) *ZapCore {
	return &ZapCore{
		sink:      sink,
		formatter: defaultFormatter(f),
		ctx:       context.Background(),
	}
}

// Enabled reports whether the sink accepts the level.
func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return c.sink.Enabled(zapLevelToCore(level))
}

// With returns a core that adds fields to every entry.
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	newFields := make([]core.Field, len(c.fields), len(c.fields)+len(fields))
	copy(newFields, c.fields)
	return &ZapCore{
		sink:      c.sink,
		formatter: c.formatter,
		fields:    appendZapFields(newFields, fields),
		ctx:       contextFrom(c.ctx, fields),
	}
}

// Check adds this core to ce if the entry's level is enabled.
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write renders the entry and hands the record to the sink.
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	entry.Time = ent.Time
	entry.Level = zapLevelToCore(ent.Level)
	entry.Message = ent.Message

	if len(c.fields) > 0 {
		entry.Fields = append(entry.Fields, c.fields...)
	}
	entry.Fields = appendZapFields(entry.Fields, fields)

	if ent.Caller.Defined {
		entry.Caller = core.CallerInfo{
			File:      ent.Caller.File,
			ShortFile: filepath.Base(ent.Caller.File),
			Line:      ent.Caller.Line,
			Function:  ent.Caller.Function,
			Defined:   true,
		}
	}

	emit(contextFrom(c.ctx, fields), c.sink, c.formatter, entry)
	return nil
}

// Sync flushes the sink.
func (c *ZapCore) Sync() error {
	c.sink.Flush()
	return nil
}

// zapLevelToCore maps zap levels onto the bridge taxonomy. DPanic, Panic
// and Fatal have no tier of their own and are delivered as errors.
func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level == zapcore.WarnLevel:
		return core.WarnLevel
	case level == zapcore.InfoLevel:
		return core.InfoLevel
	case level == zapcore.DebugLevel:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendZapFields encodes each zap field on its own so the original order
// is kept. A namespace prefixes the keys of every field after it.
func appendZapFields(dst []core.Field, fields []zapcore.Field) []core.Field {
	var ns string
	for _, f := range fields {
		if f.Type == zapcore.NamespaceType {
			if ns == "" {
				ns = f.Key
			} else {
				ns = ns + "." + f.Key
			}
			continue
		}
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		dst = appendMap(dst, ns, enc.Fields)
	}
	return dst
}
