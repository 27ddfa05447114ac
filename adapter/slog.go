package adapter

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/philipp01105/hostlog/bridge"
	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/formatter"
)

// SlogHandler implements slog.Handler on top of a bridge.Sink.
type SlogHandler struct {
	sink      bridge.Sink
	formatter formatter.Formatter
	attrs     []core.Field
	group     string
}

// NewSlogHandler creates a slog.Handler that delivers to sink. A nil
// formatter selects the text formatter.
func NewSlogHandler(sink bridge.Sink, f formatter.Formatter) *SlogHandler {
	return &SlogHandler{
		sink:      sink,
		formatter: defaultFormatter(f),
	}
}

// Enabled reports whether the sink accepts records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.sink.Enabled(slogLevelToCore(level))
}

// Handle converts a slog.Record into a record for the sink. If the sink
// can reuse a gate guard carried in ctx, it does.
func (s *SlogHandler) Handle(ctx context.Context, record slog.Record) error {
	entry := core.GetEntry()
	entry.Time = record.Time
	entry.Level = slogLevelToCore(record.Level)
	entry.Message = record.Message

	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}
	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = appendSlogAttr(entry.Fields, s.group, a)
		return true
	})

	if record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		if fr, _ := frames.Next(); fr.File != "" {
			entry.Caller = core.CallerInfo{
				File:      fr.File,
				ShortFile: filepath.Base(fr.File),
				Line:      fr.Line,
				Function:  fr.Function,
				Defined:   true,
			}
		}
	}

	emit(ctx, s.sink, s.formatter, entry)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendSlogAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		sink:      s.sink,
		formatter: s.formatter,
		attrs:     newAttrs,
		group:     s.group,
	}
}

// WithGroup returns a new SlogHandler whose later attributes are prefixed
// with name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		sink:      s.sink,
		formatter: s.formatter,
		attrs:     s.attrs[:len(s.attrs):len(s.attrs)],
		group:     newGroup,
	}
}

// slogLevelToCore maps slog levels onto the bridge taxonomy. Anything
// below Debug is Trace.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendSlogAttr flattens a into fields, prefixing keys with group.
func appendSlogAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + a.Key
	} else if key == "" {
		key = group
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(fields, core.Field{Key: key, Type: core.Uint64Type, Int64: int64(a.Value.Uint64())})
	case slog.KindFloat64:
		return append(fields, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		return append(fields, valueField(key, a.Value.Bool()))
	case slog.KindTime:
		return append(fields, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			fields = appendSlogAttr(fields, key, ga)
		}
		return fields
	default:
		return append(fields, valueField(key, a.Value.Any()))
	}
}
