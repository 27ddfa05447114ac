package adapter

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/philipp01105/hostlog/bridge"
	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/formatter"
)

// LogrusHook is a logrus.Hook that delivers entries to a bridge.Sink.
// Pair it with an io.Discard output to route a logrus logger entirely
// through the sink.
type LogrusHook struct {
	sink      bridge.Sink
	formatter formatter.Formatter
}

var _ logrus.Hook = (*LogrusHook)(nil)

// NewLogrusHook creates a hook that delivers to sink. A nil formatter
// selects the text formatter.
func NewLogrusHook(sink bridge.Sink, f formatter.Formatter) *LogrusHook {
	return &LogrusHook{
		sink:      sink,
		formatter: defaultFormatter(f),
	}
}

// Levels returns every logrus level; filtering happens in Fire.
func (h *LogrusHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire renders the entry and hands the record to the sink.
func (h *LogrusHook) Fire(e *logrus.Entry) error {
	level := logrusLevelToCore(e.Level)
	if !h.sink.Enabled(level) {
		return nil
	}

	entry := core.GetEntry()
	entry.Time = e.Time
	entry.Level = level
	entry.Message = e.Message
	if len(e.Data) > 0 {
		entry.Fields = appendMap(entry.Fields, "", e.Data)
	}
	if e.Caller != nil {
		entry.Caller = core.CallerInfo{
			File:      e.Caller.File,
			ShortFile: filepath.Base(e.Caller.File),
			Line:      e.Caller.Line,
			Function:  e.Caller.Function,
			Defined:   true,
		}
	}

	emit(e.Context, h.sink, h.formatter, entry)
	return nil
}

// logrusLevelToCore maps logrus levels onto the bridge taxonomy. Panic and
// Fatal are delivered as errors.
func logrusLevelToCore(level logrus.Level) core.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return core.ErrorLevel
	case logrus.WarnLevel:
		return core.WarnLevel
	case logrus.InfoLevel:
		return core.InfoLevel
	case logrus.DebugLevel:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}
