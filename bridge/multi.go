package bridge

import (
	"context"

	"go.uber.org/multierr"

	"github.com/philipp01105/hostlog/core"
)

// MultiSink sends records to multiple sinks, so several consumers can share
// the single registry slot.
type MultiSink struct {
	sinks  []Sink
	filter Filter
}

// NewMultiSink creates a new multi-sink
func NewMultiSink(sinks ...Sink) *MultiSink {
	m := &MultiSink{
		sinks:  sinks,
		filter: Filter{min: core.OffLevel},
	}
	for _, s := range sinks {
		lvl := core.TraceLevel
		if f, ok := s.(Filtered); ok {
			lvl = f.Filter().Level()
		}
		if lvl < m.filter.min {
			m.filter.min = lvl
		}
	}
	return m
}

// Enabled reports whether any child sink accepts level.
func (m *MultiSink) Enabled(level core.Level) bool {
	if !m.filter.Allows(level) {
		return false
	}
	for _, s := range m.sinks {
		if s.Enabled(level) {
			return true
		}
	}
	return false
}

// Log forwards rec to every child that accepts its level.
func (m *MultiSink) Log(rec core.Record) {
	for _, s := range m.sinks {
		if s.Enabled(rec.Level()) {
			s.Log(rec)
		}
	}
}

// LogContext forwards rec to every child that accepts its level, passing
// ctx to children that can reuse a gate guard carried in it.
func (m *MultiSink) LogContext(ctx context.Context, rec core.Record) {
	for _, s := range m.sinks {
		if s.Enabled(rec.Level()) {
			LogContext(ctx, s, rec)
		}
	}
}

// Close closes every child that can be closed and returns their combined
// errors.
func (m *MultiSink) Close() error {
	var err error
	for _, s := range m.sinks {
		err = multierr.Append(err, closeSink(s))
	}
	return err
}

// Flush flushes all children.
func (m *MultiSink) Flush() {
	for _, s := range m.sinks {
		s.Flush()
	}
}

// Filter returns the least restrictive filter among the children.
func (m *MultiSink) Filter() Filter {
	return m.filter
}
