package bridge

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/hostlog/core"
)

// WriterSink writes records as "LEVEL message" lines to an io.Writer. It
// never touches the host, so it is typically combined with a bridge via
// NewMultiSink to keep a local copy of what the host receives.
type WriterSink struct {
	mu     sync.Mutex
	writer io.Writer
	buf    bytes.Buffer
	filter Filter
	failed uint64
}

var _ Filtered = (*WriterSink)(nil)

// NewWriterSink creates a sink writing records at or above min to w
// (default: os.Stderr).
func NewWriterSink(w io.Writer, min core.Level) *WriterSink {
	if w == nil {
		w = os.Stderr
	}
	return &WriterSink{writer: w, filter: NewFilter(min)}
}

// Enabled reports whether the level passes the sink's filter.
func (s *WriterSink) Enabled(level core.Level) bool {
	return s.filter.Allows(level)
}

// Filter returns the sink's filter.
func (s *WriterSink) Filter() Filter {
	return s.filter
}

// Log writes one line. Write errors are counted and otherwise ignored.
func (s *WriterSink) Log(rec core.Record) {
	if !s.filter.Allows(rec.Level()) {
		return
	}

	s.mu.Lock()
	s.buf.Reset()
	s.buf.WriteString(rec.Level().String())
	s.buf.WriteByte(' ')
	s.buf.WriteString(rec.Message())
	s.buf.WriteByte('\n')
	if _, err := s.writer.Write(s.buf.Bytes()); err != nil {
		s.failed++
	}
	s.mu.Unlock()
}

// Flush syncs the writer if it supports it, e.g. an *os.File.
func (s *WriterSink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.writer.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
}

// Failed returns how many writes returned an error.
func (s *WriterSink) Failed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}
