package bridge

import (
	"context"
	"reflect"
	"sync/atomic"

	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/host"
)

// The registry is a single process-wide slot. installed flips exactly once
// via compare-and-set; active and maxLevel are published after it.
var (
	installed atomic.Bool
	active    atomic.Pointer[sinkHolder]
	maxLevel  atomic.Int32
)

type sinkHolder struct {
	sink Sink
}

func init() {
	maxLevel.Store(int32(core.OffLevel))
}

// Install makes s the process-wide sink. Only the first call succeeds;
// later calls return ErrAlreadyInstalled. There is no way to uninstall.
// A nil sink, including a nil pointer in a non-nil interface, is refused
// with ErrNilSink.
func Install(s Sink) error {
	if isNilSink(s) {
		return ErrNilSink
	}
	if !installed.CompareAndSwap(false, true) {
		return ErrAlreadyInstalled
	}

	lvl := core.TraceLevel
	if f, ok := s.(Filtered); ok {
		lvl = f.Filter().Level()
	}
	maxLevel.Store(int32(lvl))
	active.Store(&sinkHolder{sink: s})
	return nil
}

func isNilSink(s Sink) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// InstallSync constructs a SyncBridge for the named channel and installs it.
func InstallSync(fac host.Facility, name string, cfg Config) error {
	s, err := NewSync(fac, name, cfg)
	if err != nil {
		return err
	}
	return Install(s)
}

// InstallAsync constructs an AsyncBridge for the named channel and installs
// it. If another sink won the slot, the new bridge's worker is shut down.
func InstallAsync(fac host.Facility, name string, cfg Config) error {
	a, err := NewAsync(fac, name, cfg)
	if err != nil {
		return err
	}
	if err := Install(a); err != nil {
		a.Shutdown()
		return err
	}
	return nil
}

// Installed returns the process-wide sink, or nil before Install.
func Installed() Sink {
	if h := active.Load(); h != nil {
		return h.sink
	}
	return nil
}

// MaxLevel returns the least severe level the installed sink accepts, or
// core.OffLevel when nothing is installed. Producers can compare against
// it before building a record.
func MaxLevel() core.Level {
	return core.Level(maxLevel.Load())
}

// Global returns a Sink that forwards to whatever sink is installed and is
// disabled until one is. It also forwards LogContext and Close, so a
// logger built on it can reuse a gate guard and drain an AsyncBridge.
func Global() Sink {
	return globalSink{}
}

type globalSink struct{}

func (globalSink) Enabled(level core.Level) bool {
	if level < MaxLevel() {
		return false
	}
	s := Installed()
	return s != nil && s.Enabled(level)
}

func (globalSink) Log(rec core.Record) {
	if s := Installed(); s != nil {
		s.Log(rec)
	}
}

func (globalSink) LogContext(ctx context.Context, rec core.Record) {
	if s := Installed(); s != nil {
		LogContext(ctx, s, rec)
	}
}

// Close closes the installed sink if it can be closed. The sink stays
// installed; records logged afterwards are dropped by it.
func (globalSink) Close() error {
	if s := Installed(); s != nil {
		return closeSink(s)
	}
	return nil
}

func (globalSink) Flush() {
	if s := Installed(); s != nil {
		s.Flush()
	}
}
