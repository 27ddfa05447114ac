package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/gate"
	"github.com/philipp01105/hostlog/host"
)

// Sink consumes log records.
type Sink interface {
	// Enabled reports whether a record at level would be delivered.
	// It has no side effects.
	Enabled(level core.Level) bool

	// Log delivers rec if its level is enabled. Log never returns an error
	// and never panics because of the host.
	Log(rec core.Record)

	// Flush pushes out buffered records, if the sink buffers any.
	Flush()
}

// Filtered is implemented by sinks with a fixed effective filter.
type Filtered interface {
	Filter() Filter
}

// ContextSink is implemented by sinks that can reuse a gate guard carried
// in ctx (see gate.NewContext) instead of acquiring the gate again.
type ContextSink interface {
	LogContext(ctx context.Context, rec core.Record)
}

// LogContext delivers rec through s, passing ctx along when s is a
// ContextSink.
func LogContext(ctx context.Context, s Sink, rec core.Record) {
	if cs, ok := s.(ContextSink); ok && ctx != nil {
		cs.LogContext(ctx, rec)
		return
	}
	s.Log(rec)
}

// closeSink closes s if it can be closed.
func closeSink(s Sink) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// NopSink discards every record and reports all levels as disabled.
type NopSink struct{}

func (NopSink) Enabled(core.Level) bool { return false }
func (NopSink) Log(core.Record)         {}
func (NopSink) Flush()                  {}
func (NopSink) Filter() Filter          { return Filter{min: core.OffLevel} }

// Config holds configuration shared by SyncBridge and AsyncBridge
type Config struct {
	// Gate guarding host calls (default: gate.Global())
	Gate *gate.Gate
	// LockOSThread pins the async worker goroutine to one OS thread, for
	// hosts that require all calls to come from the same thread
	LockOSThread bool
	// DrainTimeout bounds how long AsyncBridge.Close waits (default: 5s)
	DrainTimeout time.Duration
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Gate == nil {
		cfg.Gate = gate.Global()
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// bridgeBase holds the state both bridges share. Everything except stats
// is fixed at construction and read without locking.
type bridgeBase struct {
	gate    *gate.Gate
	channel host.Channel
	codes   LevelCodes
	filter  Filter
	stats   *Stats
}

// newBridgeBase resolves the level codes, looks up the channel and freezes
// its effective level into a filter, all under the gate.
func newBridgeBase(fac host.Facility, name string, g *gate.Gate) (bridgeBase, error) {
	if fac == nil {
		return bridgeBase{}, &SetupError{Op: "resolve levels", Channel: name, Err: ErrFacilityUnavailable}
	}

	guard := g.Enter()
	defer guard.Release()

	codes, err := Resolve(fac)
	if err != nil {
		return bridgeBase{}, &SetupError{Op: "resolve levels", Channel: name, Err: err}
	}

	var ch host.Channel
	err = safeCall(func() error {
		var lookupErr error
		ch, lookupErr = fac.Channel(name)
		return lookupErr
	})
	if err == nil && ch == nil {
		err = errors.New("no channel returned")
	}
	if err != nil {
		return bridgeBase{}, &SetupError{Op: "lookup channel", Channel: name, Err: fmt.Errorf("%w: %v", ErrFacilityUnavailable, err)}
	}

	var raw int
	err = safeCall(func() error {
		var levelErr error
		raw, levelErr = ch.EffectiveLevel()
		return levelErr
	})
	if err != nil {
		return bridgeBase{}, &SetupError{Op: "query effective level", Channel: name, Err: fmt.Errorf("%w: %v", ErrFacilityUnavailable, err)}
	}

	return bridgeBase{
		gate:    g,
		channel: ch,
		codes:   codes,
		filter:  codes.ComputeEffectiveFilter(raw),
		stats:   NewStats(),
	}, nil
}

// Enabled reports whether level passes the filter frozen at construction.
func (b *bridgeBase) Enabled(level core.Level) bool {
	return b.filter.Allows(level)
}

// Filter returns the effective filter.
func (b *bridgeBase) Filter() Filter {
	return b.filter
}

// Codes returns the resolved host level codes.
func (b *bridgeBase) Codes() LevelCodes {
	return b.codes
}

// Stats returns a snapshot of the current statistics
func (b *bridgeBase) Stats() Snapshot {
	return b.stats.GetSnapshot()
}

// forward makes the host call for rec. The caller must hold the gate.
// Errors and panics raised by the host are counted and discarded.
func (b *bridgeBase) forward(rec core.Record) {
	code := b.codes.Translate(rec.Level())
	err := safeCall(func() error {
		return b.channel.Log(code, rec.Message())
	})
	if err != nil {
		b.stats.IncrementDeliveryFailed()
		return
	}
	b.stats.IncrementDelivered()
}

// safeCall runs a host call and turns a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host call panicked: %v", r)
		}
	}()
	return fn()
}
