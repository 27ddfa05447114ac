package bridge

import (
	"context"

	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/host"
)

// SyncBridge delivers each record on the calling goroutine, holding the
// host call gate for the duration of the host call.
type SyncBridge struct {
	bridgeBase
}

// NewSync creates a synchronous bridge to the named host channel.
// It fails with a *SetupError if the facility cannot be reached or
// reports level codes the bridge cannot represent.
func NewSync(fac host.Facility, name string, cfg Config) (*SyncBridge, error) {
	applyDefaults(&cfg)
	base, err := newBridgeBase(fac, name, cfg.Gate)
	if err != nil {
		return nil, err
	}
	return &SyncBridge{bridgeBase: base}, nil
}

// Log delivers rec synchronously if its level is enabled. A failing host
// call is discarded; the record is not retried.
func (s *SyncBridge) Log(rec core.Record) {
	if !s.filter.Allows(rec.Level()) {
		return
	}
	guard := s.gate.Enter()
	defer guard.Release()
	s.forward(rec)
}

// LogContext is Log for callers that may already hold the gate, e.g. Go
// code invoked from a host callback. See gate.NewContext.
func (s *SyncBridge) LogContext(ctx context.Context, rec core.Record) {
	if !s.filter.Allows(rec.Level()) {
		return
	}
	guard := s.gate.EnterContext(ctx)
	defer guard.Release()
	s.forward(rec)
}

// Flush does nothing; records are delivered before Log returns.
func (s *SyncBridge) Flush() {}
