package bridge

import (
	"context"
	"runtime"
	"time"

	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/host"
)

// AsyncBridge hands records to a dedicated worker goroutine through an
// unbounded FIFO queue. Producers never touch the host call gate; the
// worker is the only goroutine that acquires it on their behalf.
type AsyncBridge struct {
	bridgeBase
	queue        *recordQueue
	done         chan struct{}
	drainTimeout time.Duration
}

// NewAsync creates an asynchronous bridge to the named host channel and
// starts its worker. Setup failures are reported as *SetupError and no
// worker is started.
func NewAsync(fac host.Facility, name string, cfg Config) (*AsyncBridge, error) {
	applyDefaults(&cfg)
	base, err := newBridgeBase(fac, name, cfg.Gate)
	if err != nil {
		return nil, err
	}

	a := &AsyncBridge{
		bridgeBase:   base,
		queue:        newRecordQueue(),
		done:         make(chan struct{}),
		drainTimeout: cfg.DrainTimeout,
	}
	go a.process(cfg.LockOSThread)
	return a, nil
}

// Log enqueues rec if its level is enabled and returns immediately.
// Records logged after Shutdown are dropped.
func (a *AsyncBridge) Log(rec core.Record) {
	if !a.filter.Allows(rec.Level()) {
		return
	}
	if !a.queue.push(rec) {
		a.stats.IncrementDroppedClosed()
		return
	}
	a.stats.IncrementEnqueued()
}

// Flush does nothing. Use Close to wait for queued records.
func (a *AsyncBridge) Flush() {}

// Pending returns the number of records waiting for the worker.
func (a *AsyncBridge) Pending() int {
	return a.queue.pending()
}

// Shutdown tells the worker to stop after the records already queued and
// returns without waiting. Records logged afterwards are dropped. Calling
// Shutdown more than once is safe.
func (a *AsyncBridge) Shutdown() {
	a.queue.pushStop()
}

// Done is closed once the worker has stopped.
func (a *AsyncBridge) Done() <-chan struct{} {
	return a.done
}

// Close shuts the bridge down and waits up to the configured drain timeout
// for the worker to deliver what was queued before it.
func (a *AsyncBridge) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.drainTimeout)
	defer cancel()
	return a.CloseContext(ctx)
}

// CloseContext shuts the bridge down and waits for the worker until ctx is
// done, in which case it returns ctx.Err(). The worker keeps draining in
// the background after a timeout.
func (a *AsyncBridge) CloseContext(ctx context.Context) error {
	a.Shutdown()
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// process is the worker loop. It stops on the stop token without looking
// at anything behind it.
func (a *AsyncBridge) process(lockOSThread bool) {
	defer close(a.done)
	if lockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	for {
		rec, ok := a.queue.pop()
		if !ok {
			return
		}
		a.deliver(rec)
	}
}

func (a *AsyncBridge) deliver(rec core.Record) {
	guard := a.gate.Enter()
	defer guard.Release()
	a.forward(rec)
}
