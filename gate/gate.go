package gate

import (
	"context"
	"sync"
	"sync/atomic"
)

// Gate is a mutual-exclusion permit for running code inside the host
// runtime. At most one Guard per Gate is live at any instant.
type Gate struct {
	mu   sync.Mutex
	held atomic.Bool
}

var global = New()

// Global returns the process-wide gate shared by every bridge that does
// not configure its own.
func Global() *Gate {
	return global
}

// New returns an independent gate.
func New() *Gate {
	return &Gate{}
}

// Guard is proof that its holder may call into the host runtime.
// Release it with defer right after acquiring it.
type Guard struct {
	gate     *Gate
	nested   bool
	released atomic.Bool
}

// Enter blocks until the calling goroutine may run inside the host.
// It may be called from any goroutine. Enter is not reentrant; code that
// already holds a guard should use EnterContext.
func (g *Gate) Enter() *Guard {
	g.mu.Lock()
	g.held.Store(true)
	return &Guard{gate: g}
}

// EnterContext behaves like Enter unless ctx carries a live guard for g
// (see NewContext), in which case it returns immediately with a nested
// guard whose Release does nothing.
func (g *Gate) EnterContext(ctx context.Context) *Guard {
	if ctx != nil {
		if outer, ok := ctx.Value(guardKey{}).(*Guard); ok && outer.gate == g && !outer.released.Load() {
			return &Guard{gate: g, nested: true}
		}
	}
	return g.Enter()
}

// Do runs fn while holding the gate. The gate is released when fn
// returns or panics.
func (g *Gate) Do(fn func() error) error {
	guard := g.Enter()
	defer guard.Release()
	return fn()
}

// Held reports whether some goroutine currently holds the gate.
func (g *Gate) Held() bool {
	return g.held.Load()
}

// Release gives the permit back. Calling it more than once is safe.
func (gd *Guard) Release() {
	if gd == nil || !gd.released.CompareAndSwap(false, true) {
		return
	}
	if gd.nested {
		return
	}
	gd.gate.held.Store(false)
	gd.gate.mu.Unlock()
}

type guardKey struct{}

// NewContext returns a copy of ctx carrying gd. The context must stay on
// the goroutine that owns gd; handing it to another goroutine would let
// two goroutines run inside the host at once.
func NewContext(ctx context.Context, gd *Guard) context.Context {
	return context.WithValue(ctx, guardKey{}, gd)
}
