package bridge

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/gate"
	"github.com/philipp01105/hostlog/host/hosttest"
)

// resetRegistry empties the process-wide slot so each test starts clean.
func resetRegistry(t *testing.T) {
	t.Helper()
	clearSlot := func() {
		if a, ok := Installed().(*AsyncBridge); ok {
			a.Shutdown()
		}
		installed.Store(false)
		active.Store(nil)
		maxLevel.Store(int32(core.OffLevel))
	}
	clearSlot()
	t.Cleanup(clearSlot)
}

func TestInstall_Once(t *testing.T) {
	resetRegistry(t)
	g, f := newHost(hosttest.CodeInfo)

	require.NoError(t, InstallSync(f, "app", Config{Gate: g}))
	assert.IsType(t, &SyncBridge{}, Installed())
	assert.Equal(t, core.InfoLevel, MaxLevel())

	err := InstallSync(f, "app", Config{Gate: g})
	assert.ErrorIs(t, err, ErrAlreadyInstalled)
	err = InstallAsync(f, "app", Config{Gate: g})
	assert.ErrorIs(t, err, ErrAlreadyInstalled)
	assert.IsType(t, &SyncBridge{}, Installed(), "the first sink stays installed")
}

func TestInstall_Nil(t *testing.T) {
	resetRegistry(t)
	assert.ErrorIs(t, Install(nil), ErrNilSink)
	assert.Nil(t, Installed())
}

func TestInstall_TypedNil(t *testing.T) {
	resetRegistry(t)
	var s *SyncBridge
	assert.ErrorIs(t, Install(s), ErrNilSink)
	var a *AsyncBridge
	assert.ErrorIs(t, Install(a), ErrNilSink)
	assert.Nil(t, Installed())
	assert.Equal(t, core.OffLevel, MaxLevel())
}

func TestGlobal_LogContextReusesGuard(t *testing.T) {
	resetRegistry(t)
	g, f := newHost(hosttest.CodeInfo)
	require.NoError(t, InstallSync(f, "app", Config{Gate: g}))

	cs, ok := Global().(ContextSink)
	require.True(t, ok)

	outer := g.Enter()
	ctx := gate.NewContext(context.Background(), outer)
	finishesWithin(t, 2*time.Second, func() {
		cs.LogContext(ctx, core.NewRecord(core.WarnLevel, "from callback"))
	})
	outer.Release()

	assert.Equal(t, []string{"from callback"}, f.Messages())
	assert.Zero(t, f.Violations())
}

func TestGlobal_CloseDrainsAsync(t *testing.T) {
	resetRegistry(t)
	g, f := newHost(hosttest.CodeDebug)
	require.NoError(t, InstallAsync(f, "app", Config{Gate: g}))

	sink := Global()
	for i := 0; i < 100; i++ {
		sink.Log(core.NewRecord(core.InfoLevel, fmt.Sprintf("m%d", i)))
	}

	c, ok := sink.(interface{ Close() error })
	require.True(t, ok)
	require.NoError(t, c.Close())

	assert.Len(t, f.Messages(), 100)
	a := Installed().(*AsyncBridge)
	select {
	case <-a.Done():
	default:
		t.Fatal("worker still running after Close")
	}
	assert.Zero(t, a.Pending())
}

func TestGlobal_CloseWithoutSink(t *testing.T) {
	resetRegistry(t)
	c := Global().(interface{ Close() error })
	assert.NoError(t, c.Close())
}

func TestInstall_SetupErrorLeavesSlotEmpty(t *testing.T) {
	resetRegistry(t)
	g, f := newHost(hosttest.CodeInfo)
	f.SetUnavailable(true)

	var setupErr *SetupError
	require.ErrorAs(t, InstallAsync(f, "app", Config{Gate: g}), &setupErr)
	assert.Nil(t, Installed())
	assert.Equal(t, core.OffLevel, MaxLevel())

	f.SetUnavailable(false)
	assert.NoError(t, InstallAsync(f, "app", Config{Gate: g}))
}

func TestInstallAsync_Scenario(t *testing.T) {
	resetRegistry(t)
	g, f := newHost(hosttest.CodeDebug)
	require.NoError(t, InstallAsync(f, "app", Config{Gate: g}))

	sink := Global()
	sink.Log(core.NewRecord(core.DebugLevel, "x"))
	sink.Log(core.NewRecord(core.InfoLevel, "y"))
	sink.Log(core.NewRecord(core.ErrorLevel, "z"))
	sink.Flush()

	require.True(t, f.WaitForCalls(3, time.Second))
	calls := f.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, []string{"x", "y", "z"}, f.Messages())
	assert.Equal(t, hosttest.CodeDebug, calls[0].Code)
	assert.Equal(t, hosttest.CodeInfo, calls[1].Code)
	assert.Equal(t, hosttest.CodeError, calls[2].Code)
}

func TestGlobal_DisabledUntilInstalled(t *testing.T) {
	resetRegistry(t)
	sink := Global()

	assert.False(t, sink.Enabled(core.ErrorLevel))
	assert.NotPanics(t, func() {
		sink.Log(core.NewRecord(core.ErrorLevel, "nobody listens"))
		sink.Flush()
	})

	g, f := newHost(hosttest.CodeWarning)
	require.NoError(t, InstallSync(f, "app", Config{Gate: g}))
	assert.False(t, sink.Enabled(core.InfoLevel))
	assert.True(t, sink.Enabled(core.WarnLevel))
}

func TestInstall_UnfilteredSinkPublishesTrace(t *testing.T) {
	resetRegistry(t)
	require.NoError(t, Install(&recordingSink{}))
	assert.Equal(t, core.TraceLevel, MaxLevel())
}

func TestInstallAsync_Race(t *testing.T) {
	resetRegistry(t)
	g, f := newHost(hosttest.CodeInfo)

	var wins, losses int32
	var errg errgroup.Group
	for i := 0; i < 16; i++ {
		errg.Go(func() error {
			switch err := InstallAsync(f, "app", Config{Gate: g}); err {
			case nil:
				atomic.AddInt32(&wins, 1)
			case ErrAlreadyInstalled:
				atomic.AddInt32(&losses, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, errg.Wait())
	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(15), losses)
	assert.IsType(t, &AsyncBridge{}, Installed())
}

// recordingSink accepts every level and keeps what it receives.
type recordingSink struct {
	records []core.Record
	flushes int
}

func (r *recordingSink) Enabled(core.Level) bool { return true }
func (r *recordingSink) Log(rec core.Record)     { r.records = append(r.records, rec) }
func (r *recordingSink) Flush()                  { r.flushes++ }
