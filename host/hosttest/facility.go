package hosttest

import (
	"errors"
	"sync"
	"time"

	"github.com/philipp01105/hostlog/gate"
	"github.com/philipp01105/hostlog/host"
)

// Default level codes of the in-memory host.
const (
	CodeCritical = 50
	CodeError    = 40
	CodeWarning  = 30
	CodeInfo     = 20
	CodeDebug    = 10
)

// ErrUnavailable is returned by every call while the facility is marked
// unavailable.
var ErrUnavailable = errors.New("hosttest: logging facility unavailable")

// Call is one recorded Channel.Log invocation.
type Call struct {
	Channel string
	Code    int
	Message string
}

// Facility is an in-memory host.Facility. It records every Log call and,
// when constructed with a gate, counts calls made without holding it.
type Facility struct {
	gate *gate.Gate

	mu          sync.Mutex
	cond        *sync.Cond
	codes       map[string]int
	levels      map[string]int
	defaultLvl  int
	unavailable bool
	logErr      error
	logPanic    interface{}
	onLog       func(Call)
	calls       []Call
	violations  int
	lookups     int
}

// New creates a facility with the default level codes. Channels that were
// never configured report CodeWarning as their effective level.
func New(g *gate.Gate) *Facility {
	f := &Facility{
		gate: g,
		codes: map[string]int{
			host.LevelCritical: CodeCritical,
			host.LevelError:    CodeError,
			host.LevelWarning:  CodeWarning,
			host.LevelInfo:     CodeInfo,
			host.LevelDebug:    CodeDebug,
		},
		levels:     make(map[string]int),
		defaultLvl: CodeWarning,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// SetCode overrides the value of a named level constant.
func (f *Facility) SetCode(name string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[name] = code
}

// DeleteCode removes a named level constant.
func (f *Facility) DeleteCode(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.codes, name)
}

// SetLevel sets the effective level of a channel.
func (f *Facility) SetLevel(channel string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels[channel] = code
}

// SetUnavailable makes every call fail with ErrUnavailable.
func (f *Facility) SetUnavailable(unavailable bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unavailable = unavailable
}

// FailLog makes Log record the call and then return err.
func (f *Facility) FailLog(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logErr = err
}

// PanicLog makes Log record the call and then panic with v.
func (f *Facility) PanicLog(v interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logPanic = v
}

// OnLog registers fn to run inside every Log call, before it returns.
// fn runs without the facility's internal lock held.
func (f *Facility) OnLog(fn func(Call)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onLog = fn
}

// LevelCode implements host.Facility.
func (f *Facility) LevelCode(name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkGate()
	if f.unavailable {
		return 0, ErrUnavailable
	}
	code, ok := f.codes[name]
	if !ok {
		return 0, errors.New("hosttest: no level named " + name)
	}
	return code, nil
}

// Channel implements host.Facility.
func (f *Facility) Channel(name string) (host.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkGate()
	if f.unavailable {
		return nil, ErrUnavailable
	}
	f.lookups++
	return &channel{f: f, name: name}, nil
}

// Calls returns a copy of every recorded Log call in arrival order.
func (f *Facility) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Messages returns the message of every recorded call in arrival order.
func (f *Facility) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Message
	}
	return out
}

// Violations returns how many calls ran without the gate held.
func (f *Facility) Violations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.violations
}

// Lookups returns how many channel lookups were made.
func (f *Facility) Lookups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookups
}

// WaitForCalls blocks until at least n calls were recorded or timeout
// expires, and reports whether n was reached.
func (f *Facility) WaitForCalls(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, func() {
		f.mu.Lock()
		f.cond.Broadcast()
		f.mu.Unlock()
	})
	defer timer.Stop()

	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.calls) < n {
		if !time.Now().Before(deadline) {
			return false
		}
		f.cond.Wait()
	}
	return true
}

// checkGate must be called with f.mu held.
func (f *Facility) checkGate() {
	if f.gate != nil && !f.gate.Held() {
		f.violations++
	}
}

type channel struct {
	f    *Facility
	name string
}

func (c *channel) EffectiveLevel() (int, error) {
	f := c.f
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkGate()
	if f.unavailable {
		return 0, ErrUnavailable
	}
	if lvl, ok := f.levels[c.name]; ok {
		return lvl, nil
	}
	return f.defaultLvl, nil
}

func (c *channel) Log(code int, msg string) error {
	f := c.f
	call := Call{Channel: c.name, Code: code, Message: msg}

	f.mu.Lock()
	f.checkGate()
	if f.unavailable {
		f.mu.Unlock()
		return ErrUnavailable
	}
	f.calls = append(f.calls, call)
	f.cond.Broadcast()
	onLog, logErr, logPanic := f.onLog, f.logErr, f.logPanic
	f.mu.Unlock()

	if onLog != nil {
		onLog(call)
	}
	if logPanic != nil {
		panic(logPanic)
	}
	return logErr
}
