package bridge

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/host"
)

// LevelCodes holds the host's native codes for its named severity tiers.
// It is resolved once per sink and never modified afterwards.
type LevelCodes struct {
	Critical int
	Error    int
	Warn     int
	Info     int
	Debug    int
}

// Resolve queries the facility's named level constants. The caller must
// hold the host call gate. Every failing name is reported, not just the
// first one.
func Resolve(fac host.Facility) (LevelCodes, error) {
	if fac == nil {
		return LevelCodes{}, ErrFacilityUnavailable
	}

	var codes LevelCodes
	var errs error
	lookup := func(name string, dst *int) {
		code, err := safeLevelCode(fac, name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w: %v", name, ErrFacilityUnavailable, err))
			return
		}
		if code < host.MinCode || code > host.MaxCode {
			errs = multierr.Append(errs, fmt.Errorf("%s=%d: %w", name, code, ErrInvalidLevel))
			return
		}
		*dst = code
	}

	lookup(host.LevelCritical, &codes.Critical)
	lookup(host.LevelError, &codes.Error)
	lookup(host.LevelWarning, &codes.Warn)
	lookup(host.LevelInfo, &codes.Info)
	lookup(host.LevelDebug, &codes.Debug)
	if errs != nil {
		return LevelCodes{}, errs
	}

	if !(codes.Debug < codes.Info && codes.Info < codes.Warn &&
		codes.Warn < codes.Error && codes.Error < codes.Critical) {
		return LevelCodes{}, fmt.Errorf("%w: codes %+v are not ordered by severity", ErrInvalidLevel, codes)
	}
	return codes, nil
}

// Translate maps a record level to the host code it is delivered with.
// Trace has no host equivalent and shares the Debug code.
func (c LevelCodes) Translate(level core.Level) int {
	switch level {
	case core.ErrorLevel:
		return c.Error
	case core.WarnLevel:
		return c.Warn
	case core.InfoLevel:
		return c.Info
	default:
		return c.Debug
	}
}

// ComputeEffectiveFilter maps a raw host level to the nearest tier at or
// above it. Codes that are negative or more severe than Error disable all
// delivery.
func (c LevelCodes) ComputeEffectiveFilter(raw int) Filter {
	switch {
	case raw < 0:
		return Filter{min: core.OffLevel}
	case raw < c.Debug:
		return Filter{min: core.TraceLevel}
	case raw == c.Debug:
		return Filter{min: core.DebugLevel}
	case raw <= c.Info:
		return Filter{min: core.InfoLevel}
	case raw <= c.Warn:
		return Filter{min: core.WarnLevel}
	case raw <= c.Error:
		return Filter{min: core.ErrorLevel}
	default:
		return Filter{min: core.OffLevel}
	}
}

// Filter is the minimum severity a record needs to be delivered.
type Filter struct {
	min core.Level
}

// NewFilter returns a filter passing records at or above min. Passing
// core.OffLevel yields a filter that passes nothing.
func NewFilter(min core.Level) Filter {
	return Filter{min: min}
}

// Allows reports whether a record at level passes the filter.
func (f Filter) Allows(level core.Level) bool {
	return level.Valid() && level >= f.min
}

// Level returns the filter's threshold.
func (f Filter) Level() core.Level {
	return f.min
}

func (f Filter) String() string {
	return f.min.String()
}

func safeLevelCode(fac host.Facility, name string) (code int, err error) {
	err = safeCall(func() error {
		var callErr error
		code, callErr = fac.LevelCode(name)
		return callErr
	})
	return code, err
}
