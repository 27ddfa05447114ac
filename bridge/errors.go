package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrFacilityUnavailable reports that the host logging facility could
	// not be reached while setting up a sink.
	ErrFacilityUnavailable = errors.New("hostlog: host logging facility unavailable")

	// ErrInvalidLevel reports a host level code the bridge cannot represent.
	ErrInvalidLevel = errors.New("hostlog: invalid host level code")

	// ErrAlreadyInstalled is returned by Install when a sink is already
	// active for this process.
	ErrAlreadyInstalled = errors.New("hostlog: a sink is already installed")

	// ErrNilSink is returned by Install when given a nil sink.
	ErrNilSink = errors.New("hostlog: nil sink")
)

// SetupError is returned when a sink cannot be constructed. Err wraps
// ErrFacilityUnavailable or ErrInvalidLevel together with the host's own
// error, if any.
type SetupError struct {
	Op      string
	Channel string
	Err     error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("hostlog: %s for channel %q: %v", e.Op, e.Channel, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
