package host

// Names of the severity constants every host facility must expose.
const (
	LevelCritical = "CRITICAL"
	LevelError    = "ERROR"
	LevelWarning  = "WARNING"
	LevelInfo     = "INFO"
	LevelDebug    = "DEBUG"
)

// Range of level codes the bridge can represent. A facility returning a
// code outside [MinCode, MaxCode] is treated as misconfigured.
const (
	MinCode = 0
	MaxCode = 255
)

// Facility is the host runtime's logging subsystem. Every method runs
// inside the host runtime, so callers must hold the host call gate.
type Facility interface {
	// LevelCode returns the integer value of a named severity constant.
	LevelCode(name string) (int, error)

	// Channel looks up the named logging channel.
	Channel(name string) (Channel, error)
}

// Channel is a named host logger. Like Facility, it may only be used
// while holding the host call gate.
type Channel interface {
	// EffectiveLevel returns the channel's current threshold as one of the
	// facility's level codes.
	EffectiveLevel() (int, error)

	// Log emits msg at the given level code.
	Log(code int, msg string) error
}
