package core

// Record is a single, fully rendered log record on its way to the host.
// Its fields are unexported so a Record cannot change after NewRecord.
type Record struct {
	level   Level
	message string
}

// NewRecord creates a record with the given level and message.
func NewRecord(level Level, message string) Record {
	return Record{level: level, message: message}
}

// Level returns the record's severity.
func (r Record) Level() Level {
	return r.level
}

// Message returns the record's message text.
func (r Record) Message() string {
	return r.message
}
