// Package core defines the shared types used across hostlog.
//
// Level is the five-tier severity taxonomy (Trace, Debug, Info, Warn,
// Error) plus OffLevel, which only appears as a filter threshold.
// Record is the immutable unit handed to a sink: a level and an already
// rendered message. Entry and Field carry the structured form of an event
// before a formatter turns it into a Record message.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once it has been rendered.
package core
