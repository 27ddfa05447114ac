// Package hosttest provides an in-memory host.Facility for tests and
// examples. It records Log calls in arrival order, supports failure
// injection, and detects calls made without holding the host call gate.
package hosttest
