// Package host describes the logging facility of an embedded,
// single-threaded scripting runtime as seen from Go.
//
// The runtime exposes named severity constants, channels looked up by
// name, each with an effective level and a log(code, message) call. None
// of these calls may run concurrently: code must hold the host call gate
// (package gate) for the whole duration of every Facility or Channel call.
//
// Package hosttest provides an in-memory Facility for tests.
package host
