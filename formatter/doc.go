// Package formatter turns a structured core.Entry into the message string
// a sink delivers to the host.
//
// The host records level and time on its own, so by default neither
// formatter repeats them. TextFormatter produces "message key=value ..."
// and returns the bare message untouched when there is nothing to add.
// JSONFormatter produces one JSON object per entry for hosts whose
// handlers parse structured messages.
//
// Both use a pooled bytes.Buffer and append-style strconv/time functions.
// Buffers larger than 64 KiB are not returned to the pool.
package formatter
