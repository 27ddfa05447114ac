package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/hostlog/core"
)

// Formatter renders an entry into the single message string handed to the
// host. Level and timestamp are normally left to the host, which records
// both itself.
type Formatter interface {
	Format(entry *core.Entry) string
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller adds the caller's file and line
	IncludeCaller bool
	// IncludeTime adds the entry time, for hosts that do not stamp records
	IncludeTime bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
