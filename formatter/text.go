package formatter

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/hostlog/core"
)

// TextFormatter renders entries as "message key=value ...".
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format renders an entry as text
func (f *TextFormatter) Format(entry *core.Entry) string {
	if !f.IncludeCaller && !f.IncludeTime && len(entry.Fields) == 0 {
		return entry.Message
	}

	buf := getBuffer()
	f.formatToBuffer(entry, buf)
	s := buf.String()
	putBuffer(buf)
	return s
}

func (f *TextFormatter) formatToBuffer(entry *core.Entry, buf *bytes.Buffer) {
	if f.IncludeTime {
		buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte(' ')
	}

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(entry.Caller.ShortFile)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		buf.WriteString("] ")
	}

	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		writeTextValue(buf, field.StringValue())
	}
}

// writeTextValue quotes values that would otherwise be ambiguous in a
// space-separated line.
func writeTextValue(buf *bytes.Buffer, v string) {
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		buf.WriteString(strconv.Quote(v))
		return
	}
	buf.WriteString(v)
}
