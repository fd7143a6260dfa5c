package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/linelog/core"
)

// TextFormatter formats records as human-readable text
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

// Format formats a record as text
func (f *TextFormatter) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(r, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *TextFormatter) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(r, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatRecord formats a record as text into the given buffer (implements BufferFormatter).
func (f *TextFormatter) FormatRecord(r *core.Record, buf *bytes.Buffer) {
	f.formatToBuffer(r, buf)
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [...]string{
	core.DebugLevel:    " [DEBUG] ",
	core.InfoLevel:     " [INFO] ",
	core.WarnLevel:     " [WARN] ",
	core.ErrorLevel:    " [ERROR] ",
	core.CriticalLevel: " [CRITICAL] ",
}

var levelColors = [...]string{
	core.DebugLevel:    "\033[34m", // Blue
	core.InfoLevel:     "\033[32m", // Green
	core.WarnLevel:     "\033[33m", // Yellow
	core.ErrorLevel:    "\033[31m", // Red
	core.CriticalLevel: "\033[1;31m",
}

const resetColor = "\033[0m"

// formatToBuffer writes the formatted record into the given buffer
func (f *TextFormatter) formatToBuffer(r *core.Record, buf *bytes.Buffer) {
	appendTime(buf, r, f.TimestampFormat)

	level := r.Level()
	switch {
	case !level.Valid():
		buf.WriteString(" [UNKNOWN] ")
	case f.Color:
		buf.WriteString(" [")
		buf.WriteString(levelColors[level])
		buf.WriteString(level.String())
		buf.WriteString(resetColor)
		buf.WriteString("] ")
	default:
		buf.WriteString(levelBrackets[level])
	}

	if f.IncludeCaller && r.File() != "" {
		site := r.CallSite()
		buf.WriteByte('[')
		buf.WriteString(site.ShortFile())
		buf.WriteByte(':')
		buf.Write(strconv.AppendUint(buf.AvailableBuffer(), uint64(site.Line), 10))
		if site.Function != "" {
			buf.WriteByte(' ')
			buf.WriteString(string(site.Function))
		}
		buf.WriteString("] ")
	}

	appendMessage(buf, r)
	buf.WriteByte('\n')
}
