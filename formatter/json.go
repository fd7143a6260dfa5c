package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/philipp01105/linelog/core"
)

// JSONFormatter formats records as JSON lines
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{Config: cfg}
}

// Format formats a record as JSON
func (f *JSONFormatter) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatJSONToBuffer(r, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatJSONToBuffer(r, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatRecord formats a record as JSON into the given buffer (implements BufferFormatter).
func (f *JSONFormatter) FormatRecord(r *core.Record, buf *bytes.Buffer) {
	f.formatJSONToBuffer(r, buf)
}

// formatJSONToBuffer builds one JSON object per record. The message is
// replayed into a scratch buffer first so that it can be escaped.
func (f *JSONFormatter) formatJSONToBuffer(r *core.Record, buf *bytes.Buffer) {
	buf.WriteString(`{"time":"`)
	appendTime(buf, r, f.TimestampFormat)
	buf.WriteByte('"')

	buf.WriteString(`,"level":"`)
	buf.WriteString(r.Level().String())
	buf.WriteByte('"')

	msg := getBuffer()
	appendMessage(msg, r)
	buf.WriteString(`,"message":`)
	buf.Write(json.AppendEscape(buf.AvailableBuffer(), unsafeString(msg.Bytes()), 0))
	putBuffer(msg)

	if f.IncludeCaller && r.File() != "" {
		site := r.CallSite()
		buf.WriteString(`,"caller":{"file":`)
		buf.Write(json.AppendEscape(buf.AvailableBuffer(), site.ShortFile(), 0))
		buf.WriteString(`,"line":`)
		buf.Write(strconv.AppendUint(buf.AvailableBuffer(), uint64(site.Line), 10))
		if site.Function != "" {
			buf.WriteString(`,"function":`)
			buf.Write(json.AppendEscape(buf.AvailableBuffer(), string(site.Function), 0))
		}
		buf.WriteByte('}')
	}

	buf.WriteString("}\n")
}
