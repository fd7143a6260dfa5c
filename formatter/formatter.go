package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/linelog/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format replays a record into a freshly allocated line
	Format(r *core.Record) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a record and writes it directly to the writer
	FormatTo(r *core.Record, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatRecord formats a record into the given buffer.
	FormatRecord(r *core.Record, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
	// Color wraps the level in ANSI colors (text format only)
	Color bool
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

// appendMessage replays the record payload into buf.
func appendMessage(buf *bytes.Buffer, r *core.Record) {
	buf.Write(r.AppendMessage(buf.AvailableBuffer()))
}

// appendTime writes the record time, or "-" when the record carries none.
// Timestamp layouts are expected to be JSON-safe.
func appendTime(buf *bytes.Buffer, r *core.Record, layout string) {
	t := r.Time()
	if t.IsZero() {
		buf.WriteByte('-')
		return
	}
	buf.Write(t.AppendFormat(buf.AvailableBuffer(), layout))
}
