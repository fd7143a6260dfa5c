// Package formatter turns binary records into text.
//
// Formatting is where a record is finally replayed: the formatter writes
// the header fields (time, level, optionally the call site) and then asks
// the record to append its payload. This runs on whichever goroutine the
// handler uses to consume records, never on the producer's hot path.
//
// It exposes three interfaces: Formatter, which returns a []byte,
// WriterFormatter, which writes directly to an io.Writer, and
// BufferFormatter, which formats into a caller-owned bytes.Buffer.
// Handlers check for the richer interfaces at construction time and
// prefer them when available.
//
// Both built-in formatters (TextFormatter and JSONFormatter) implement
// all three. They use a pooled bytes.Buffer internally and rely on
// Append-style functions (time.AppendFormat, strconv.AppendUint,
// Record.AppendMessage) to avoid per-call allocations. JSON string
// escaping uses github.com/segmentio/encoding/json.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
