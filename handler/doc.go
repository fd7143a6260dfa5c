// Package handler defines the consumer side of linelog: the Handler
// interface that receives finished records, and the shared machinery the
// built-in handlers use to move them off the producer's goroutine.
//
// A record passed to Handle changes owner. Synchronous handlers replay it
// on the calling goroutine; asynchronous ones push the pointer onto a
// bounded Queue whose single consumer goroutine replays and recycles it.
// Nothing in the record refers to producer memory, so the hand-off is safe
// as soon as the last append has returned.
//
// When the async queue is full, the Queue applies a per-level
// OverflowPolicy: DropNewest (default for Debug/Info/Warn), DropOldest,
// or Block with a configurable timeout (default for Error and Critical).
// Low-priority lines never stall the application, while critical ones are
// never silently dropped.
//
// Built-in handlers live in sub-packages:
//
//   - consolehandler writes formatted records to any io.Writer.
//   - filehandler writes to a file with rotation by size, age or interval.
//   - multihandler fans a record out to several handlers.
//   - sloghandler exposes a Handler as a log/slog.Handler.
//   - zaphandler replays records into an existing zap core.
//
// All handlers track dropped, blocked, processed and failed counts via the
// Stats type, which can be queried at runtime for monitoring.
package handler
