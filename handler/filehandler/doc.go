// Package filehandler provides file output handlers that replay records
// into files with automatic rotation by size, age, or interval.
//
// Handlers are split into specialized sync and async variants:
//
//   - SyncFileHandler formats on the caller's goroutine.
//   - AsyncFileHandler hands records to a handler.Queue with per-level
//     OverflowPolicy and a dedicated background goroutine.
//
// Rotated files are named <Filename>.<timestamp>; when MaxBackups is set
// the oldest are removed. The factory function NewFileHandler chooses the
// right variant based on the Async field in FileConfig.
package filehandler
