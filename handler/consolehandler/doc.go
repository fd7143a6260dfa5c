// Package consolehandler provides console output handlers that replay
// records to any io.Writer (default: os.Stdout).
//
// Handlers are split into specialized sync and async variants:
//
//   - SyncConsoleHandler formats on the caller's goroutine. Uses TryLock
//     for zero-alloc formatting when uncontended.
//   - AsyncConsoleHandler hands records to a handler.Queue with per-level
//     OverflowPolicy and a dedicated background goroutine.
//
// The factory function NewConsoleHandler chooses the right variant based
// on the Async field in ConsoleConfig. With the default formatter, level
// colors follow ConsoleConfig.Color; ColorAuto enables them only when the
// writer is a terminal.
package consolehandler
