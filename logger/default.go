package logger

import (
	"sync"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/formatter"
	"github.com/philipp01105/linelog/handler/consolehandler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// Initialize default logger with console handler
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Async:      true,
		BufferSize: 1000,
		Formatter:  formatter.NewTextFormatter(formatter.Config{}),
	})

	defaultLogger = NewBuilder().
		WithHandler(h).
		WithLevel(core.InfoLevel).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger and returns the previous one, which
// the caller may want to Close.
func SetDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultLogger
	defaultLogger = l
	return prev
}

// Package-level convenience functions using the default logger. They call
// newRecord directly so the recorded call site is the caller's.

// At starts a record at level on the default logger
func At(level core.Level) *core.Record {
	return Default().newRecord(level, callerSkip)
}

// Debug starts a debug record on the default logger
func Debug() *core.Record {
	return Default().newRecord(core.DebugLevel, callerSkip)
}

// Info starts an info record on the default logger
func Info() *core.Record {
	return Default().newRecord(core.InfoLevel, callerSkip)
}

// Warn starts a warning record on the default logger
func Warn() *core.Record {
	return Default().newRecord(core.WarnLevel, callerSkip)
}

// Error starts an error record on the default logger
func Error() *core.Record {
	return Default().newRecord(core.ErrorLevel, callerSkip)
}

// Critical starts a critical record on the default logger
func Critical() *core.Record {
	return Default().newRecord(core.CriticalLevel, callerSkip)
}

// Send hands r to the default logger's handler
func Send(r *core.Record) error {
	return Default().Send(r)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().logf(core.DebugLevel, format, args)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().logf(core.InfoLevel, format, args)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	Default().logf(core.WarnLevel, format, args)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().logf(core.ErrorLevel, format, args)
}

// Criticalf logs a formatted critical message using the default logger
func Criticalf(format string, args ...interface{}) {
	Default().logf(core.CriticalLevel, format, args)
}

// With creates a new logger from the default one with an extended prefix
func With(prefix string) *Logger {
	return Default().With(prefix)
}
