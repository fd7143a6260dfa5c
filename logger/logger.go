package logger

import (
	"fmt"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/handler"
)

// callerSkip is the number of frames between newRecord and the user's
// log statement when called through a Logger method.
const callerSkip = 2

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	level         core.Level
	prefix        core.Literal
	includeCaller bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	prefix        core.Literal
	includeCaller bool
	coarseClock   bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level: core.InfoLevel, // Default level
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithPrefix sets a literal written at the start of every record
func (b *Builder) WithPrefix(prefix core.Literal) *Builder {
	b.prefix = prefix
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCoarseClock timestamps records from a clock cached every 500µs
// instead of calling time.Now per record. The clock is process-wide: once
// started it serves every logger.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	if b.coarseClock {
		core.StartCoarseClock()
	}
	return &Logger{
		handler:       b.handler,
		level:         b.level,
		prefix:        b.prefix,
		includeCaller: b.includeCaller,
	}
}

// With creates a new Logger whose records start with the current prefix
// followed by prefix (immutable operation). The combined prefix is
// interned, so With belongs in setup code rather than on a hot path.
func (l *Logger) With(prefix string) *Logger {
	child := *l
	child.prefix = core.Intern(string(l.prefix) + prefix)
	return &child
}

// Level returns the minimum level the logger captures.
func (l *Logger) Level() core.Level {
	return l.level
}

// Enabled reports whether a record at level would be captured.
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level && l.handler != nil
}

// newRecord returns a pooled record with its header written, or nil when
// level is filtered out. skip counts frames above newRecord.
func (l *Logger) newRecord(level core.Level, skip int) *core.Record {
	// Level check - exit early BEFORE touching the pool
	if level < l.level || l.handler == nil {
		return nil
	}

	var site core.CallSite
	if l.includeCaller {
		site = core.Caller(skip)
	}
	r := core.GetRecord(level, site)
	if l.prefix != "" {
		r.Literal(l.prefix)
	}
	return r
}

// At starts a record at the given level. The result is nil when the level
// is filtered out; every append method accepts a nil record, so a
// statement like
//
//	log.Send(log.At(level).Literal("retry ").Int(n))
//
// does no work for filtered levels.
func (l *Logger) At(level core.Level) *core.Record {
	return l.newRecord(level, callerSkip)
}

// Debug starts a debug record
func (l *Logger) Debug() *core.Record {
	return l.newRecord(core.DebugLevel, callerSkip)
}

// Info starts an info record
func (l *Logger) Info() *core.Record {
	return l.newRecord(core.InfoLevel, callerSkip)
}

// Warn starts a warning record
func (l *Logger) Warn() *core.Record {
	return l.newRecord(core.WarnLevel, callerSkip)
}

// Error starts an error record
func (l *Logger) Error() *core.Record {
	return l.newRecord(core.ErrorLevel, callerSkip)
}

// Critical starts a critical record
func (l *Logger) Critical() *core.Record {
	return l.newRecord(core.CriticalLevel, callerSkip)
}

// Send hands r to the handler, which takes ownership. A nil r is ignored.
func (l *Logger) Send(r *core.Record) error {
	if r == nil || l.handler == nil {
		return nil
	}
	return l.handler.Handle(r)
}

// Logf formats a message with fmt.Sprintf and sends it at level. The
// formatted text is copied into the record.
func (l *Logger) Logf(level core.Level, format string, args ...interface{}) {
	l.logf(level, format, args)
}

func (l *Logger) logf(level core.Level, format string, args []interface{}) {
	r := l.newRecord(level, callerSkip+1)
	if r == nil {
		return
	}
	_ = l.handler.Handle(r.String(fmt.Sprintf(format, args...)))
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(core.DebugLevel, format, args)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(core.InfoLevel, format, args)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(core.WarnLevel, format, args)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(core.ErrorLevel, format, args)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.logf(core.CriticalLevel, format, args)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
