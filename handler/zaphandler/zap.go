package zaphandler

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/handler"
)

// ZapConfig holds configuration for the zap handler
type ZapConfig struct {
	// Core receives the entries (default: zap.NewNop().Core())
	Core zapcore.Core
	// LoggerName is set on every entry
	LoggerName string
	// OmitCaller drops the record's call site from the entry
	OmitCaller bool
}

// ZapHandler writes records through a zapcore.Core on the calling
// goroutine. Wrap the core with zapcore.NewSamplerWithOptions or use an
// async handler in front of it to keep zap's cost off the hot path.
type ZapHandler struct {
	core       zapcore.Core
	loggerName string
	omitCaller bool
	stats      *handler.Stats
}

// NewZapHandler creates a handler writing to cfg.Core.
func NewZapHandler(cfg ZapConfig) *ZapHandler {
	if cfg.Core == nil {
		cfg.Core = zap.NewNop().Core()
	}
	return &ZapHandler{
		core:       cfg.Core,
		loggerName: cfg.LoggerName,
		omitCaller: cfg.OmitCaller,
		stats:      handler.NewStats(),
	}
}

// FromLogger creates a handler writing to the core of l.
func FromLogger(l *zap.Logger) *ZapHandler {
	return NewZapHandler(ZapConfig{Core: l.Core()})
}

// Handle replays r into a zap entry and recycles it. Records the core's
// level filter rejects are recycled without being replayed.
func (h *ZapHandler) Handle(r *core.Record) error {
	if r == nil {
		return nil
	}
	defer core.PutRecord(r)

	ent := zapcore.Entry{
		Level:      ZapLevel(r.Level()),
		Time:       r.Time(),
		LoggerName: h.loggerName,
	}
	if !h.core.Enabled(ent.Level) {
		return nil
	}
	if !h.omitCaller && r.File() != "" {
		ent.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     r.File(),
			Line:     int(r.Line()),
			Function: r.Function(),
		}
	}
	ent.Message = r.Message()

	if ce := h.core.Check(ent, nil); ce != nil {
		ce.Write()
		h.stats.IncrementProcessed()
	}
	return nil
}

// Close flushes the core.
func (h *ZapHandler) Close() error {
	return h.core.Sync()
}

// Stats returns a snapshot of the current statistics
func (h *ZapHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// ZapLevel converts a core.Level to the zap level used for it.
func ZapLevel(level core.Level) zapcore.Level {
	switch level {
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.CriticalLevel:
		return zapcore.DPanicLevel
	default:
		return zapcore.InfoLevel
	}
}
