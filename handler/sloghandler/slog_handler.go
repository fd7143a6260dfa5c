package sloghandler

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/handler"
)

// LevelCritical is the slog level mapped to core.CriticalLevel. Anything at
// or above it is critical.
const LevelCritical = slog.LevelError + 4

// SlogHandler is an adapter that implements slog.Handler on top of a
// handler.Handler. Each slog record is captured as a binary record: the
// message, then every attribute as " key=value".
type SlogHandler struct {
	handler handler.Handler
	level   core.Level
	attrs   []slog.Attr // keys already carry their group prefix
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
func NewSlogHandler(h handler.Handler, level core.Level) *SlogHandler {
	return &SlogHandler{
		handler: h,
		level:   level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle captures record and passes it to the wrapped handler, which takes
// ownership of the result.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	r := core.GetRecord(slogLevelToCore(record.Level), core.SiteForPC(record.PC))
	if !record.Time.IsZero() {
		r.SetTime(record.Time)
	}
	r.String(record.Message)

	for _, a := range s.attrs {
		appendAttr(r, "", a)
	}
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(r, s.group, a)
		return true
	})

	return s.handler.Handle(r)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	newAttrs := make([]slog.Attr, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		if s.group != "" {
			a.Key = s.group + "." + a.Key
		}
		newAttrs = append(newAttrs, a)
	}
	return &SlogHandler{
		handler: s.handler,
		level:   s.level,
		attrs:   newAttrs,
		group:   s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		handler: s.handler,
		level:   s.level,
		attrs:   s.attrs,
		group:   newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= LevelCritical:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr appends " key=value" to r using the typed append matching the
// attribute's kind. Groups are flattened into dotted keys.
func appendAttr(r *core.Record, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(r, key, ga)
		}
		return
	}

	r.Char(' ').String(key).Char('=')
	switch a.Value.Kind() {
	case slog.KindString:
		r.String(a.Value.String())
	case slog.KindInt64:
		r.Int64(a.Value.Int64())
	case slog.KindUint64:
		r.Uint64(a.Value.Uint64())
	case slog.KindFloat64:
		r.Float64(a.Value.Float64())
	case slog.KindBool:
		r.Bool(a.Value.Bool())
	case slog.KindTime:
		var scratch [64]byte
		r.CString(a.Value.Time().AppendFormat(scratch[:0], time.RFC3339Nano))
	default:
		r.String(a.Value.String())
	}
}
