package logger

import (
	"strings"

	"github.com/philipp01105/linelog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// LookupLevel converts a level name, case-insensitively, to a Level.
// Besides the names Level.String returns it accepts WARNING and CRIT.
func LookupLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, true
	case "INFO":
		return InfoLevel, true
	case "WARN", "WARNING":
		return WarnLevel, true
	case "ERROR":
		return ErrorLevel, true
	case "CRITICAL", "CRIT":
		return CriticalLevel, true
	default:
		return InfoLevel, false
	}
}

// ParseLevel converts a string to a Level, falling back to InfoLevel for
// unknown names.
func ParseLevel(s string) Level {
	level, _ := LookupLevel(s)
	return level
}
