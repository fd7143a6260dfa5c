package core

// Level represents the severity level of a log record
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for failures that need immediate attention
	CriticalLevel
)

// LevelCount is the number of defined levels.
const LevelCount = int(CriticalLevel) + 1

var levelNames = [LevelCount]string{
	DebugLevel:    "DEBUG",
	InfoLevel:     "INFO",
	WarnLevel:     "WARN",
	ErrorLevel:    "ERROR",
	CriticalLevel: "CRITICAL",
}

// String returns the display name of the level, or "UNKNOWN" for values
// outside the defined range.
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= DebugLevel && l <= CriticalLevel
}
