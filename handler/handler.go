package handler

import (
	"github.com/philipp01105/linelog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle takes ownership of the record. The caller must not touch r
	// after Handle returns, whatever the outcome; the handler replays it
	// and returns it to the record pool.
	Handle(r *core.Record) error

	// Close closes the handler and releases resources
	Close() error
}

// StatsProvider is implemented by handlers that keep Stats.
type StatsProvider interface {
	Stats() Snapshot
}
