package consolehandler

import (
	"github.com/philipp01105/linelog/core"
)

// SyncConsoleHandler replays every record on the calling goroutine.
type SyncConsoleHandler struct {
	consoleBase
}

// newSyncConsoleHandler creates a new synchronous console handler.
func newSyncConsoleHandler(cfg ConsoleConfig) *SyncConsoleHandler {
	h := &SyncConsoleHandler{}
	h.init(cfg)
	return h
}

// Handle writes r and recycles it.
func (h *SyncConsoleHandler) Handle(r *core.Record) error {
	if r == nil {
		return nil
	}
	err := h.write(r)
	if err != nil {
		h.stats.IncrementFailed()
	} else {
		h.stats.IncrementProcessed()
	}
	core.PutRecord(r)
	return err
}

// Close is a no-op; the writer belongs to the caller.
func (h *SyncConsoleHandler) Close() error {
	return nil
}
