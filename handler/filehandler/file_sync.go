package filehandler

import (
	"os"

	"github.com/philipp01105/linelog/core"
)

// SyncFileHandler replays every record into the file on the calling
// goroutine. Output is buffered; it reaches the file on rotation, when the
// buffer fills, or on Close.
type SyncFileHandler struct {
	fileBase
}

// newSyncFileHandler creates a new synchronous file handler.
func newSyncFileHandler(cfg FileConfig, file *os.File, fileSize int64) *SyncFileHandler {
	h := &SyncFileHandler{}
	initFileBase(&h.fileBase, cfg, file, fileSize)
	return h
}

// Handle writes r and recycles it.
func (h *SyncFileHandler) Handle(r *core.Record) error {
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

// Close flushes and closes the underlying file.
func (h *SyncFileHandler) Close() error {
	return h.closeFile()
}
