package filehandler

import (
	"os"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/handler"
)

// AsyncFileHandler hands records to a queue drained by one background
// goroutine, which does all formatting, rotation and I/O.
type AsyncFileHandler struct {
	fileBase
	queue *handler.Queue
}

// newAsyncFileHandler creates a new asynchronous file handler.
func newAsyncFileHandler(cfg FileConfig, file *os.File, fileSize int64) *AsyncFileHandler {
	h := &AsyncFileHandler{}
	initFileBase(&h.fileBase, cfg, file, fileSize)
	h.queue = handler.NewQueue(cfg.queueConfig(), h.stats, h.write)
	return h
}

// Handle takes ownership of r and queues it according to the overflow
// policy of its level.
func (h *AsyncFileHandler) Handle(r *core.Record) error {
	if r == nil {
		return nil
	}
	return h.queue.Enqueue(r)
}

// Close drains the queue, waiting at most DrainTimeout, then flushes and
// closes the file.
func (h *AsyncFileHandler) Close() error {
	if err := h.queue.Close(); err != nil {
		return err
	}
	return h.closeFile()
}
