package consolehandler

import (
	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/handler"
)

// AsyncConsoleHandler hands records to a queue drained by one background
// goroutine, which does all formatting and I/O.
type AsyncConsoleHandler struct {
	consoleBase
	queue *handler.Queue
}

// newAsyncConsoleHandler creates a new asynchronous console handler.
func newAsyncConsoleHandler(cfg ConsoleConfig) *AsyncConsoleHandler {
	h := &AsyncConsoleHandler{}
	h.init(cfg)
	h.queue = handler.NewQueue(cfg.queueConfig(), h.stats, h.write)
	return h
}

// Handle takes ownership of r and queues it according to the overflow
// policy of its level.
func (h *AsyncConsoleHandler) Handle(r *core.Record) error {
	if r == nil {
		return nil
	}
	return h.queue.Enqueue(r)
}

// Close drains the queue, waiting at most DrainTimeout.
func (h *AsyncConsoleHandler) Close() error {
	return h.queue.Close()
}
