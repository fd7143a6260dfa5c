package benchmark

import (
	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/handler"
)

// noopHandler recycles records without replaying them, isolating the
// capture cost.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(r *core.Record) error {
	_ = r.Len()
	core.PutRecord(r)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}

// replayHandler replays every record into a reused buffer and discards it,
// measuring capture plus decode without formatting or I/O.
type replayHandler struct {
	buf []byte
}

func (h *replayHandler) Handle(r *core.Record) error {
	h.buf = r.AppendMessage(h.buf[:0])
	core.PutRecord(r)
	return nil
}

func (h *replayHandler) Close() error {
	return nil
}
