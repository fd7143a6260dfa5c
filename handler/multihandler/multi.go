package multihandler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/handler"
)

// MultiHandler sends records to multiple handlers
type MultiHandler struct {
	handlers []handler.Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...handler.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle gives every child its own record: all but the last receive a
// pooled deep copy, the last receives r itself. Every child is called
// even if an earlier one fails; the errors are combined.
func (h *MultiHandler) Handle(r *core.Record) error {
	if r == nil {
		return nil
	}
	if len(h.handlers) == 0 {
		core.PutRecord(r)
		return nil
	}

	var err error
	last := len(h.handlers) - 1
	for _, child := range h.handlers[:last] {
		err = multierr.Append(err, child.Handle(core.CloneRecord(r)))
	}
	return multierr.Append(err, h.handlers[last].Handle(r))
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Close())
	}
	return err
}

// Stats sums the statistics of every child that keeps them.
func (h *MultiHandler) Stats() handler.Snapshot {
	total := handler.Snapshot{DroppedTotal: make(map[core.Level]uint64)}
	for _, child := range h.handlers {
		sp, ok := child.(handler.StatsProvider)
		if !ok {
			continue
		}
		s := sp.Stats()
		for level, n := range s.DroppedTotal {
			total.DroppedTotal[level] += n
		}
		total.BlockedTotal += s.BlockedTotal
		total.ProcessedTotal += s.ProcessedTotal
		total.FailedTotal += s.FailedTotal
	}
	return total
}
