package handler

import (
	"sync"
	"time"

	"github.com/philipp01105/linelog/core"
)

// WriteFunc replays one record into its destination. It may be called
// from the consumer goroutine and, on overflow fallback, from producers,
// so it must be safe for concurrent use. It must not retain r.
type WriteFunc func(r *core.Record) error

// QueueConfig holds configuration for an async Queue
type QueueConfig struct {
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// ApplyQueueDefaults fills in zero-value fields with defaults.
func ApplyQueueDefaults(cfg *QueueConfig) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// Queue moves records from producers to a single consumer goroutine that
// replays them through a WriteFunc and recycles them.
type Queue struct {
	records        chan *core.Record
	write          WriteFunc
	stats          *Stats
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration

	mu     sync.RWMutex // held for reading while enqueueing, for writing by Close
	done   bool
	closed chan struct{}
	wg     sync.WaitGroup
}

// NewQueue starts the consumer goroutine. Every record it sees is counted
// in stats.
func NewQueue(cfg QueueConfig, stats *Stats, write WriteFunc) *Queue {
	ApplyQueueDefaults(&cfg)
	q := &Queue{
		records:        make(chan *core.Record, cfg.BufferSize),
		write:          write,
		stats:          stats,
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		closed:         make(chan struct{}),
	}
	q.wg.Add(1)
	go q.process()
	return q
}

// Enqueue takes ownership of r and schedules it for the consumer,
// applying the overflow policy for its level when the queue is full.
// After Close, records are written synchronously.
func (q *Queue) Enqueue(r *core.Record) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.done {
		return q.writeNow(r)
	}

	level := r.Level()
	policy, ok := q.overflowPolicy[level]
	if !ok {
		policy = DropNewest // Default if not specified
	}

	switch policy {
	case Block:
		select {
		case q.records <- r:
			return nil
		default:
		}
		timer := time.NewTimer(q.blockTimeout)
		defer timer.Stop()
		select {
		case q.records <- r:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			q.stats.IncrementBlocked()
			return q.writeNow(r)
		}

	case DropOldest:
		select {
		case q.records <- r:
			return nil
		default:
		}
		// Queue full - try to drop oldest
		select {
		case old := <-q.records:
			q.stats.IncrementDropped(old.Level())
			core.PutRecord(old)
		default:
		}
		select {
		case q.records <- r:
		default:
			// Still full, drop this one
			q.stats.IncrementDropped(level)
			core.PutRecord(r)
		}
		return nil

	default:
		select {
		case q.records <- r:
		default:
			q.stats.IncrementDropped(level)
			core.PutRecord(r)
		}
		return nil
	}
}

// writeNow replays r on the calling goroutine and recycles it.
func (q *Queue) writeNow(r *core.Record) error {
	err := q.write(r)
	if err != nil {
		q.stats.IncrementFailed()
	} else {
		q.stats.IncrementProcessed()
	}
	core.PutRecord(r)
	return err
}

// Len returns the number of queued records.
func (q *Queue) Len() int {
	return len(q.records)
}

// process handles async record processing
func (q *Queue) process() {
	defer q.wg.Done()

	for {
		select {
		case r := <-q.records:
			_ = q.writeNow(r)
		case <-q.closed:
			// Drain remaining records with timeout
			deadline := time.After(q.drainTimeout)
			for {
				select {
				case r := <-q.records:
					_ = q.writeNow(r)
				case <-deadline:
					q.discard()
					return
				default:
					return
				}
			}
		}
	}
}

// discard recycles whatever is left after the drain deadline.
func (q *Queue) discard() {
	for {
		select {
		case r := <-q.records:
			q.stats.IncrementDropped(r.Level())
			core.PutRecord(r)
		default:
			return
		}
	}
}

// Close stops accepting queued records, drains the queue up to the drain
// timeout and waits for the consumer to exit. It is safe to call more
// than once.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.done {
		q.mu.Unlock()
		return nil
	}
	q.done = true
	close(q.closed)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}
