package handler

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/linelog/core"
)

type collector struct {
	mu    sync.Mutex
	lines []string
	gate  chan struct{}
}

func (c *collector) write(r *core.Record) error {
	if c.gate != nil {
		<-c.gate
	}
	c.mu.Lock()
	c.lines = append(c.lines, r.Message())
	c.mu.Unlock()
	return nil
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func record(level core.Level, msg string) *core.Record {
	return core.GetRecord(level, core.CallSite{}).String(msg)
}

func TestQueue_WritesInOrder(t *testing.T) {
	var c collector
	stats := NewStats()
	q := NewQueue(QueueConfig{BufferSize: 16}, stats, c.write)

	for _, m := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(record(core.InfoLevel, m)))
	}
	require.NoError(t, q.Close())

	assert.Equal(t, []string{"a", "b", "c"}, c.snapshot())
	assert.Equal(t, uint64(3), stats.GetProcessed())
	assert.Equal(t, uint64(0), stats.GetTotalDropped())
}

func TestQueue_DropNewest(t *testing.T) {
	c := collector{gate: make(chan struct{})}
	stats := NewStats()
	q := NewQueue(QueueConfig{
		BufferSize:     1,
		OverflowPolicy: map[core.Level]OverflowPolicy{core.InfoLevel: DropNewest},
	}, stats, c.write)

	// the consumer holds one record at the gate, the buffer holds one more
	require.NoError(t, q.Enqueue(record(core.InfoLevel, "first")))
	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, time.Millisecond)
	require.NoError(t, q.Enqueue(record(core.InfoLevel, "second")))
	require.NoError(t, q.Enqueue(record(core.InfoLevel, "third")))

	close(c.gate)
	require.NoError(t, q.Close())

	assert.Equal(t, []string{"first", "second"}, c.snapshot())
	assert.Equal(t, uint64(1), stats.GetDropped(core.InfoLevel))
}

func TestQueue_DropOldest(t *testing.T) {
	c := collector{gate: make(chan struct{})}
	stats := NewStats()
	q := NewQueue(QueueConfig{
		BufferSize:     1,
		OverflowPolicy: map[core.Level]OverflowPolicy{core.WarnLevel: DropOldest},
	}, stats, c.write)

	require.NoError(t, q.Enqueue(record(core.WarnLevel, "first")))
	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, time.Millisecond)
	require.NoError(t, q.Enqueue(record(core.WarnLevel, "second")))
	require.NoError(t, q.Enqueue(record(core.WarnLevel, "third")))

	close(c.gate)
	require.NoError(t, q.Close())

	assert.Equal(t, []string{"first", "third"}, c.snapshot())
	assert.Equal(t, uint64(1), stats.GetDropped(core.WarnLevel))
}

func TestQueue_BlockFallsBackToSyncWrite(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})
	write := func(r *core.Record) error {
		// only the consumer's first write waits
		if calls.Add(1) == 1 {
			<-gate
		}
		return nil
	}
	stats := NewStats()
	q := NewQueue(QueueConfig{
		BufferSize:   1,
		BlockTimeout: 5 * time.Millisecond,
	}, stats, write)

	require.NoError(t, q.Enqueue(record(core.ErrorLevel, "held")))
	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, time.Millisecond)
	require.NoError(t, q.Enqueue(record(core.ErrorLevel, "queued")))
	require.NoError(t, q.Enqueue(record(core.ErrorLevel, "blocked")))

	assert.Equal(t, uint64(1), stats.GetBlocked())
	close(gate)
	require.NoError(t, q.Close())
	assert.Equal(t, uint64(3), stats.GetProcessed())
	assert.Equal(t, uint64(0), stats.GetTotalDropped())
}

func TestQueue_CloseThenEnqueueWritesSynchronously(t *testing.T) {
	var c collector
	stats := NewStats()
	q := NewQueue(QueueConfig{}, stats, c.write)
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	require.NoError(t, q.Enqueue(record(core.InfoLevel, "late")))
	assert.Equal(t, []string{"late"}, c.snapshot())
}

func TestQueue_WriteErrorCounted(t *testing.T) {
	boom := errors.New("boom")
	stats := NewStats()
	q := NewQueue(QueueConfig{}, stats, func(*core.Record) error { return boom })
	require.NoError(t, q.Enqueue(record(core.InfoLevel, "x")))
	require.NoError(t, q.Close())

	assert.Equal(t, uint64(1), stats.GetFailed())
	assert.Equal(t, uint64(0), stats.GetProcessed())
}

func TestStats_UndefinedLevelCountedAsCritical(t *testing.T) {
	s := NewStats()
	s.IncrementDropped(core.Level(42))
	assert.Equal(t, uint64(1), s.GetDropped(core.CriticalLevel))
	assert.Equal(t, uint64(0), s.GetDropped(core.Level(42)))

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(1), snap.DroppedTotal[core.CriticalLevel])

	s.Reset()
	assert.Equal(t, uint64(0), s.GetTotalDropped())
}

func TestDefaultLevelPolicy(t *testing.T) {
	p := DefaultLevelPolicy()
	assert.Equal(t, DropNewest, p[core.InfoLevel])
	assert.Equal(t, Block, p[core.CriticalLevel])
	assert.Equal(t, "DropOldest", DropOldest.String())
	assert.Equal(t, "Unknown", OverflowPolicy(9).String())
}
