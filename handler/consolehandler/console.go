package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/formatter"
	"github.com/philipp01105/linelog/handler"
)

// ColorMode selects when the default text formatter colors levels.
type ColorMode int

const (
	// ColorAuto colors output only when the writer is a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways colors output regardless of the writer.
	ColorAlways
	// ColorNever disables colors.
	ColorNever
)

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func useColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}

// lockedWriter wraps an io.Writer with a mutex, acquiring the lock only
// for Write calls. Formatters prepare data in their own pooled buffers
// and call Write once, so the lock is held only during the actual I/O.
type lockedWriter struct {
	mu *sync.Mutex // points to handler's mu
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	n, err = lw.w.Write(p)
	lw.mu.Unlock()
	return
}

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// consoleBase contains shared fields and methods for console handlers.
type consoleBase struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	bufferFormatter formatter.BufferFormatter
	concurrentSafe  bool // true if writer is safe for concurrent Write calls
	stats           *handler.Stats
	mu              sync.Mutex // protects syncBuf and writer (single lock)
	lw              lockedWriter
	syncBuf         bytes.Buffer
	parBufPool      sync.Pool
}

func (b *consoleBase) init(cfg ConsoleConfig) {
	b.writer = cfg.Writer
	b.formatter = cfg.Formatter
	b.concurrentSafe = cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer)
	b.stats = handler.NewStats()

	// Cache the richer formatter interfaces once
	b.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	b.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)

	b.lw = lockedWriter{mu: &b.mu, w: b.writer}

	if b.bufferFormatter != nil {
		b.syncBuf.Grow(256)
		b.parBufPool = sync.Pool{
			New: func() interface{} {
				buf := new(bytes.Buffer)
				buf.Grow(256)
				return buf
			},
		}
	}
}

// write replays r and writes one formatted line. It does not retain r.
// Uses TryLock on mu to format into the handler-owned buffer when
// uncontended. When contended, formats into a pooled buffer outside the
// lock and only serializes the Write call.
func (b *consoleBase) write(r *core.Record) error {
	if b.bufferFormatter != nil {
		if b.mu.TryLock() {
			b.syncBuf.Reset()
			b.bufferFormatter.FormatRecord(r, &b.syncBuf)
			_, err := b.writer.Write(b.syncBuf.Bytes())
			b.mu.Unlock()
			return err
		}

		pb := b.parBufPool.Get().(*bytes.Buffer)
		pb.Reset()
		b.bufferFormatter.FormatRecord(r, pb)
		var err error
		if b.concurrentSafe {
			_, err = b.writer.Write(pb.Bytes())
		} else {
			b.mu.Lock()
			_, err = b.writer.Write(pb.Bytes())
			b.mu.Unlock()
		}
		b.parBufPool.Put(pb)
		return err
	}

	if b.writerFormatter != nil {
		if b.concurrentSafe {
			return b.writerFormatter.FormatTo(r, b.writer)
		}
		return b.writerFormatter.FormatTo(r, &b.lw)
	}

	data, err := b.formatter.Format(r)
	if err != nil {
		return err
	}
	if b.concurrentSafe {
		_, err = b.writer.Write(data)
		return err
	}
	b.mu.Lock()
	_, err = b.writer.Write(data)
	b.mu.Unlock()
	return err
}

// Stats returns a snapshot of the current statistics
func (b *consoleBase) Stats() handler.Snapshot {
	return b.stats.GetSnapshot()
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter colored according to Color)
	Formatter formatter.Formatter
	// Color controls level colors of the default formatter (default: ColorAuto)
	Color ColorMode
	// IncludeCaller adds the call site to the default formatter's output
	IncludeCaller bool
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// When true, the handler skips write-level locking for parallel records.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{
			IncludeCaller: cfg.IncludeCaller,
			Color:         useColor(cfg.Color, cfg.Writer),
		})
	}
}

func (cfg ConsoleConfig) queueConfig() handler.QueueConfig {
	return handler.QueueConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}
}

// NewConsoleHandler creates a new console handler.
// Returns a SyncConsoleHandler when Async is false, or an AsyncConsoleHandler
// when Async is true. Both implement Handler and StatsProvider.
func NewConsoleHandler(cfg ConsoleConfig) handler.Handler {
	applyConsoleDefaults(&cfg)
	if cfg.Async {
		return newAsyncConsoleHandler(cfg)
	}
	return newSyncConsoleHandler(cfg)
}
