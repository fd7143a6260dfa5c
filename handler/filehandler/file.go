package filehandler

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/formatter"
	"github.com/philipp01105/linelog/handler"
)

// ErrNoFilename is returned by NewFileHandler when FileConfig.Filename is empty.
var ErrNoFilename = errors.New("filehandler: filename is required")

// backupTimeFormat sorts lexicographically in rotation order.
const backupTimeFormat = "2006-01-02T15-04-05.000000000"

// sizeTrackingWriter wraps an io.Writer and tracks total bytes written
type sizeTrackingWriter struct {
	w       io.Writer
	written int64
}

func (s *sizeTrackingWriter) Write(p []byte) (n int, err error) {
	n, err = s.w.Write(p)
	s.written += int64(n)
	return
}

func (s *sizeTrackingWriter) reset(w io.Writer) {
	s.w = w
	s.written = 0
}

// fileBase contains shared fields and methods for file handlers.
type fileBase struct {
	filename        string
	file            *os.File
	bufWriter       *bufio.Writer
	sizeWriter      *sizeTrackingWriter
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	bufferFormatter formatter.BufferFormatter
	mu              sync.Mutex
	syncBuf         bytes.Buffer
	maxSize         int64
	maxAge          time.Duration
	maxBackups      int
	rotateInterval  time.Duration
	currentSize     int64
	lastRotateTime  time.Time
	hasRotation     bool
	stats           *handler.Stats
}

// write replays r into the buffered file, rotating first when a limit has
// been reached. It does not retain r.
func (b *fileBase) write(r *core.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.file == nil {
		return os.ErrClosed
	}
	if err := b.rotateIfNeeded(); err != nil {
		return err
	}

	// BufferFormatter fast path: format into handler-owned buffer
	if b.bufferFormatter != nil {
		b.syncBuf.Reset()
		b.bufferFormatter.FormatRecord(r, &b.syncBuf)
		n, err := b.bufWriter.Write(b.syncBuf.Bytes())
		b.currentSize += int64(n)
		return err
	}

	if b.writerFormatter != nil {
		prevFlushed := b.sizeWriter.written
		prevBuffered := b.bufWriter.Buffered()
		err := b.writerFormatter.FormatTo(r, b.bufWriter)
		b.currentSize += (b.sizeWriter.written - prevFlushed) + int64(b.bufWriter.Buffered()-prevBuffered)
		return err
	}

	data, err := b.formatter.Format(r)
	if err != nil {
		return err
	}
	n, err := b.bufWriter.Write(data)
	b.currentSize += int64(n)
	return err
}

// rotateIfNeeded checks and performs rotation if needed
func (b *fileBase) rotateIfNeeded() error {
	if !b.hasRotation {
		return nil
	}

	needRotate := b.maxSize > 0 && b.currentSize >= b.maxSize
	if age := time.Since(b.lastRotateTime); (b.maxAge > 0 && age >= b.maxAge) ||
		(b.rotateInterval > 0 && age >= b.rotateInterval) {
		needRotate = true
	}

	if !needRotate {
		return nil
	}
	return b.rotate()
}

// rotate renames the current file to a timestamped backup and reopens
// Filename. The caller holds mu.
func (b *fileBase) rotate() error {
	if err := b.bufWriter.Flush(); err != nil {
		return err
	}
	if err := b.file.Sync(); err != nil {
		return err
	}
	if err := b.file.Close(); err != nil {
		return err
	}

	rotatedName := b.filename + "." + time.Now().Format(backupTimeFormat)
	if err := os.Rename(b.filename, rotatedName); err != nil {
		// Keep logging into the original file
		file, openErr := openLogFile(b.filename)
		if openErr != nil {
			b.file = nil
			return fmt.Errorf("filehandler: rotate %s: %w (reopen: %v)", b.filename, err, openErr)
		}
		b.file = file
		b.sizeWriter.reset(file)
		b.bufWriter.Reset(b.sizeWriter)
		return fmt.Errorf("filehandler: rotate %s: %w", b.filename, err)
	}

	if b.maxBackups > 0 {
		b.cleanupOldBackups()
	}

	file, err := openLogFile(b.filename)
	if err != nil {
		b.file = nil
		return err
	}

	b.file = file
	b.sizeWriter.reset(file)
	b.bufWriter.Reset(b.sizeWriter)
	b.currentSize = 0
	b.lastRotateTime = time.Now()

	return nil
}

// backups returns the rotated files of this handler, oldest first.
func (b *fileBase) backups() []string {
	pattern := filepath.Join(filepath.Dir(b.filename), filepath.Base(b.filename)+".*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}

	prefix := filepath.Base(b.filename) + "."
	backups := matches[:0]
	for _, match := range matches {
		stamp := strings.TrimPrefix(filepath.Base(match), prefix)
		if _, err := time.Parse(backupTimeFormat, stamp); err == nil {
			backups = append(backups, match)
		}
	}
	sort.Strings(backups)
	return backups
}

// cleanupOldBackups removes the oldest backups beyond MaxBackups
func (b *fileBase) cleanupOldBackups() {
	backups := b.backups()
	if len(backups) <= b.maxBackups {
		return
	}
	for _, file := range backups[:len(backups)-b.maxBackups] {
		if err := os.Remove(file); err != nil {
			return
		}
	}
}

// Stats returns a snapshot of the current statistics
func (b *fileBase) Stats() handler.Snapshot {
	return b.stats.GetSnapshot()
}

// closeFile flushes, syncs and closes the underlying file.
func (b *fileBase) closeFile() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.file == nil {
		return nil
	}
	file := b.file
	b.file = nil

	if err := b.bufWriter.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSize is the maximum size in bytes before rotation (0 = no size rotation)
	MaxSize int64
	// MaxAge is the maximum age before rotation (0 = no time rotation)
	MaxAge time.Duration
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// RotateInterval is the interval for time-based rotation (0 = no interval rotation)
	RotateInterval time.Duration
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *FileConfig) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

func (cfg FileConfig) queueConfig() handler.QueueConfig {
	return handler.QueueConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}
}

// initFileBase initializes a fileBase in place with the given config and opened file.
func initFileBase(b *fileBase, cfg FileConfig, file *os.File, fileSize int64) {
	sw := &sizeTrackingWriter{w: file}
	b.filename = cfg.Filename
	b.file = file
	b.sizeWriter = sw
	b.bufWriter = bufio.NewWriterSize(sw, 4096)
	b.formatter = cfg.Formatter
	b.maxSize = cfg.MaxSize
	b.maxAge = cfg.MaxAge
	b.maxBackups = cfg.MaxBackups
	b.rotateInterval = cfg.RotateInterval
	b.currentSize = fileSize
	b.lastRotateTime = time.Now()
	b.hasRotation = cfg.MaxSize > 0 || cfg.MaxAge > 0 || cfg.RotateInterval > 0
	b.stats = handler.NewStats()

	b.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	b.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)

	if b.bufferFormatter != nil {
		b.syncBuf.Grow(256)
	}
}

func openLogFile(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// NewFileHandler creates a new file handler.
// Returns a SyncFileHandler when Async is false, or an AsyncFileHandler
// when Async is true. Both implement Handler and StatsProvider.
func NewFileHandler(cfg FileConfig) (handler.Handler, error) {
	if cfg.Filename == "" {
		return nil, ErrNoFilename
	}
	applyFileDefaults(&cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("filehandler: create directory: %w", err)
	}

	file, err := openLogFile(cfg.Filename)
	if err != nil {
		return nil, fmt.Errorf("filehandler: open %s: %w", cfg.Filename, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("filehandler: stat %s: %w", cfg.Filename, err)
	}

	if cfg.Async {
		return newAsyncFileHandler(cfg, file, info.Size()), nil
	}
	return newSyncFileHandler(cfg, file, info.Size()), nil
}
