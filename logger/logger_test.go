package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/formatter"
	"github.com/philipp01105/linelog/handler/consolehandler"
)

// captureHandler records what it receives without recycling.
type captureHandler struct {
	mu      sync.Mutex
	records []*core.Record
	closed  bool
}

func (c *captureHandler) Handle(r *core.Record) error {
	c.mu.Lock()
	c.records = append(c.records, r)
	c.mu.Unlock()
	return nil
}

func (c *captureHandler) Close() error {
	c.closed = true
	return nil
}

func (c *captureHandler) last(t *testing.T) *core.Record {
	t.Helper()
	require.NotEmpty(t, c.records)
	return c.records[len(c.records)-1]
}

func newTextLogger(buf *bytes.Buffer, level Level) *Logger {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    buf,
		Async:     false, // Synchronous for testing
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	return NewBuilder().
		WithHandler(h).
		WithLevel(level).
		Build()
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, InfoLevel)

	// Debug should not be logged (below Info level)
	assert.Nil(t, logger.Debug())
	logger.Send(logger.Debug().Literal("debug message"))
	if buf.Len() > 0 {
		t.Error("Debug message was logged when level is Info")
	}

	logger.Send(logger.Info().Literal("info message"))
	if !strings.Contains(buf.String(), "[INFO] info message") {
		t.Errorf("Expected 'info message' in output, got: %s", buf.String())
	}

	buf.Reset()
	logger.Send(logger.Warn().Literal("warn message"))
	if !strings.Contains(buf.String(), "[WARN] warn message") {
		t.Errorf("Expected 'warn message' in output, got: %s", buf.String())
	}

	buf.Reset()
	logger.Send(logger.Error().Literal("error message"))
	if !strings.Contains(buf.String(), "[ERROR] error message") {
		t.Errorf("Expected 'error message' in output, got: %s", buf.String())
	}

	buf.Reset()
	logger.Send(logger.Critical().Literal("critical message"))
	if !strings.Contains(buf.String(), "[CRITICAL] critical message") {
		t.Errorf("Expected 'critical message' in output, got: %s", buf.String())
	}
}

func TestLogger_At(t *testing.T) {
	h := &captureHandler{}
	log := NewBuilder().WithHandler(h).WithLevel(WarnLevel).Build()

	assert.Nil(t, log.At(InfoLevel))
	assert.True(t, log.Enabled(ErrorLevel))
	assert.False(t, log.Enabled(DebugLevel))
	assert.Equal(t, WarnLevel, log.Level())

	require.NoError(t, log.Send(log.At(ErrorLevel).Char('a').Int32(-7).Float64(1.5).String("ok")))
	r := h.last(t)
	assert.Equal(t, ErrorLevel, r.Level())
	assert.Equal(t, "a-71.5ok", r.Message())
	assert.Equal(t, "", r.File(), "caller disabled")
}

func TestLogger_NoHandler(t *testing.T) {
	log := NewBuilder().WithLevel(DebugLevel).Build()

	assert.Nil(t, log.Info())
	assert.False(t, log.Enabled(CriticalLevel))
	assert.NoError(t, log.Send(log.Info().Literal("nowhere")))
	assert.NoError(t, log.Close())
	log.Infof("formatted %d", 1)
}

func TestLogger_Caller(t *testing.T) {
	h := &captureHandler{}
	log := NewBuilder().WithHandler(h).WithCaller(true).Build()

	log.Send(log.Info().Literal("here"))
	r := h.last(t)
	assert.Equal(t, "logger_test.go", r.CallSite().ShortFile())
	assert.True(t, strings.HasSuffix(r.Function(), ".TestLogger_Caller"), r.Function())

	log.Send(log.At(WarnLevel))
	assert.True(t, strings.HasSuffix(h.last(t).Function(), ".TestLogger_Caller"))

	log.Warnf("formatted %s", "caller")
	r = h.last(t)
	assert.True(t, strings.HasSuffix(r.Function(), ".TestLogger_Caller"), r.Function())
	assert.Equal(t, "formatted caller", r.Message())
}

func TestLogger_CallerLine(t *testing.T) {
	h := &captureHandler{}
	log := NewBuilder().WithHandler(h).WithCaller(true).Build()

	site := core.Caller(0)
	log.Send(log.Info())
	assert.Equal(t, site.Line+1, h.last(t).Line())
}

func TestLogger_FormattedLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, InfoLevel)

	logger.Infof("User %s logged in with ID %d", "alice", 123)
	logger.Debugf("hidden %d", 1)
	logger.Logf(CriticalLevel, "disk %d%% full", 99)

	output := buf.String()
	if !strings.Contains(output, "User alice logged in with ID 123") {
		t.Errorf("Expected formatted message in output, got: %s", output)
	}
	if strings.Contains(output, "hidden") {
		t.Errorf("Debugf should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "[CRITICAL] disk 99% full") {
		t.Errorf("Expected Logf output, got: %s", output)
	}
}

func TestLogger_ImmutableWith(t *testing.T) {
	var buf bytes.Buffer
	parent := NewBuilder().
		WithHandler(consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{Writer: &buf})).
		WithPrefix("[api] ").
		Build()

	child := parent.With(dynamicPrefix("req-", 7))

	parent.Send(parent.Info().Literal("parent message"))
	if !strings.Contains(buf.String(), "] [api] parent message\n") {
		t.Errorf("Parent logger should only carry its prefix, got: %s", buf.String())
	}

	buf.Reset()
	child.Send(child.Info().Literal("child message"))
	if !strings.Contains(buf.String(), "] [api] req-7 child message\n") {
		t.Errorf("Child logger should carry both prefixes, got: %s", buf.String())
	}
}

// dynamicPrefix builds a prefix at runtime, so With must intern it.
func dynamicPrefix(base string, n int) string {
	b := []byte(base)
	b = append(b, byte('0'+n), ' ')
	return string(b)
}

func TestLogger_WithCoarseClock(t *testing.T) {
	h := &captureHandler{}
	log := NewBuilder().
		WithHandler(h).
		WithCoarseClock(true).
		Build()

	log.Send(log.Info().Literal("coarse clock message"))
	r := h.last(t)
	assert.Equal(t, "coarse clock message", r.Message())
	assert.WithinDuration(t, time.Now(), r.Time(), time.Second)
}

func TestLogger_Close(t *testing.T) {
	h := &captureHandler{}
	log := NewBuilder().WithHandler(h).Build()
	require.NoError(t, log.Close())
	assert.True(t, h.closed)
}

func TestLogger_Concurrent(t *testing.T) {
	h := &captureHandler{}
	log := NewBuilder().WithHandler(h).Build()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				log.Send(log.Info().Literal("g").Int(g).Char(':').Int(i))
			}
		}(g)
	}
	wg.Wait()

	require.Len(t, h.records, 800)
	seen := make(map[string]bool, 800)
	for _, r := range h.records {
		seen[r.Message()] = true
	}
	assert.Len(t, seen, 800, "every record kept its own payload")
}

func TestDefaultLogger(t *testing.T) {
	h := &captureHandler{}
	prev := SetDefault(NewBuilder().WithHandler(h).WithCaller(true).Build())
	defer SetDefault(prev)

	Send(Info().Literal("from default"))
	r := h.last(t)
	assert.Equal(t, "from default", r.Message())
	assert.True(t, strings.HasSuffix(r.Function(), ".TestDefaultLogger"), r.Function())

	Errorf("code=%d", 500)
	r = h.last(t)
	assert.Equal(t, ErrorLevel, r.Level())
	assert.True(t, strings.HasSuffix(r.Function(), ".TestDefaultLogger"), r.Function())

	Send(At(CriticalLevel).Literal("c"))
	Send(Debug().Literal("filtered"))
	Send(Warn().Literal("w"))
	Send(Error().Literal("e"))
	Send(Critical().Literal("cc"))
	Warnf("wf")
	Criticalf("cf")
	Infof("if")
	Debugf("df")
	assert.Len(t, h.records, 9)

	child := With("svc ")
	child.Send(child.Info().Literal("up"))
	assert.Equal(t, "svc up", h.last(t).Message())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   Level
		wantOK bool
	}{
		{"debug", DebugLevel, true},
		{"INFO", InfoLevel, true},
		{"Warn", WarnLevel, true},
		{"warning", WarnLevel, true},
		{"error", ErrorLevel, true},
		{"critical", CriticalLevel, true},
		{" CRIT ", CriticalLevel, true},
		{"fatal", InfoLevel, false},
		{"", InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := LookupLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func BenchmarkLogger_LevelCheck(b *testing.B) {
	logger := newTextLogger(&bytes.Buffer{}, InfoLevel)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Should exit early due to level check
		logger.Send(logger.Debug().Literal("debug message key=").String("value"))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := newTextLogger(&bytes.Buffer{}, InfoLevel)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Send(logger.Info().Literal("test message key=").String("value"))
	}
}

func BenchmarkLogger_InfoWithValues(b *testing.B) {
	logger := newTextLogger(&bytes.Buffer{}, InfoLevel)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Send(logger.Info().
			Literal("test message str=").String("value").
			Literal(" int=").Int(42).
			Literal(" bool=").Bool(true).
			Literal(" float=").Float64(3.14))
	}
}
