package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipp01105/linelog/core"
	"github.com/philipp01105/linelog/formatter"
	"github.com/philipp01105/linelog/handler"
	"github.com/philipp01105/linelog/handler/consolehandler"
	"github.com/philipp01105/linelog/handler/filehandler"
	"github.com/philipp01105/linelog/handler/multihandler"
	"github.com/philipp01105/linelog/logger"
)

var (
	// ErrUnknownLevel reports a level name LookupLevel does not know.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrUnknownFormat reports a format other than text or json.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUnknownValue reports an unknown output, color mode or overflow policy.
	ErrUnknownValue = errors.New("unknown value")
)

// Config is the YAML representation of a logger and its handlers.
//
//	level: debug
//	caller: true
//	console:
//	  output: stderr
//	  format: text
//	  color: auto
//	  async: true
//	file:
//	  filename: /var/log/app.log
//	  format: json
//	  max_size: 10485760
//	  max_backups: 5
type Config struct {
	Level       string        `yaml:"level"`
	Caller      bool          `yaml:"caller"`
	CoarseClock bool          `yaml:"coarse_clock"`
	Prefix      string        `yaml:"prefix"`
	Console     *ConsoleBlock `yaml:"console"`
	File        *FileBlock    `yaml:"file"`
}

// QueueBlock configures the async queue shared by both handler kinds.
type QueueBlock struct {
	Async        bool              `yaml:"async"`
	BufferSize   int               `yaml:"buffer_size"`
	Overflow     map[string]string `yaml:"overflow"`
	BlockTimeout time.Duration     `yaml:"block_timeout"`
	DrainTimeout time.Duration     `yaml:"drain_timeout"`
}

// FormatBlock selects and configures the formatter.
type FormatBlock struct {
	Format          string `yaml:"format"`
	TimestampFormat string `yaml:"timestamp_format"`
}

// ConsoleBlock configures a console handler.
type ConsoleBlock struct {
	FormatBlock `yaml:",inline"`
	QueueBlock  `yaml:",inline"`
	Output      string `yaml:"output"`
	Color       string `yaml:"color"`
}

// FileBlock configures a file handler.
type FileBlock struct {
	FormatBlock    `yaml:",inline"`
	QueueBlock     `yaml:",inline"`
	Filename       string        `yaml:"filename"`
	MaxSize        int64         `yaml:"max_size"`
	MaxAge         time.Duration `yaml:"max_age"`
	MaxBackups     int           `yaml:"max_backups"`
	RotateInterval time.Duration `yaml:"rotate_interval"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML. Unknown keys are rejected. An empty document yields
// the zero Config, which builds an InfoLevel logger writing text to stdout.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every enumerated value without opening anything.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	if c.Console != nil {
		if _, err := c.Console.formatter(c.Caller, false); err != nil {
			return err
		}
		if _, err := c.Console.writer(); err != nil {
			return err
		}
		if _, err := parseColor(c.Console.Color); err != nil {
			return err
		}
		if _, err := c.Console.queueConfig(); err != nil {
			return err
		}
	}
	if c.File != nil {
		if _, err := c.File.formatter(c.Caller, false); err != nil {
			return err
		}
		if _, err := c.File.queueConfig(); err != nil {
			return err
		}
	}
	return nil
}

// Build constructs the handlers and the logger. Without a console or file
// block it logs text to stdout. With both, records fan out through a
// multihandler. The caller owns the result and must Close it.
func (c *Config) Build() (*logger.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	var handlers []handler.Handler
	closeAll := func() {
		for _, h := range handlers {
			h.Close()
		}
	}

	console := c.Console
	if console == nil && c.File == nil {
		console = &ConsoleBlock{}
	}
	if console != nil {
		h, err := console.build(c.Caller)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}
	if c.File != nil {
		h, err := c.File.build(c.Caller)
		if err != nil {
			closeAll()
			return nil, err
		}
		handlers = append(handlers, h)
	}

	var h handler.Handler = handlers[0]
	if len(handlers) > 1 {
		h = multihandler.NewMultiHandler(handlers...)
	}

	return logger.NewBuilder().
		WithHandler(h).
		WithLevel(level).
		WithCaller(c.Caller).
		WithCoarseClock(c.CoarseClock).
		WithPrefix(core.Intern(c.Prefix)).
		Build(), nil
}

func (b *ConsoleBlock) build(caller bool) (handler.Handler, error) {
	w, err := b.writer()
	if err != nil {
		return nil, err
	}
	color, err := parseColor(b.Color)
	if err != nil {
		return nil, err
	}
	q, err := b.queueConfig()
	if err != nil {
		return nil, err
	}

	cfg := consolehandler.ConsoleConfig{
		Writer:         w,
		Color:          color,
		IncludeCaller:  caller,
		Async:          b.Async,
		BufferSize:     q.BufferSize,
		OverflowPolicy: q.OverflowPolicy,
		BlockTimeout:   q.BlockTimeout,
		DrainTimeout:   q.DrainTimeout,
	}
	// A text format without a timestamp override keeps the handler's
	// default formatter, which resolves Color against the writer.
	if !strings.EqualFold(b.Format, "json") && b.TimestampFormat == "" && color == consolehandler.ColorAuto {
		return consolehandler.NewConsoleHandler(cfg), nil
	}
	cfg.Formatter, err = b.formatter(caller, color == consolehandler.ColorAlways)
	if err != nil {
		return nil, err
	}
	return consolehandler.NewConsoleHandler(cfg), nil
}

func (b *ConsoleBlock) writer() (io.Writer, error) {
	switch strings.ToLower(b.Output) {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return nil, fmt.Errorf("config: console output %q: %w", b.Output, ErrUnknownValue)
	}
}

func (b *FileBlock) build(caller bool) (handler.Handler, error) {
	f, err := b.formatter(caller, false)
	if err != nil {
		return nil, err
	}
	q, err := b.queueConfig()
	if err != nil {
		return nil, err
	}
	h, err := filehandler.NewFileHandler(filehandler.FileConfig{
		Filename:       b.Filename,
		Formatter:      f,
		Async:          b.Async,
		BufferSize:     q.BufferSize,
		MaxSize:        b.MaxSize,
		MaxAge:         b.MaxAge,
		MaxBackups:     b.MaxBackups,
		RotateInterval: b.RotateInterval,
		OverflowPolicy: q.OverflowPolicy,
		BlockTimeout:   q.BlockTimeout,
		DrainTimeout:   q.DrainTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("config: file handler: %w", err)
	}
	return h, nil
}

func (b *FormatBlock) formatter(caller, color bool) (formatter.Formatter, error) {
	cfg := formatter.Config{
		IncludeCaller:   caller,
		TimestampFormat: b.TimestampFormat,
	}
	switch strings.ToLower(b.Format) {
	case "", "text":
		cfg.Color = color
		return formatter.NewTextFormatter(cfg), nil
	case "json":
		return formatter.NewJSONFormatter(cfg), nil
	default:
		return nil, fmt.Errorf("config: format %q: %w", b.Format, ErrUnknownFormat)
	}
}

// queueConfig converts the overflow map, starting from the default
// per-level policy.
func (b *QueueBlock) queueConfig() (handler.QueueConfig, error) {
	q := handler.QueueConfig{
		BufferSize:   b.BufferSize,
		BlockTimeout: b.BlockTimeout,
		DrainTimeout: b.DrainTimeout,
	}
	if len(b.Overflow) == 0 {
		return q, nil
	}
	q.OverflowPolicy = handler.DefaultLevelPolicy()
	for name, policy := range b.Overflow {
		level, err := parseLevel(name)
		if err != nil {
			return q, err
		}
		p, err := parsePolicy(policy)
		if err != nil {
			return q, err
		}
		q.OverflowPolicy[level] = p
	}
	return q, nil
}

func parseLevel(s string) (core.Level, error) {
	if s == "" {
		return core.InfoLevel, nil
	}
	level, ok := logger.LookupLevel(s)
	if !ok {
		return level, fmt.Errorf("config: level %q: %w", s, ErrUnknownLevel)
	}
	return level, nil
}

func parseColor(s string) (consolehandler.ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return consolehandler.ColorAuto, nil
	case "always", "true":
		return consolehandler.ColorAlways, nil
	case "never", "false":
		return consolehandler.ColorNever, nil
	default:
		return consolehandler.ColorAuto, fmt.Errorf("config: color %q: %w", s, ErrUnknownValue)
	}
}

func parsePolicy(s string) (handler.OverflowPolicy, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "drop_newest", "dropnewest":
		return handler.DropNewest, nil
	case "drop_oldest", "dropoldest":
		return handler.DropOldest, nil
	case "block":
		return handler.Block, nil
	default:
		return handler.DropNewest, fmt.Errorf("config: overflow policy %q: %w", s, ErrUnknownValue)
	}
}
