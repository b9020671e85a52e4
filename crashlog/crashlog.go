// Package crashlog records exceptions forwarded by the hosting layer. Each
// exception becomes one JSON line.
package crashlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Logger receives exceptions. LogException must not block for long and
// never fails the caller.
type Logger interface {
	LogException(err error)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(err error)

func (f LoggerFunc) LogException(err error) { f(err) }

// Config holds crash log parameters.
type Config struct {
	Path string `json:"path,omitempty" env:"PATH"` // JSON lines file; empty writes to stderr.
}

func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
}

// JSONLogger writes exceptions through zerolog.
type JSONLogger struct {
	log    zerolog.Logger
	closer io.Closer
	count  atomic.Int64
	once   sync.Once
}

// New opens the configured sink.
func New(cfg *Config) (*JSONLogger, error) {
	if cfg.Path == "" {
		return NewWithWriter(os.Stderr), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create crash log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open crash log: %w", err)
	}

	l := NewWithWriter(f)
	l.closer = f
	return l, nil
}

func NewWithWriter(w io.Writer) *JSONLogger {
	return &JSONLogger{
		log: zerolog.New(w).With().Timestamp().Str("component", "crashlog").Logger(),
	}
}

func (l *JSONLogger) LogException(err error) {
	if err == nil {
		return
	}
	l.count.Add(1)

	chain := make([]string, 0, 2)
	for e := errors.Unwrap(err); e != nil; e = errors.Unwrap(e) {
		chain = append(chain, e.Error())
	}

	l.log.Error().
		Err(err).
		Str("type", fmt.Sprintf("%T", err)).
		Strs("causes", chain).
		Int64("seq", l.count.Load()).
		Msg("exception")
}

// Count returns how many exceptions have been recorded.
func (l *JSONLogger) Count() int64 {
	return l.count.Load()
}

func (l *JSONLogger) Close() error {
	var err error
	l.once.Do(func() {
		if l.closer != nil {
			err = l.closer.Close()
		}
	})
	return err
}
