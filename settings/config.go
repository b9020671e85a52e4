package settings

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config selects where settings are persisted.
type Config struct {
	Backend string `json:"backend,omitempty" env:"BACKEND"`
	Path    string `json:"path,omitempty" env:"PATH"` // directory for "file", database file for "sqlite"
}

// DefaultConfig keeps settings in memory.
func DefaultConfig() Config {
	return Config{Backend: BackendMemory}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Backend != "" {
		c.Backend = source.Backend
	}
	if source.Path != "" {
		c.Path = source.Path
	}
}

// NewStore creates the configured Store. SQLite stores must be closed by
// the caller; Settings.Close does this for stores it owns.
func NewStore(cfg *Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("settings backend %q requires a path", cfg.Backend)
		}
		return NewFileStore(cfg.Path), nil
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("settings backend %q requires a path", cfg.Backend)
		}
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown settings backend: %s", cfg.Backend)
	}
}

func mkdirFor(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}
	return nil
}
