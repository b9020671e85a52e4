package store

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/belinwu/WeatherApp/observability"
)

// Config defines configuration for a Store.
type Config struct {
	// Store identity, used as the metrics label and event source.
	Name string `json:"name,omitempty"`

	// Observer names a registered observability observer ("slog", "noop").
	Observer string `json:"observer,omitempty" env:"OBSERVER"`

	// Runtime collaborators, set in code.
	Logger      *slog.Logger           `json:"-"`
	Events      observability.Observer `json:"-"`
	OnViolation func(error)            `json:"-"`
	Registerer  prometheus.Registerer  `json:"-"`
}

// DefaultConfig returns a Config that logs through slog.Default and reports
// violations at error level.
func DefaultConfig() Config {
	return Config{
		Name:     "default",
		Observer: "slog",
		Logger:   slog.Default(),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Name != "" {
		c.Name = source.Name
	}

	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if source.Logger != nil {
		c.Logger = source.Logger
	}

	if source.Events != nil {
		c.Events = source.Events
	}

	if source.OnViolation != nil {
		c.OnViolation = source.OnViolation
	}

	if source.Registerer != nil {
		c.Registerer = source.Registerer
	}
}

// Named returns a copy of c carrying name.
func (c Config) Named(name string) Config {
	c.Name = name
	return c
}

// EventObserver resolves the observer events go to: Events when set,
// otherwise the registered observer named by Observer.
func (c *Config) EventObserver() observability.Observer {
	if c.Events != nil {
		return c.Events
	}
	switch c.Observer {
	case "":
		return observability.NoOpObserver{}
	case "slog":
		return observability.NewSlogObserver(c.Logger)
	}
	o, err := observability.GetObserver(c.Observer)
	if err != nil {
		return observability.NoOpObserver{}
	}
	return o
}
