package weather

import "time"

// Config controls the fixture-backed weather source.
type Config struct {
	// Fixture is a YAML file with the weather to serve. Empty uses the
	// embedded default.
	Fixture string `json:"fixture,omitempty" env:"FIXTURE"`

	// Latency delays every fetch.
	Latency time.Duration `json:"latency,omitempty" env:"LATENCY"`

	// Fail makes every fetch fail with this error kind ("network_unavailable",
	// "server", ...).
	Fail string `json:"fail,omitempty" env:"FAIL"`

	// Tracing wraps the source in OpenTelemetry spans.
	Tracing bool `json:"tracing,omitempty" env:"TRACING"`
}

func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Fixture != "" {
		c.Fixture = source.Fixture
	}
	if source.Latency > 0 {
		c.Latency = source.Latency
	}
	if source.Fail != "" {
		c.Fail = source.Fail
	}
	if source.Tracing {
		c.Tracing = true
	}
}
