package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/belinwu/WeatherApp/crashlog"
	"github.com/belinwu/WeatherApp/settings"
	"github.com/belinwu/WeatherApp/store"
	"github.com/belinwu/WeatherApp/telemetry"
	"github.com/belinwu/WeatherApp/weather"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WEATHERAPP_"

const defaultShutdownTimeout = 5 * time.Second

// Config holds initialization parameters for every subsystem. Each section
// delegates to that subsystem's own Config.
type Config struct {
	Store     store.Config     `json:"store" envPrefix:"STORE_"`
	Settings  settings.Config  `json:"settings" envPrefix:"SETTINGS_"`
	Weather   weather.Config   `json:"weather" envPrefix:"WEATHER_"`
	CrashLog  crashlog.Config  `json:"crash_log" envPrefix:"CRASHLOG_"`
	Telemetry telemetry.Config `json:"telemetry" envPrefix:"TELEMETRY_"`

	ShutdownTimeout time.Duration `json:"shutdown_timeout,omitempty" env:"SHUTDOWN_TIMEOUT"`
	MetricsAddr     string        `json:"metrics_addr,omitempty" env:"METRICS_ADDR"`
}

// DefaultConfig returns a Config with defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Store:           store.DefaultConfig(),
		Settings:        settings.DefaultConfig(),
		Weather:         weather.DefaultConfig(),
		CrashLog:        crashlog.DefaultConfig(),
		Telemetry:       telemetry.DefaultConfig(),
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Store.Merge(&source.Store)
	c.Settings.Merge(&source.Settings)
	c.Weather.Merge(&source.Weather)
	c.CrashLog.Merge(&source.CrashLog)
	c.Telemetry.Merge(&source.Telemetry)

	if source.ShutdownTimeout > 0 {
		c.ShutdownTimeout = source.ShutdownTimeout
	}
	if source.MetricsAddr != "" {
		c.MetricsAddr = source.MetricsAddr
	}
}

// LoadConfig builds a Config from defaults, then the JSON file at filename
// (skipped when filename is empty), then WEATHERAPP_* environment variables.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		var loaded Config
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.Merge(&loaded)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &cfg, nil
}
