package telemetry_test

import (
	"context"
	"testing"

	"github.com/belinwu/WeatherApp/telemetry"
)

func TestSetup_DisabledIsNoOp(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	if cfg.Enabled() {
		t.Fatal("default config enables tracing")
	}

	shutdown, err := telemetry.Setup(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestSetup_Enabled(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.Merge(&telemetry.Config{Endpoint: "http://127.0.0.1:4318/v1/traces"})

	shutdown, err := telemetry.Setup(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	// Nothing was recorded, so shutdown has nothing to flush.
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.Merge(&telemetry.Config{})
	if cfg.ServiceName != "weatherapp" {
		t.Errorf("ServiceName = %q, want weatherapp", cfg.ServiceName)
	}

	cfg.Merge(&telemetry.Config{ServiceName: "weather-cli", Endpoint: "http://collector:4318"})
	if cfg.ServiceName != "weather-cli" || !cfg.Enabled() {
		t.Errorf("Merge() = %+v", cfg)
	}
}
