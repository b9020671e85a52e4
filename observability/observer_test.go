package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/belinwu/WeatherApp/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  string
	}{
		{1, "TRACE"},
		{observability.LevelVerbose, "DEBUG"},
		{observability.LevelInfo, "INFO"},
		{observability.LevelWarning, "WARN"},
		{observability.LevelError, "ERROR"},
		{21, "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  slog.Level
	}{
		{observability.LevelVerbose, slog.LevelDebug},
		{observability.LevelInfo, slog.LevelInfo},
		{observability.LevelWarning, slog.LevelWarn},
		{observability.LevelError, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogObserver_WritesSourceAndSortedData(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := observability.NewSlogObserver(logger)

	obs.OnEvent(context.Background(), observability.NewEvent(
		"store.commit",
		observability.LevelInfo,
		"home",
		map[string]any{"state": "Success", "intent": "DisplayCityName"},
	))

	line := buf.String()
	for _, want := range []string{"msg=store.commit", "source=home", "intent=DisplayCityName", "state=Success"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
	if strings.Index(line, "intent=") > strings.Index(line, "state=") {
		t.Errorf("data keys not sorted in %q", line)
	}
}

func TestSlogObserver_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	obs := observability.NewSlogObserver(logger)

	obs.OnEvent(context.Background(), observability.NewEvent("store.dispatch", observability.LevelVerbose, "main", nil))
	if buf.Len() != 0 {
		t.Errorf("debug event logged at warn level: %q", buf.String())
	}
}

func TestMultiObserver_FansOutAndSkipsNil(t *testing.T) {
	first := observability.NewRecorder()
	second := observability.NewRecorder()
	multi := observability.NewMultiObserver(first, nil, second)

	multi.OnEvent(context.Background(), observability.NewEvent("store.skip", observability.LevelVerbose, "main", nil))

	if got := first.Count("store.skip"); got != 1 {
		t.Errorf("first.Count() = %d, want 1", got)
	}
	if got := second.Count("store.skip"); got != 1 {
		t.Errorf("second.Count() = %d, want 1", got)
	}
}

func TestNewEvent_CopiesData(t *testing.T) {
	data := map[string]any{"k": 1}
	event := observability.NewEvent("x", observability.LevelInfo, "s", data)
	data["k"] = 2

	if event.Data["k"] != 1 {
		t.Errorf("event data mutated through caller map: %v", event.Data["k"])
	}
	if event.Timestamp.IsZero() {
		t.Error("event timestamp not set")
	}
}

func TestRecorder_Reset(t *testing.T) {
	r := observability.NewRecorder()
	r.OnEvent(context.Background(), observability.Event{Type: "a"})
	r.OnEvent(context.Background(), observability.Event{Type: "b"})

	if got := len(r.Events()); got != 2 {
		t.Fatalf("len(Events()) = %d, want 2", got)
	}
	r.Reset()
	if got := len(r.Events()); got != 0 {
		t.Errorf("len(Events()) after Reset = %d, want 0", got)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"noop", "slog"} {
		if _, err := observability.GetObserver(name); err != nil {
			t.Errorf("GetObserver(%q) error = %v", name, err)
		}
	}

	if _, err := observability.GetObserver("missing"); err == nil {
		t.Error("GetObserver(missing) expected error")
	}

	rec := observability.NewRecorder()
	observability.RegisterObserver("test-recorder", rec)
	got, err := observability.GetObserver("test-recorder")
	if err != nil {
		t.Fatalf("GetObserver() error = %v", err)
	}
	if got != rec {
		t.Error("GetObserver() returned a different observer")
	}
}

func TestOrNoOp(t *testing.T) {
	if _, ok := observability.OrNoOp(nil).(observability.NoOpObserver); !ok {
		t.Error("OrNoOp(nil) is not a NoOpObserver")
	}
	rec := observability.NewRecorder()
	if observability.OrNoOp(rec) != rec {
		t.Error("OrNoOp(rec) did not return rec")
	}
}
