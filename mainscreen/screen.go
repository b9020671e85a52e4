package mainscreen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/belinwu/WeatherApp/crashlog"
	"github.com/belinwu/WeatherApp/store"
	"github.com/belinwu/WeatherApp/stream"
)

// Screen is the main screen's state container. It also owns the
// update-available flag, which lives outside State.
type Screen struct {
	store     *store.Store[State, Intent]
	hasUpdate *stream.Cell[bool]
}

// New starts a main screen in Loading. The screen stops when ctx ends or
// Close is called.
func New(ctx context.Context, cfg store.Config, saver LocationSaver, crash crashlog.Logger) *Screen {
	if cfg.Name == "" {
		cfg.Name = "main"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	hasUpdate := stream.NewCell(false)
	r := &reducer{
		saver:     saver,
		crash:     crash,
		hasUpdate: hasUpdate,
		logger:    logger,
	}

	return &Screen{
		store:     store.New[State, Intent](ctx, cfg, Loading{}, r.reduce),
		hasUpdate: hasUpdate,
	}
}

// State returns the latest committed state.
func (s *Screen) State() State {
	return s.store.State()
}

// Subscribe returns the current state followed by every commit.
func (s *Screen) Subscribe(ctx context.Context) <-chan State {
	return s.store.Subscribe(ctx)
}

// Dispatch queues intent. It never blocks.
func (s *Screen) Dispatch(intent Intent) {
	s.store.Dispatch(intent)
}

// HasAppUpdate returns the current update flag followed by every change.
func (s *Screen) HasAppUpdate(ctx context.Context) <-chan bool {
	return s.hasUpdate.Subscribe(ctx)
}

// AppUpdateAvailable reports the current update flag.
func (s *Screen) AppUpdateAvailable() bool {
	return s.hasUpdate.Value()
}

func (s *Screen) Metrics() store.MetricsSnapshot {
	return s.store.Metrics()
}

// Wait blocks until every side effect started so far has finished.
func (s *Screen) Wait() {
	s.store.Wait()
}

// Close stops the screen and ends all subscriptions.
func (s *Screen) Close(timeout time.Duration) error {
	err := s.store.Shutdown(timeout)
	s.hasUpdate.Close()
	if err != nil {
		return fmt.Errorf("close main screen: %w", err)
	}
	return nil
}
