package homescreen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/belinwu/WeatherApp/store"
	"github.com/belinwu/WeatherApp/weather"
)

// Screen is the home screen's state container together with the settings
// synchronizer that drives it.
type Screen struct {
	store *store.Store[State, Intent]
	sync  *Synchronizer

	cancel   context.CancelFunc
	syncDone chan struct{}
}

// Open starts a home screen in Loading and subscribes to the settings. The
// first combined settings emission promotes it to Success and starts the
// first fetch. The screen lives until ctx ends or Close is called.
func Open(ctx context.Context, cfg store.Config, source SettingsSource, repo weather.Repository) *Screen {
	if cfg.Name == "" {
		cfg.Name = "home"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	screenCtx, cancel := context.WithCancel(ctx)
	r := &reducer{weather: repo}
	st := store.New[State, Intent](screenCtx, cfg, Loading{}, r.reduce)

	s := &Screen{
		store:    st,
		sync:     newSynchronizer(source, st.Dispatch, cfg.Name, logger, cfg.EventObserver()),
		cancel:   cancel,
		syncDone: make(chan struct{}),
	}

	go func() {
		defer close(s.syncDone)
		s.sync.Run(screenCtx)
	}()

	return s
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

// Emissions returns how many combined settings emissions have been applied.
func (s *Screen) Emissions() int64 {
	return s.sync.Emissions()
}

func (s *Screen) Metrics() store.MetricsSnapshot {
	return s.store.Metrics()
}

// Wait blocks until every fetch started so far has returned.
func (s *Screen) Wait() {
	s.store.Wait()
}

// Close cancels the settings subscription and stops the store. Fetches
// already running finish, but their results are discarded.
func (s *Screen) Close(timeout time.Duration) error {
	s.cancel()

	select {
	case <-s.syncDone:
	case <-time.After(timeout):
		return fmt.Errorf("close home screen: settings synchronizer still running after %v", timeout)
	}

	if err := s.store.Shutdown(timeout); err != nil {
		return fmt.Errorf("close home screen: %w", err)
	}
	return nil
}
