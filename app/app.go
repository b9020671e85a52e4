// Package app composes the settings, weather, crash log and telemetry
// subsystems into running main and home screens.
//
// The app initializes from configuration via New, creating all subsystems
// internally. Functional options replace any subsystem, mostly for tests.
//
//	a, err := app.New(ctx, cfg)
//	home, err := a.OpenHome(ctx)
//	defer a.Close()
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/belinwu/WeatherApp/crashlog"
	"github.com/belinwu/WeatherApp/homescreen"
	"github.com/belinwu/WeatherApp/mainscreen"
	"github.com/belinwu/WeatherApp/messages"
	"github.com/belinwu/WeatherApp/observability"
	"github.com/belinwu/WeatherApp/settings"
	"github.com/belinwu/WeatherApp/store"
	"github.com/belinwu/WeatherApp/telemetry"
	"github.com/belinwu/WeatherApp/weather"
)

// ErrClosed is returned when opening a screen on a closed App.
var ErrClosed = errors.New("app closed")

// Option configures an App before config-driven initialization. A subsystem
// supplied by an option is not created from config.
type Option func(*App)

// WithLogger sets the logger every subsystem logs through.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithObserver routes store and synchronizer events to o instead of the
// observer named in the store config.
func WithObserver(o observability.Observer) Option {
	return func(a *App) { a.observer = o }
}

// WithRegisterer registers store metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(a *App) { a.registerer = r }
}

// WithSettingsStore persists settings in s. The App takes ownership and
// closes s if it is an io.Closer.
func WithSettingsStore(s settings.Store) Option {
	return func(a *App) { a.settingsStore = s }
}

// WithWeather overrides the config-created weather repository.
func WithWeather(r weather.Repository) Option {
	return func(a *App) { a.weather = r }
}

// WithCrashLogger overrides the config-created crash log. The App does not
// close it.
func WithCrashLogger(l crashlog.Logger) Option {
	return func(a *App) { a.crash = l }
}

// App owns the subsystems and the screens built on them.
type App struct {
	cfg        Config
	logger     *slog.Logger
	observer   observability.Observer
	registerer prometheus.Registerer

	settingsStore settings.Store
	settings      *settings.Settings
	weather       weather.Repository
	crash         crashlog.Logger

	closers           []func() error
	shutdownTelemetry func(context.Context) error

	ctx    context.Context
	cancel context.CancelFunc
	main   *mainscreen.Screen

	mu     sync.Mutex
	homes  map[*homescreen.Screen]struct{}
	closed bool
}

// New creates an App from configuration and starts the main screen. The
// main screen lives until Close; home screens are opened on demand.
func New(ctx context.Context, cfg *Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:   *cfg,
		homes: make(map[*homescreen.Screen]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.cfg.ShutdownTimeout <= 0 {
		a.cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	shutdown, err := telemetry.Setup(ctx, &a.cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}
	a.shutdownTelemetry = shutdown

	if err := a.init(ctx); err != nil {
		a.release()
		return nil, err
	}

	a.ctx, a.cancel = context.WithCancel(context.WithoutCancel(ctx))
	a.main = mainscreen.New(a.ctx, a.storeConfig("main"), a.settings, a.crash)

	a.logger.Info("app started",
		slog.String("settings_backend", a.cfg.Settings.Backend),
		slog.Bool("tracing", a.cfg.Weather.Tracing),
		slog.Bool("telemetry", a.cfg.Telemetry.Enabled()))

	return a, nil
}

func (a *App) init(ctx context.Context) error {
	if a.settingsStore == nil {
		st, err := settings.NewStore(&a.cfg.Settings)
		if err != nil {
			return fmt.Errorf("failed to create settings store: %w", err)
		}
		a.settingsStore = st
	}

	s, err := settings.Open(ctx, a.settingsStore, a.logger)
	if err != nil {
		if c, ok := a.settingsStore.(io.Closer); ok {
			_ = c.Close()
		}
		return fmt.Errorf("failed to open settings: %w", err)
	}
	a.settings = s
	a.closers = append(a.closers, s.Close)

	if a.weather == nil {
		fx, err := weather.NewFixture(&a.cfg.Weather)
		if err != nil {
			return fmt.Errorf("failed to create weather repository: %w", err)
		}
		a.weather = fx
	}
	if a.cfg.Weather.Tracing {
		a.weather = weather.Traced(a.weather, otel.GetTracerProvider())
	}

	if a.crash == nil {
		cl, err := crashlog.New(&a.cfg.CrashLog)
		if err != nil {
			return fmt.Errorf("failed to create crash log: %w", err)
		}
		a.crash = cl
		a.closers = append(a.closers, cl.Close)
	}

	return nil
}

func (a *App) storeConfig(name string) store.Config {
	cfg := a.cfg.Store.Named(name)
	cfg.Logger = a.logger
	if a.observer != nil {
		cfg.Events = a.observer
	}
	if a.registerer != nil {
		cfg.Registerer = a.registerer
	}
	return cfg
}

// Main returns the main screen.
func (a *App) Main() *mainscreen.Screen {
	return a.main
}

// OpenHome starts a home screen bound to the app's settings and weather
// repository. It stops when ctx ends, CloseHome is called or the App closes.
func (a *App) OpenHome(ctx context.Context) (*homescreen.Screen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}

	h := homescreen.Open(ctx, a.storeConfig("home"), a.settings, a.weather)
	a.homes[h] = struct{}{}
	return h, nil
}

// CloseHome stops a home screen opened by OpenHome.
func (a *App) CloseHome(h *homescreen.Screen) error {
	a.mu.Lock()
	delete(a.homes, h)
	a.mu.Unlock()

	return h.Close(a.cfg.ShutdownTimeout)
}

// Settings returns the settings repository shared by both screens.
func (a *App) Settings() *settings.Settings {
	return a.settings
}

// ErrorText renders a home screen error in the user's current language.
func (a *App) ErrorText(e homescreen.Error) string {
	return messages.Default().Text(a.settings.Snapshot().Language, e.MessageKey)
}

// Close stops every screen, then releases the subsystems. It is safe to
// call more than once.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	homes := make([]*homescreen.Screen, 0, len(a.homes))
	for h := range a.homes {
		homes = append(homes, h)
	}
	clear(a.homes)
	a.mu.Unlock()

	var errs []error
	for _, h := range homes {
		if err := h.Close(a.cfg.ShutdownTimeout); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.main.Close(a.cfg.ShutdownTimeout); err != nil {
		errs = append(errs, err)
	}
	a.cancel()

	if err := a.release(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("app stopped")
	return errors.Join(errs...)
}

func (a *App) release() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if a.shutdownTelemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.shutdownTelemetry(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down telemetry: %w", err))
		}
		a.shutdownTelemetry = nil
	}

	return errors.Join(errs...)
}
