package homescreen

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/belinwu/WeatherApp/model"
	"github.com/belinwu/WeatherApp/observability"
	"github.com/belinwu/WeatherApp/stream"
)

// EventSettings is emitted for every combined settings emission.
const EventSettings observability.EventType = "home.settings"

// SettingsSource provides the three settings sequences. Each call must
// start a fresh subscription delivering the current value, then every
// change.
type SettingsSource interface {
	Language(ctx context.Context) <-chan model.Language
	Units(ctx context.Context) <-chan model.Units
	DefaultLocation(ctx context.Context) <-chan model.Location
}

// Synchronizer joins the settings sequences with combine-latest semantics
// and re-synchronizes the home store on every combined emission: first the
// settings patch, then a weather fetch.
type Synchronizer struct {
	source   SettingsSource
	dispatch func(Intent)
	logger   *slog.Logger
	observer observability.Observer
	name     string

	emissions atomic.Int64
}

func newSynchronizer(source SettingsSource, dispatch func(Intent), name string, logger *slog.Logger, observer observability.Observer) *Synchronizer {
	return &Synchronizer{
		source:   source,
		dispatch: dispatch,
		logger:   logger,
		observer: observability.OrNoOp(observer),
		name:     name,
	}
}

// Run blocks until ctx ends.
func (s *Synchronizer) Run(ctx context.Context) {
	combined := stream.CombineLatest3(ctx,
		s.source.Language(ctx),
		s.source.Units(ctx),
		s.source.DefaultLocation(ctx),
	)

	for latest := range combined {
		n := s.emissions.Add(1)

		s.dispatch(settingsChanged{
			language: latest.First,
			units:    latest.Second,
			location: latest.Third,
		})
		s.dispatch(LoadWeatherData{})

		s.observer.OnEvent(ctx, observability.NewEvent(EventSettings, observability.LevelVerbose, s.name, map[string]any{
			"emission": n,
			"language": latest.First.Value(),
			"units":    latest.Second.Value(),
			"location": latest.Third.String(),
		}))
	}

	s.logger.DebugContext(
		ctx,
		"settings synchronizer stopped",
		slog.String("screen", s.name),
		slog.Int64("emissions", s.emissions.Load()),
	)
}

// Emissions returns how many combined settings emissions have been applied.
func (s *Synchronizer) Emissions() int64 {
	return s.emissions.Load()
}
