// Package settings holds the user's language, units and default location.
// Each value is persisted through a Store and published as a live sequence:
// subscribers get the current value, then every change.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/belinwu/WeatherApp/model"
	"github.com/belinwu/WeatherApp/stream"
)

// Persisted keys.
const (
	KeyLanguage        = "language"
	KeyUnits           = "units"
	KeyDefaultLocation = "default_location"
)

// Repository is what the screens consume.
type Repository interface {
	Language(ctx context.Context) <-chan model.Language
	Units(ctx context.Context) <-chan model.Units
	DefaultLocation(ctx context.Context) <-chan model.Location

	SetDefaultLocation(ctx context.Context, location model.Location) error
	SetLanguage(ctx context.Context, lang model.Language) error
	SetUnits(ctx context.Context, units model.Units) error
}

// Snapshot is the current value of every setting.
type Snapshot struct {
	Language        model.Language `json:"language"`
	Units           model.Units    `json:"units"`
	DefaultLocation model.Location `json:"default_location"`
}

// Defaults returns the settings of a fresh install.
func Defaults() Snapshot {
	return Snapshot{
		Language:        model.DefaultLanguage,
		Units:           model.DefaultUnits,
		DefaultLocation: model.NoLocation,
	}
}

// Settings implements Repository over a Store.
type Settings struct {
	store  Store
	logger *slog.Logger

	// writes serializes persist-then-publish so the published order matches
	// the stored order.
	writes sync.Mutex

	language *stream.Cell[model.Language]
	units    *stream.Cell[model.Units]
	location *stream.Cell[model.Location]
}

// Open loads persisted values from store. Missing keys take their defaults;
// unreadable values are logged and replaced by defaults.
func Open(ctx context.Context, store Store, logger *slog.Logger) (*Settings, error) {
	if logger == nil {
		logger = slog.Default()
	}

	snap, err := load(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	return &Settings{
		store:    store,
		logger:   logger,
		language: stream.NewCell(snap.Language),
		units:    stream.NewCell(snap.Units),
		location: stream.NewCell(snap.DefaultLocation),
	}, nil
}

func load(ctx context.Context, store Store, logger *slog.Logger) (Snapshot, error) {
	snap := Defaults()

	keys, err := store.List(ctx)
	if err != nil {
		return snap, fmt.Errorf("list settings: %w", err)
	}
	if len(keys) == 0 {
		return snap, nil
	}

	entries, err := store.Load(ctx, keys...)
	if err != nil {
		return snap, fmt.Errorf("load settings: %w", err)
	}

	for _, e := range entries {
		var decodeErr error
		switch e.Key {
		case KeyLanguage:
			snap.Language, decodeErr = model.ParseLanguage(string(e.Value))
		case KeyUnits:
			snap.Units, decodeErr = model.ParseUnits(string(e.Value))
		case KeyDefaultLocation:
			decodeErr = json.Unmarshal(e.Value, &snap.DefaultLocation)
		default:
			continue
		}

		if decodeErr != nil {
			logger.WarnContext(
				ctx,
				"ignoring unreadable setting",
				slog.String("key", e.Key),
				slog.String("error", decodeErr.Error()),
			)
			def := Defaults()
			switch e.Key {
			case KeyLanguage:
				snap.Language = def.Language
			case KeyUnits:
				snap.Units = def.Units
			case KeyDefaultLocation:
				snap.DefaultLocation = def.DefaultLocation
			}
		}
	}

	return snap, nil
}

func (s *Settings) Language(ctx context.Context) <-chan model.Language {
	return s.language.Subscribe(ctx)
}

func (s *Settings) Units(ctx context.Context) <-chan model.Units {
	return s.units.Subscribe(ctx)
}

func (s *Settings) DefaultLocation(ctx context.Context) <-chan model.Location {
	return s.location.Subscribe(ctx)
}

func (s *Settings) SetDefaultLocation(ctx context.Context, location model.Location) error {
	data, err := json.Marshal(location)
	if err != nil {
		return fmt.Errorf("encode default location: %w", err)
	}
	return write(s, ctx, KeyDefaultLocation, data, s.location, location)
}

func (s *Settings) SetLanguage(ctx context.Context, lang model.Language) error {
	return write(s, ctx, KeyLanguage, []byte(lang.Value()), s.language, lang)
}

func (s *Settings) SetUnits(ctx context.Context, units model.Units) error {
	return write(s, ctx, KeyUnits, []byte(units.Value()), s.units, units)
}

// write persists value, then publishes it if it differs from the current one.
func write[T comparable](s *Settings, ctx context.Context, key string, data []byte, cell *stream.Cell[T], value T) error {
	s.writes.Lock()
	defer s.writes.Unlock()

	if err := s.store.Save(ctx, Entry{Key: key, Value: data}); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	if cell.Value() != value {
		cell.Set(value)
	}

	s.logger.DebugContext(
		ctx,
		"setting saved",
		slog.String("key", key),
		slog.Any("value", value),
	)
	return nil
}

// Snapshot returns the current value of every setting.
func (s *Settings) Snapshot() Snapshot {
	return Snapshot{
		Language:        s.language.Value(),
		Units:           s.units.Value(),
		DefaultLocation: s.location.Value(),
	}
}

// Reset deletes every persisted setting and publishes the defaults.
func (s *Settings) Reset(ctx context.Context) error {
	s.writes.Lock()
	defer s.writes.Unlock()

	if err := s.store.Delete(ctx, KeyLanguage, KeyUnits, KeyDefaultLocation); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}

	def := Defaults()
	if s.language.Value() != def.Language {
		s.language.Set(def.Language)
	}
	if s.units.Value() != def.Units {
		s.units.Set(def.Units)
	}
	if s.location.Value() != def.DefaultLocation {
		s.location.Set(def.DefaultLocation)
	}
	return nil
}

// Close ends every subscription and closes the store if it holds resources.
func (s *Settings) Close() error {
	s.language.Close()
	s.units.Close()
	s.location.Close()

	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close settings store: %w", err)
		}
	}
	return nil
}
