package settings_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/belinwu/WeatherApp/model"
	"github.com/belinwu/WeatherApp/settings"
)

func open(t *testing.T, store settings.Store) *settings.Settings {
	t.Helper()
	s, err := settings.Open(context.Background(), store, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func next[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "sequence closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("no value within 1s")
	}
	var zero T
	return zero
}

func TestOpen_Defaults(t *testing.T) {
	s := open(t, settings.NewMemoryStore())
	require.Equal(t, settings.Defaults(), s.Snapshot())
}

func TestSettings_SequencesEmitCurrentThenChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := open(t, settings.NewMemoryStore())

	langs := s.Language(ctx)
	units := s.Units(ctx)
	locs := s.DefaultLocation(ctx)

	require.Equal(t, model.English, next(t, langs))
	require.Equal(t, model.Metric, next(t, units))
	require.Equal(t, model.NoLocation, next(t, locs))

	require.NoError(t, s.SetLanguage(ctx, model.French))
	require.NoError(t, s.SetUnits(ctx, model.Imperial))
	require.NoError(t, s.SetDefaultLocation(ctx, model.NewLocation(5, 5)))

	require.Equal(t, model.French, next(t, langs))
	require.Equal(t, model.Imperial, next(t, units))
	require.Equal(t, model.NewLocation(5, 5), next(t, locs))

	// A restarted subscription sees only the current value.
	require.Equal(t, model.French, next(t, s.Language(ctx)))
}

func TestSettings_UnchangedValueNotRepublished(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := open(t, settings.NewMemoryStore())

	units := s.Units(ctx)
	next(t, units)

	require.NoError(t, s.SetUnits(ctx, model.Metric))
	require.NoError(t, s.SetUnits(ctx, model.Imperial))
	require.Equal(t, model.Imperial, next(t, units))
}

func TestSettings_PersistAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	backends := map[string]func() settings.Store{
		"file": func() settings.Store { return settings.NewFileStore(filepath.Join(dir, "files")) },
		"sqlite": func() settings.Store {
			s, err := settings.OpenSQLite(filepath.Join(dir, "settings.db"))
			require.NoError(t, err)
			return s
		},
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			first, err := settings.Open(ctx, newStore(), nil)
			require.NoError(t, err)
			require.NoError(t, first.SetLanguage(ctx, model.German))
			require.NoError(t, first.SetUnits(ctx, model.Imperial))
			require.NoError(t, first.SetDefaultLocation(ctx, model.NewLocation(52.52, 13.405)))
			require.NoError(t, first.Close())

			second, err := settings.Open(ctx, newStore(), nil)
			require.NoError(t, err)
			defer second.Close()

			require.Equal(t, settings.Snapshot{
				Language:        model.German,
				Units:           model.Imperial,
				DefaultLocation: model.NewLocation(52.52, 13.405),
			}, second.Snapshot())
		})
	}
}

func TestOpen_UnreadableValuesFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	require.NoError(t, store.Save(ctx,
		settings.Entry{Key: settings.KeyLanguage, Value: []byte("klingon!")},
		settings.Entry{Key: settings.KeyUnits, Value: []byte("imperial")},
		settings.Entry{Key: settings.KeyDefaultLocation, Value: []byte("{not json")},
		settings.Entry{Key: "unrelated", Value: []byte("x")},
	))

	s := open(t, store)
	require.Equal(t, settings.Snapshot{
		Language:        model.DefaultLanguage,
		Units:           model.Imperial,
		DefaultLocation: model.NoLocation,
	}, s.Snapshot())
}

type failingStore struct {
	settings.Store
}

func (failingStore) Save(context.Context, ...settings.Entry) error {
	return settings.ErrSaveFailed
}

func TestSettings_SaveFailureNotPublished(t *testing.T) {
	ctx := context.Background()
	s := open(t, failingStore{Store: settings.NewMemoryStore()})

	err := s.SetDefaultLocation(ctx, model.NewLocation(1, 2))
	require.True(t, errors.Is(err, settings.ErrSaveFailed), "error = %v", err)
	require.Equal(t, model.NoLocation, s.Snapshot().DefaultLocation)
}

func TestSettings_Reset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := settings.NewMemoryStore()
	s := open(t, store)

	require.NoError(t, s.SetLanguage(ctx, model.Spanish))
	langs := s.Language(ctx)
	require.Equal(t, model.Spanish, next(t, langs))

	require.NoError(t, s.Reset(ctx))
	require.Equal(t, model.English, next(t, langs))
	require.Equal(t, settings.Defaults(), s.Snapshot())

	keys, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestSettings_CloseEndsSequences(t *testing.T) {
	s, err := settings.Open(context.Background(), settings.NewMemoryStore(), nil)
	require.NoError(t, err)

	langs := s.Language(context.Background())
	next(t, langs)
	require.NoError(t, s.Close())

	select {
	case _, ok := <-langs:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("sequence still open after Close")
	}
}
