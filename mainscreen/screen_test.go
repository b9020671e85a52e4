package mainscreen_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/belinwu/WeatherApp/crashlog"
	"github.com/belinwu/WeatherApp/mainscreen"
	"github.com/belinwu/WeatherApp/model"
	"github.com/belinwu/WeatherApp/observability"
	"github.com/belinwu/WeatherApp/settings"
	"github.com/belinwu/WeatherApp/store"
)

type recordingSaver struct {
	mu    sync.Mutex
	saved []model.Location
	err   error
}

func (r *recordingSaver) SetDefaultLocation(_ context.Context, loc model.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, loc)
	return r.err
}

func (r *recordingSaver) calls() []model.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Location(nil), r.saved...)
}

type recordingCrash struct {
	mu     sync.Mutex
	logged []error
}

func (r *recordingCrash) LogException(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logged = append(r.logged, err)
}

func (r *recordingCrash) calls() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.logged...)
}

func testConfig() store.Config {
	return store.Config{
		Name:   "main",
		Logger: slog.New(slog.DiscardHandler),
		Events: observability.NoOpObserver{},
	}
}

func newScreen(t *testing.T, saver mainscreen.LocationSaver, crash crashlog.Logger) *mainscreen.Screen {
	t.Helper()
	s := mainscreen.New(context.Background(), testConfig(), saver, crash)
	t.Cleanup(func() { _ = s.Close(time.Second) })
	return s
}

func eventually(t *testing.T, s *mainscreen.Screen, want mainscreen.State) {
	t.Helper()
	require.Eventually(t, func() bool { return s.State() == want }, time.Second, 5*time.Millisecond,
		"state = %v, want %v", s.State(), want)
}

func TestScreen_StartsLoading(t *testing.T) {
	s := newScreen(t, &recordingSaver{}, &recordingCrash{})
	require.Equal(t, mainscreen.State(mainscreen.Loading{}), s.State())
	require.False(t, s.AppUpdateAvailable())
}

func TestScreen_GrantPermissionFromLoading(t *testing.T) {
	s := newScreen(t, &recordingSaver{}, &recordingCrash{})

	s.Dispatch(mainscreen.GrantPermission{Granted: true})
	eventually(t, s, mainscreen.Success{
		PermissionGranted:      true,
		LocationSettingEnabled: false,
		DefaultLocation:        model.NoLocation,
	})
}

func TestScreen_SuccessivePatchesPreserveFields(t *testing.T) {
	s := newScreen(t, &recordingSaver{}, &recordingCrash{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	states := s.Subscribe(ctx)
	require.Equal(t, mainscreen.State(mainscreen.Loading{}), <-states)

	s.Dispatch(mainscreen.GrantPermission{Granted: true})
	s.Dispatch(mainscreen.CheckLocationSettings{Enabled: true})

	require.Equal(t, mainscreen.State(mainscreen.Success{PermissionGranted: true}), <-states)
	require.Equal(t, mainscreen.State(mainscreen.Success{PermissionGranted: true, LocationSettingEnabled: true}), <-states)
}

func TestScreen_LogExceptionLogsOnce(t *testing.T) {
	crash := &recordingCrash{}
	s := newScreen(t, &recordingSaver{}, crash)

	s.Dispatch(mainscreen.GrantPermission{Granted: true})
	boom := errors.New("boom")
	s.Dispatch(mainscreen.LogException{Err: boom})

	eventually(t, s, mainscreen.Error{})
	s.Wait()

	logged := crash.calls()
	require.Len(t, logged, 1)
	require.Same(t, boom, logged[0])
}

func TestScreen_ReceiveLocationPersistsOnce(t *testing.T) {
	saver := &recordingSaver{}
	s := newScreen(t, saver, &recordingCrash{})

	s.Dispatch(mainscreen.GrantPermission{Granted: true})
	s.Dispatch(mainscreen.CheckLocationSettings{Enabled: true})
	s.Dispatch(mainscreen.ReceiveLocation{Latitude: 10.0, Longitude: 20.0})

	eventually(t, s, mainscreen.Success{
		PermissionGranted:      true,
		LocationSettingEnabled: true,
		DefaultLocation:        model.NewLocation(10.0, 20.0),
	})
	s.Wait()

	require.Equal(t, []model.Location{model.NewLocation(10.0, 20.0)}, saver.calls())
}

func TestScreen_SaveFailureDoesNotReachCaller(t *testing.T) {
	saver := &recordingSaver{err: settings.ErrSaveFailed}
	s := newScreen(t, saver, &recordingCrash{})

	s.Dispatch(mainscreen.ReceiveLocation{Latitude: 1, Longitude: 2})
	eventually(t, s, mainscreen.Success{DefaultLocation: model.NewLocation(1, 2)})
	s.Wait()

	require.Len(t, saver.calls(), 1)
	require.Zero(t, s.Metrics().Violations)
}

func TestScreen_RequestAppUpdate(t *testing.T) {
	s := newScreen(t, &recordingSaver{}, &recordingCrash{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := s.HasAppUpdate(ctx)
	require.False(t, <-updates)

	s.Dispatch(mainscreen.GrantPermission{Granted: true})
	s.Dispatch(mainscreen.RequestAppUpdate{})

	select {
	case got := <-updates:
		require.True(t, got)
	case <-time.After(time.Second):
		t.Fatal("update flag not published")
	}
	require.True(t, s.AppUpdateAvailable())
	require.Equal(t, mainscreen.State(mainscreen.Success{PermissionGranted: true}), s.State())

	m := s.Metrics()
	require.Equal(t, int64(1), m.Committed)
	require.Equal(t, int64(1), m.Skipped)
}

func TestScreen_PersistsThroughSettings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, err := settings.Open(ctx, settings.NewMemoryStore(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer repo.Close()

	locations := repo.DefaultLocation(ctx)
	require.Equal(t, model.NoLocation, <-locations)

	s := newScreen(t, repo, &recordingCrash{})
	s.Dispatch(mainscreen.ReceiveLocation{Latitude: 48.8566, Longitude: 2.3522})

	select {
	case got := <-locations:
		require.Equal(t, model.NewLocation(48.8566, 2.3522), got)
	case <-time.After(time.Second):
		t.Fatal("location not published by settings")
	}
}

func TestScreen_CloseDropsLaterIntents(t *testing.T) {
	s := mainscreen.New(context.Background(), testConfig(), &recordingSaver{}, &recordingCrash{})
	updates := s.HasAppUpdate(context.Background())
	<-updates

	require.NoError(t, s.Close(time.Second))
	s.Dispatch(mainscreen.GrantPermission{Granted: true})

	require.Equal(t, mainscreen.State(mainscreen.Loading{}), s.State())
	require.Equal(t, int64(1), s.Metrics().Dropped)

	_, ok := <-updates
	require.False(t, ok)
}
