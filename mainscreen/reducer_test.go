package mainscreen

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/belinwu/WeatherApp/crashlog"
	"github.com/belinwu/WeatherApp/model"
	"github.com/belinwu/WeatherApp/store"
	"github.com/belinwu/WeatherApp/stream"
)

type nopSaver struct{}

func (nopSaver) SetDefaultLocation(context.Context, model.Location) error { return nil }

func testReducer() *reducer {
	return &reducer{
		saver:     nopSaver{},
		crash:     crashlog.LoggerFunc(func(error) {}),
		hasUpdate: stream.NewCell(false),
		logger:    slog.New(slog.DiscardHandler),
	}
}

// allIntents holds one value of every Intent variant.
func allIntents() []Intent {
	return []Intent{
		GrantPermission{Granted: true},
		CheckLocationSettings{Enabled: true},
		ReceiveLocation{Latitude: 1, Longitude: 2},
		LogException{Err: errors.New("x")},
		RequestAppUpdate{},
	}
}

func allStates() []State {
	return []State{
		Loading{},
		Success{PermissionGranted: true, LocationSettingEnabled: true, DefaultLocation: model.NewLocation(3, 4)},
		Error{},
	}
}

func TestReduce_HandlesEveryIntentInEveryState(t *testing.T) {
	r := testReducer()
	for _, state := range allStates() {
		for _, intent := range allIntents() {
			got := r.reduce(state, intent)
			if got.Err != nil {
				t.Errorf("reduce(%v, %v) error = %v", state, intent, got.Err)
			}
			if got.Commit {
				switch got.State.(type) {
				case Loading, Success, Error:
				default:
					t.Errorf("reduce(%v, %v) committed %T", state, intent, got.State)
				}
			}
		}
	}
}

type bogusIntent struct{}

func (bogusIntent) mainIntent() {}

func TestReduce_UnknownIntentIsViolation(t *testing.T) {
	got := testReducer().reduce(Loading{}, bogusIntent{})
	if !errors.Is(got.Err, store.ErrUnknownIntent) {
		t.Errorf("reduce(bogus) error = %v, want ErrUnknownIntent", got.Err)
	}
	if got.Commit {
		t.Error("reduce(bogus) committed a state")
	}
}

func TestReduce_Promotion(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		intent Intent
		want   State
	}{
		{
			name:   "grant from loading",
			state:  Loading{},
			intent: GrantPermission{Granted: true},
			want:   Success{PermissionGranted: true, DefaultLocation: model.NoLocation},
		},
		{
			name:   "settings patch keeps permission",
			state:  Success{PermissionGranted: true},
			intent: CheckLocationSettings{Enabled: true},
			want:   Success{PermissionGranted: true, LocationSettingEnabled: true},
		},
		{
			name:   "error resets to defaults",
			state:  Error{},
			intent: CheckLocationSettings{Enabled: true},
			want:   Success{LocationSettingEnabled: true},
		},
		{
			name:   "location patch keeps checks",
			state:  Success{PermissionGranted: true, LocationSettingEnabled: true},
			intent: ReceiveLocation{Latitude: 10, Longitude: 20},
			want:   Success{PermissionGranted: true, LocationSettingEnabled: true, DefaultLocation: model.NewLocation(10, 20)},
		},
		{
			name:   "permission revoked",
			state:  Success{PermissionGranted: true, DefaultLocation: model.NewLocation(1, 1)},
			intent: GrantPermission{Granted: false},
			want:   Success{DefaultLocation: model.NewLocation(1, 1)},
		},
		{
			name:   "exception from success",
			state:  Success{PermissionGranted: true},
			intent: LogException{Err: errors.New("boom")},
			want:   Error{},
		},
	}

	r := testReducer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.reduce(tt.state, tt.intent)
			if !got.Commit {
				t.Fatal("reduce() did not commit")
			}
			if diff := cmp.Diff(tt.want, got.State); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_RequestAppUpdateLeavesState(t *testing.T) {
	r := testReducer()
	got := r.reduce(Success{PermissionGranted: true}, RequestAppUpdate{})

	if got.Commit {
		t.Error("RequestAppUpdate committed a state")
	}
	if len(got.Effects) != 1 {
		t.Fatalf("len(Effects) = %d, want 1", len(got.Effects))
	}
	if _, follow := got.Effects[0](context.Background()); follow {
		t.Error("RequestAppUpdate effect produced a follow-up intent")
	}
	if !r.hasUpdate.Value() {
		t.Error("update flag not set by effect")
	}
}

func TestReduce_Idempotent(t *testing.T) {
	r := testReducer()
	for _, state := range allStates() {
		for _, intent := range allIntents() {
			first := r.reduce(state, intent)
			if !first.Commit {
				continue
			}
			second := r.reduce(first.State, intent)
			if diff := cmp.Diff(first.State, second.State); diff != "" {
				t.Errorf("reduce(%v) twice differs (-first +second):\n%s", intent, diff)
			}
		}
	}
}
