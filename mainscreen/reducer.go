package mainscreen

import (
	"context"
	"log/slog"

	"github.com/belinwu/WeatherApp/crashlog"
	"github.com/belinwu/WeatherApp/model"
	"github.com/belinwu/WeatherApp/store"
	"github.com/belinwu/WeatherApp/stream"
)

// LocationSaver persists the default location.
type LocationSaver interface {
	SetDefaultLocation(ctx context.Context, location model.Location) error
}

type transition = store.Transition[State, Intent]

type reducer struct {
	saver     LocationSaver
	crash     crashlog.Logger
	hasUpdate *stream.Cell[bool]
	logger    *slog.Logger
}

func (r *reducer) reduce(state State, intent Intent) transition {
	switch i := intent.(type) {
	case GrantPermission:
		s := toSuccess(state)
		s.PermissionGranted = i.Granted
		return store.Commit[State, Intent](s)

	case CheckLocationSettings:
		s := toSuccess(state)
		s.LocationSettingEnabled = i.Enabled
		return store.Commit[State, Intent](s)

	case ReceiveLocation:
		loc := model.NewLocation(i.Latitude, i.Longitude)
		s := toSuccess(state)
		s.DefaultLocation = loc
		return store.Commit[State](s, store.Fire[Intent](func(ctx context.Context) {
			r.saveLocation(ctx, loc)
		}))

	case LogException:
		err := i.Err
		return store.Commit[State](State(Error{}), store.Fire[Intent](func(context.Context) {
			r.crash.LogException(err)
		}))

	case RequestAppUpdate:
		return store.Skip[State](store.Fire[Intent](func(context.Context) {
			r.hasUpdate.Set(true)
		}))

	default:
		return store.Unhandled[State](intent)
	}
}

func (r *reducer) saveLocation(ctx context.Context, loc model.Location) {
	if err := r.saver.SetDefaultLocation(ctx, loc); err != nil {
		r.logger.WarnContext(
			ctx,
			"failed to save default location",
			slog.String("location", loc.String()),
			slog.String("error", err.Error()),
		)
	}
}
