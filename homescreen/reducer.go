package homescreen

import (
	"context"
	"fmt"

	"github.com/belinwu/WeatherApp/messages"
	"github.com/belinwu/WeatherApp/store"
	"github.com/belinwu/WeatherApp/weather"
)

type transition = store.Transition[State, Intent]

type reducer struct {
	weather weather.Repository
}

func (r *reducer) reduce(state State, intent Intent) transition {
	switch i := intent.(type) {
	case LoadWeatherData:
		s, ok := state.(Success)
		if !ok {
			return store.Violation[State, Intent](fmt.Errorf("%w: LoadWeatherData in state %v", store.ErrPrecondition, state))
		}
		lang, loc, units := s.Language.Value(), s.DefaultLocation, s.Units.Value()
		return store.Skip[State](store.Follow(func(ctx context.Context) Intent {
			return weatherLoaded{result: r.weather.FetchWeatherData(ctx, lang, loc, units)}
		}))

	case DisplayCityName:
		s := toSuccess(state)
		s.LocationName = i.Name
		return store.Commit[State, Intent](s)

	case settingsChanged:
		s := toSuccess(state)
		s.Language = i.language
		s.Units = i.units
		s.DefaultLocation = i.location
		return store.Commit[State, Intent](s)

	case weatherLoaded:
		return processResult(state, i)

	default:
		return store.Unhandled[State](intent)
	}
}

// processResult applies a fetch outcome. A success replaces the weather
// when it carries one; a failure discards all data.
func processResult(state State, loaded weatherLoaded) transition {
	if kind, failed := loaded.result.Kind(); failed {
		return store.Commit[State, Intent](Error{MessageKey: messages.KeyFor(kind)})
	}

	s := toSuccess(state)
	if w, _ := loaded.result.Data(); w != nil {
		s.Weather = *w
	}
	return store.Commit[State, Intent](s)
}
