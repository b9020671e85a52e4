// Package homescreen holds the weather screen state and keeps it in step
// with the user's settings: every change of language, units or default
// location patches the state and triggers a new weather fetch.
package homescreen

import (
	"fmt"

	"github.com/belinwu/WeatherApp/messages"
	"github.com/belinwu/WeatherApp/model"
)

// State is one of Loading, Success or Error.
type State interface {
	homeState()
}

// Loading is the initial state, held until the settings first arrive.
type Loading struct{}

// Success is everything the weather screen renders.
type Success struct {
	Units           model.Units
	DefaultLocation model.Location
	LocationName    string
	Language        model.Language
	Weather         model.Weather
}

// Error replaces all data after a failed fetch.
type Error struct {
	MessageKey messages.Key
}

func (Loading) homeState() {}
func (Success) homeState() {}
func (Error) homeState()   {}

func (Loading) String() string { return "Loading" }

func (e Error) String() string {
	return fmt.Sprintf("Error(%s)", e.MessageKey)
}

func (s Success) String() string {
	return fmt.Sprintf("Success(language=%s, units=%s, location=%s, name=%q, weather=%t)",
		s.Language, s.Units, s.DefaultLocation, s.LocationName, !s.Weather.IsEmpty())
}

// toSuccess promotes state for a patch. A Success is kept; any other state
// becomes a Success with defaults and no weather.
func toSuccess(state State) Success {
	if s, ok := state.(Success); ok {
		return s
	}
	return Success{
		Units:           model.DefaultUnits,
		DefaultLocation: model.NoLocation,
		Language:        model.DefaultLanguage,
	}
}
