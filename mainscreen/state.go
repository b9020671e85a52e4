// Package mainscreen holds the state of the gating screen: location
// permission, location settings and the resolved default location.
package mainscreen

import (
	"fmt"

	"github.com/belinwu/WeatherApp/model"
)

// State is one of Loading, Success or Error.
type State interface {
	mainState()
}

// Loading is the initial state.
type Loading struct{}

// Success carries the gating checks resolved so far. DefaultLocation is
// model.NoLocation until a location has been received.
type Success struct {
	PermissionGranted      bool
	LocationSettingEnabled bool
	DefaultLocation        model.Location
}

// Error is entered after an exception is logged. It carries no payload.
type Error struct{}

func (Loading) mainState() {}
func (Success) mainState() {}
func (Error) mainState()   {}

func (Loading) String() string { return "Loading" }
func (Error) String() string   { return "Error" }

func (s Success) String() string {
	return fmt.Sprintf("Success(permission=%t, locationSettings=%t, location=%s)",
		s.PermissionGranted, s.LocationSettingEnabled, s.DefaultLocation)
}

// toSuccess promotes state for a patch. A Success is kept as is; any other
// state becomes a fresh Success with every field at its default.
func toSuccess(state State) Success {
	if s, ok := state.(Success); ok {
		return s
	}
	return Success{DefaultLocation: model.NoLocation}
}
