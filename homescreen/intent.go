package homescreen

import (
	"fmt"

	"github.com/belinwu/WeatherApp/model"
)

// Intent is a request to change the home screen state.
type Intent interface {
	homeIntent()
}

// LoadWeatherData fetches weather for the language, location and units in
// the current state. The state must already be Success.
type LoadWeatherData struct{}

// DisplayCityName sets the name shown for the current location.
type DisplayCityName struct {
	Name string
}

// settingsChanged carries the latest combination of settings.
type settingsChanged struct {
	language model.Language
	units    model.Units
	location model.Location
}

// weatherLoaded carries the outcome of a fetch started by LoadWeatherData.
type weatherLoaded struct {
	result model.Result[*model.Weather]
}

func (LoadWeatherData) homeIntent() {}
func (DisplayCityName) homeIntent() {}
func (settingsChanged) homeIntent() {}
func (weatherLoaded) homeIntent()   {}

func (LoadWeatherData) String() string { return "LoadWeatherData" }

func (i DisplayCityName) String() string {
	return fmt.Sprintf("DisplayCityName(%q)", i.Name)
}

func (i settingsChanged) String() string {
	return fmt.Sprintf("settingsChanged(%s, %s, %s)", i.language, i.units, i.location)
}

func (i weatherLoaded) String() string {
	if kind, failed := i.result.Kind(); failed {
		return fmt.Sprintf("weatherLoaded(failure=%s)", kind)
	}
	return "weatherLoaded(success)"
}
