package mainscreen

import "fmt"

// Intent is a request to change the main screen state.
type Intent interface {
	mainIntent()
}

// GrantPermission reports the outcome of the location permission request.
type GrantPermission struct {
	Granted bool
}

// CheckLocationSettings reports whether device location is switched on.
type CheckLocationSettings struct {
	Enabled bool
}

// ReceiveLocation delivers a resolved location. It is persisted as the
// default location.
type ReceiveLocation struct {
	Latitude  float64
	Longitude float64
}

// LogException forwards an uncaught error from the host.
type LogException struct {
	Err error
}

// RequestAppUpdate flags that an update is available.
type RequestAppUpdate struct{}

func (GrantPermission) mainIntent()       {}
func (CheckLocationSettings) mainIntent() {}
func (ReceiveLocation) mainIntent()       {}
func (LogException) mainIntent()          {}
func (RequestAppUpdate) mainIntent()      {}

func (i GrantPermission) String() string {
	return fmt.Sprintf("GrantPermission(%t)", i.Granted)
}

func (i CheckLocationSettings) String() string {
	return fmt.Sprintf("CheckLocationSettings(%t)", i.Enabled)
}

func (i ReceiveLocation) String() string {
	return fmt.Sprintf("ReceiveLocation(%.4f, %.4f)", i.Latitude, i.Longitude)
}

func (i LogException) String() string {
	return fmt.Sprintf("LogException(%v)", i.Err)
}

func (RequestAppUpdate) String() string { return "RequestAppUpdate" }
