// Package model defines the immutable value types shared by every screen:
// locations, measurement units, supported languages, weather snapshots and
// the Result envelope returned by asynchronous fetches.
package model

import "fmt"

// Location is a geographic coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NoLocation is the sentinel used before any location has been resolved.
var NoLocation = Location{}

// NewLocation returns a Location for the given coordinates.
func NewLocation(latitude, longitude float64) Location {
	return Location{Latitude: latitude, Longitude: longitude}
}

// IsZero reports whether l is the NoLocation sentinel.
func (l Location) IsZero() bool {
	return l == NoLocation
}

func (l Location) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", l.Latitude, l.Longitude)
}
