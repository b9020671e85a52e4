package model

import "time"

// Weather is a snapshot returned by the weather source. Every part may be
// absent before the first successful fetch: Current is nil and the forecasts
// are nil slices.
type Weather struct {
	Current *Measurement `json:"current,omitempty" yaml:"current,omitempty"`
	Today   Forecast     `json:"today,omitempty" yaml:"today,omitempty"`
	Week    Forecast     `json:"week,omitempty" yaml:"week,omitempty"`
}

// Measurement is the observed weather at one location and instant.
type Measurement struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	FeelsLike   float64 `json:"feels_like" yaml:"feels_like"`
	Humidity    int     `json:"humidity" yaml:"humidity"`
	Pressure    float64 `json:"pressure" yaml:"pressure"`
	WindSpeed   float64 `json:"wind_speed" yaml:"wind_speed"`
	Description string  `json:"description" yaml:"description"`
	Icon        string  `json:"icon" yaml:"icon"`
}

// Forecast is an ordered list of forecast periods.
type Forecast []Period

// Period is one hourly or daily forecast entry.
type Period struct {
	Time        time.Time `json:"time" yaml:"time"`
	Temperature float64   `json:"temperature" yaml:"temperature"`
	Min         float64   `json:"min" yaml:"min"`
	Max         float64   `json:"max" yaml:"max"`
	Description string    `json:"description" yaml:"description"`
	Icon        string    `json:"icon" yaml:"icon"`
}

// IsEmpty reports whether w carries no data at all.
func (w Weather) IsEmpty() bool {
	return w.Current == nil && w.Today == nil && w.Week == nil
}
