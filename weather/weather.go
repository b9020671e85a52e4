// Package weather provides the weather source consumed by the home screen.
// The source reports failures as data: FetchWeatherData always returns a
// Result and never an error.
package weather

import (
	"context"

	"github.com/belinwu/WeatherApp/model"
)

// Repository fetches weather for a location. language and units are the
// wire values of model.Language and model.Units.
type Repository interface {
	FetchWeatherData(ctx context.Context, language string, location model.Location, units string) model.Result[*model.Weather]
}

// RepositoryFunc adapts a function to Repository.
type RepositoryFunc func(ctx context.Context, language string, location model.Location, units string) model.Result[*model.Weather]

func (f RepositoryFunc) FetchWeatherData(ctx context.Context, language string, location model.Location, units string) model.Result[*model.Weather] {
	return f(ctx, language, location, units)
}
