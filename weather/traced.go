package weather

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/belinwu/WeatherApp/model"
)

const tracerName = "github.com/belinwu/WeatherApp/weather"

type traced struct {
	next   Repository
	tracer trace.Tracer
}

// Traced wraps next so every fetch runs in a span. A nil provider uses the
// global one.
func Traced(next Repository, provider trace.TracerProvider) Repository {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &traced{next: next, tracer: provider.Tracer(tracerName)}
}

func (t *traced) FetchWeatherData(ctx context.Context, language string, location model.Location, units string) model.Result[*model.Weather] {
	ctx, span := t.tracer.Start(ctx, "weather.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("weather.language", language),
			attribute.String("weather.units", units),
			attribute.Float64("weather.latitude", location.Latitude),
			attribute.Float64("weather.longitude", location.Longitude),
		),
	)
	defer span.End()

	result := t.next.FetchWeatherData(ctx, language, location, units)
	if kind, failed := result.Kind(); failed {
		span.SetAttributes(attribute.String("weather.error_kind", kind.String()))
		span.SetStatus(codes.Error, kind.String())
	}
	return result
}
