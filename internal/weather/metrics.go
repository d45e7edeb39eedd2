package weather

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	fetchCounter      metric.Int64Counter
	fetchErrorCounter metric.Int64Counter
	cacheHitCounter   metric.Int64Counter
)

// InitMetrics registers the weather instruments. Call once at startup.
func InitMetrics() error {
	meter := otel.Meter("weather")

	var err error

	fetchCounter, err = meter.Int64Counter("weather.fetch.total",
		metric.WithDescription("Upstream fetches of areas and forecasts"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating fetch counter: %w", err)
	}

	fetchErrorCounter, err = meter.Int64Counter("weather.fetch.errors.total",
		metric.WithDescription("Failed upstream fetches"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating fetch error counter: %w", err)
	}

	cacheHitCounter, err = meter.Int64Counter("weather.cache.hits.total",
		metric.WithDescription("Answers served from the local cache without a fetch"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return fmt.Errorf("creating cache hit counter: %w", err)
	}

	return nil
}
