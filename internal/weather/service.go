package weather

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"keypad-calculator/internal/observability"
)

var tracer = otel.Tracer("weather")

// ErrNoForecast is returned when the fetch failed and nothing is cached.
var ErrNoForecast = errors.New("no forecast available")

// Source is the remote side of the lookup. *Client implements it.
type Source interface {
	FetchAreas(ctx context.Context) ([]Area, error)
	FetchForecast(ctx context.Context, areaCode string) ([]DayForecast, error)
}

// Service answers area and forecast lookups from the cache, refreshing it
// from the source.
type Service struct {
	source Source
	store  *Store
}

func NewService(source Source, store *Store) *Service {
	return &Service{source: source, store: store}
}

// Areas returns cached areas, populating the cache from the source on first use.
func (s *Service) Areas(ctx context.Context) ([]Area, error) {
	ctx, span := tracer.Start(ctx, "weather.areas")
	defer span.End()

	areas, err := s.store.Areas(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read cached areas")
		return nil, err
	}
	if len(areas) > 0 {
		cacheHitCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "areas")))
		span.SetAttributes(attribute.Bool("weather.cache_hit", true))
		return areas, nil
	}

	fetchCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "areas")))
	fetched, err := s.source.FetchAreas(ctx)
	if err != nil {
		fetchErrorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "areas")))
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch areas")
		return nil, err
	}

	if err := s.store.SaveAreas(ctx, fetched); err != nil {
		return nil, err
	}

	return s.store.Areas(ctx)
}

// Forecast refreshes the cache for areaCode and answers from it. A failed
// fetch is logged and the cached lines are returned instead.
func (s *Service) Forecast(ctx context.Context, areaCode string) ([]DayForecast, error) {
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "weather.forecast",
		trace.WithAttributes(attribute.String("weather.area_code", areaCode)),
	)
	defer span.End()

	attrs := metric.WithAttributes(attribute.String("kind", "forecast"))
	fetchCounter.Add(ctx, 1, attrs)

	fetched, fetchErr := s.source.FetchForecast(ctx, areaCode)
	if fetchErr != nil {
		fetchErrorCounter.Add(ctx, 1, attrs)
		span.RecordError(fetchErr)
		logger.Warn("forecast fetch failed, answering from cache",
			zap.String("area_code", areaCode),
			zap.Error(fetchErr),
		)
	} else if err := s.store.SaveForecast(ctx, areaCode, fetched); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save forecast")
		return nil, err
	}

	days, err := s.store.Forecast(ctx, areaCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read cached forecast")
		return nil, err
	}

	if fetchErr != nil {
		if len(days) == 0 {
			span.SetStatus(codes.Error, "no forecast")
			return nil, fmt.Errorf("%w for %s: %w", ErrNoForecast, areaCode, fetchErr)
		}
		cacheHitCounter.Add(ctx, 1, attrs)
	}

	span.SetAttributes(attribute.Int("weather.days", len(days)))
	return days, nil
}
