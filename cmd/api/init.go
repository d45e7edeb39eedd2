package main

import (
	"context"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/weather"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	if err := weather.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
