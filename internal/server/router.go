package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/weather"
)

// Services are the domain handlers mounted by NewRouter. A nil field leaves
// that domain unmounted.
type Services struct {
	Calculator *calculator.Handler
	Weather    *weather.Handler
}

func NewRouter(svc Services) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	if svc.Calculator != nil {
		calculator.RegisterRoutes(r, svc.Calculator)
	}
	if svc.Weather != nil {
		weather.RegisterRoutes(r, svc.Weather)
	}

	return r
}
