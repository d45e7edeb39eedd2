package weather

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the weather endpoints under /weather.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/weather", func(r chi.Router) {
		r.Get("/areas", h.Areas)
		r.Get("/forecast/{code}", h.Forecast)
	})
}
