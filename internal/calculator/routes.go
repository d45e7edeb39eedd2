package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/calculate", h.Calculate)
		r.Post("/evaluate", h.Evaluate)
		r.Get("/keypad", h.Keypad)
		r.Get("/ws", h.KeypadSocket)

		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/press", h.PressSession)
		})
	})
}
