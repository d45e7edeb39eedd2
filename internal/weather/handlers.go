package weather

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Areas handles GET /weather/areas.
func (h *Handler) Areas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	areas, err := h.svc.Areas(ctx)
	if err != nil {
		observability.LoggerWithTrace(ctx).Error("listing areas failed",
			zap.Error(err),
			zap.String("request_id", observability.RequestIDFromContext(ctx)),
		)
		handlers.WriteError(w, http.StatusBadGateway, "areas unavailable")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, AreasResponse{Centers: GroupByCenter(areas)})
}

// Forecast handles GET /weather/forecast/{code}. The optional day query
// parameter selects a single line: 0 today, 1 tomorrow, 2 the day after.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	days, err := h.svc.Forecast(ctx, code)
	if err != nil {
		observability.LoggerWithTrace(ctx).Error("forecast lookup failed",
			zap.String("area_code", code),
			zap.Error(err),
			zap.String("request_id", observability.RequestIDFromContext(ctx)),
		)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNoForecast) {
			status = http.StatusBadGateway
		}
		handlers.WriteError(w, status, "forecast unavailable")
		return
	}

	if raw := r.URL.Query().Get("day"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 0 {
			handlers.WriteError(w, http.StatusBadRequest, "invalid day")
			return
		}
		if day >= len(days) {
			handlers.WriteError(w, http.StatusNotFound, "no forecast for that day")
			return
		}
		days = days[day : day+1]
	}

	if days == nil {
		days = []DayForecast{}
	}

	handlers.WriteJSON(w, http.StatusOK, ForecastResponse{AreaCode: code, Days: days})
}
