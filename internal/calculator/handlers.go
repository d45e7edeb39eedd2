package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints. Its zero value is not usable;
// construct it with NewHandler.
type Handler struct {
	sessions *Sessions
	upgrader websocket.Upgrader
}

func NewHandler(sessions *Sessions) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Handler — single fold
// ---------------------------------------------------------------------------

// Calculate handles POST /calculator/calculate: one fold of b into a.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if !req.Operator.Valid() {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "unknown operator", fmt.Errorf("operator %q", req.Operator), http.StatusBadRequest, w)
		return
	}

	if math.IsNaN(req.A) || math.IsInf(req.A, 0) || math.IsNaN(req.B) || math.IsInf(req.B, 0) {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "invalid numeric input", fmt.Errorf("a=%g b=%g", req.A, req.B), http.StatusBadRequest, w)
		return
	}

	op := string(req.Operator)
	span.SetAttributes(
		attribute.String("calculator.operator", op),
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	start := time.Now()
	result, err := apply(req.A, req.B, req.Operator)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", op))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	resp := CalculateResponse{
		Operator: req.Operator,
		A:        req.A,
		B:        req.B,
	}

	if err != nil {
		// A failed fold is a normal calculator outcome: the display shows Error.
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		errorCounter.Add(ctx, 1, attrs)

		logger.Warn("calculator fold failed",
			zap.String("operator", op),
			zap.Float64("a", req.A),
			zap.Float64("b", req.B),
			zap.Error(err),
			zap.String("request_id", requestID),
		)

		resp.Display = ErrorDisplay
		resp.Error = err.Error()
		handlers.WriteJSON(w, http.StatusOK, resp)
		return
	}

	resp.Display = FormatNumber(result)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("display", resp.Display),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.display", resp.Display))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator fold completed",
		zap.String("operator", op),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.String("display", resp.Display),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// Handler — token sequence (nested spans)
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate: runs a fresh calculator over a
// sequence of button presses, creating a child span for every press.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Tokens) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "no tokens provided", fmt.Errorf("tokens array is empty"), http.StatusBadRequest, w)
		return
	}

	// Classify everything up front so a bad token rejects the whole request.
	tokens := make([]Token, 0, len(req.Tokens))
	for i, label := range req.Tokens {
		tok, err := ParseToken(label)
		if err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err.Error(), fmt.Errorf("token %d: %w", i, err), http.StatusBadRequest, w)
			return
		}
		tokens = append(tokens, tok)
	}

	span.SetAttributes(attribute.Int("evaluate.tokens_count", len(tokens)))

	calc := New()
	steps := make([]EvaluateStep, 0, len(tokens))

	for i, tok := range tokens {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.evaluate.step.%d.%s", i, tok.Kind),
			trace.WithAttributes(
				attribute.Int("evaluate.step.index", i),
				attribute.String("evaluate.step.token", tok.Label),
				attribute.String("evaluate.step.display_before", calc.CurrentDisplay()),
			),
		)

		stepStart := time.Now()
		display := calc.Press(tok)
		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		attrs := metric.WithAttributes(attribute.String("operation", tok.Kind.String()))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.SetAttributes(attribute.String("evaluate.step.display", display))
		if display == ErrorDisplay {
			stepSpan.SetStatus(codes.Error, "display shows Error")
			errorCounter.Add(ctx, 1, attrs)
		} else {
			stepSpan.SetStatus(codes.Ok, "")
		}
		stepSpan.End()

		logger.Debug("token evaluated",
			zap.Int("step", i),
			zap.String("token", tok.Label),
			zap.String("display", display),
			zap.Float64("duration_ms", stepElapsed),
		)

		steps = append(steps, EvaluateStep{
			Token:   tok.Label,
			Kind:    tok.Kind.String(),
			Display: display,
		})
	}

	final := calc.CurrentDisplay()
	recordDisplay(ctx, final, "evaluate")

	span.AddEvent("evaluate.complete", trace.WithAttributes(
		attribute.String("display", final),
		attribute.Int("total_steps", len(tokens)),
	))
	span.SetAttributes(attribute.String("evaluate.display", final))
	span.SetStatus(codes.Ok, "")

	logger.Info("token sequence evaluated",
		zap.Int("tokens", len(tokens)),
		zap.String("display", final),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Steps:   steps,
		Display: final,
	})
}

// recordDisplay feeds the last-result gauge when the display holds a number.
func recordDisplay(ctx context.Context, display, operation string) {
	x, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return
	}
	resultGauge.Record(ctx, x, metric.WithAttributes(attribute.String("operation", operation)))
}

// ---------------------------------------------------------------------------
// Handlers — sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap := h.sessions.Create()
	sessionsActive.Add(ctx, 1)

	observability.LoggerWithTrace(ctx).Info("calculator session created",
		zap.String("session_id", snap.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, snap)
}

// GetSession handles GET /calculator/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	handlers.WriteJSON(w, http.StatusOK, snap)
}

// PressSession handles POST /calculator/sessions/{id}/press.
func (h *Handler) PressSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.press",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	tok, err := ParseToken(req.Token)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	snap, err := h.sessions.Press(id, tok)
	if err != nil {
		status, msg := http.StatusInternalServerError, "press failed"
		if errors.Is(err, ErrSessionNotFound) {
			status, msg = http.StatusNotFound, "session not found"
		}
		observability.RecordError(ctx, span, logger, errorCounter, "press", msg, err, status, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", tok.Kind.String()))
	opsCounter.Add(ctx, 1, attrs)
	if snap.Display == ErrorDisplay {
		errorCounter.Add(ctx, 1, attrs)
	}
	recordDisplay(ctx, snap.Display, "press")

	span.SetAttributes(
		attribute.String("calculator.token", tok.Label),
		attribute.String("calculator.display", snap.Display),
	)
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, snap)
}

// DeleteSession handles DELETE /calculator/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		handlers.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	sessionsActive.Add(r.Context(), -1)
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handler — keypad descriptors
// ---------------------------------------------------------------------------

// Keypad handles GET /calculator/keypad?scientific=true.
func (h *Handler) Keypad(w http.ResponseWriter, r *http.Request) {
	scientific, _ := strconv.ParseBool(r.URL.Query().Get("scientific"))
	handlers.WriteJSON(w, http.StatusOK, KeypadResponse{
		Scientific: scientific,
		Rows:       Layout(scientific),
	})
}
