package calculator

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"keypad-calculator/internal/observability"
)

// KeypadSocket handles GET /calculator/ws. Each connection owns a private
// calculator: the server sends the display on connect and after every
// {"token": ...} message. Messages are handled in arrival order.
func (h *Handler) KeypadSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionsActive.Add(ctx, 1)
	defer sessionsActive.Add(ctx, -1)

	calc := New()
	if err := conn.WriteJSON(DisplayMessage{Display: calc.CurrentDisplay()}); err != nil {
		return
	}

	for {
		var msg PressRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		if msg.Token == ScientificToggle {
			// Display-only toggle; the evaluator never sees it.
			if err := conn.WriteJSON(DisplayMessage{Display: calc.CurrentDisplay()}); err != nil {
				return
			}
			continue
		}

		tok, err := ParseToken(msg.Token)
		if err != nil {
			errorCounter.Add(ctx, 1)
			if err := conn.WriteJSON(DisplayMessage{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		display := calc.Press(tok)
		opsCounter.Add(ctx, 1)
		recordDisplay(ctx, display, "ws")

		if err := conn.WriteJSON(DisplayMessage{Display: display}); err != nil {
			return
		}
	}
}
