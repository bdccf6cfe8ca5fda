package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bidworks/internal/auth"
)

// WSHandler serves the authenticated realtime channel. The channel itself is
// a thin echo loop; the actual assistant backend is an external collaborator
// and out of scope here. What matters is the verified-identity handshake.
type WSHandler struct {
	authn  *auth.WSAuthenticator
	logger *zap.Logger
}

// NewWSHandler constructs handler.
func NewWSHandler(authn *auth.WSAuthenticator, logger *zap.Logger) *WSHandler {
	return &WSHandler{authn: authn, logger: logger}
}

// RequireUpgrade rejects plain HTTP requests to websocket routes.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

type wsEnvelope struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// Assistant handles GET /ws/assistant. Authentication runs first; a rejected
// socket is closed with code 4001 before any message exchange.
func (h *WSHandler) Assistant() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close() //nolint:errcheck

		user, err := h.authn.Authenticate(context.Background(), conn)
		if err != nil {
			return
		}

		h.logger.Info("assistant channel opened", zap.String("user_id", user.ID))

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			reply, err := json.Marshal(wsEnvelope{From: "assistant", Message: string(msg)})
			if err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}
		}
	})
}
