package auth

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"

	"github.com/spec-kit/bidworks/internal/domain"
	"github.com/spec-kit/bidworks/internal/observability"
)

// WSCloseUnauthorized is the application close code sent when handshake
// authentication fails, before any message exchange.
const WSCloseUnauthorized = 4001

const wsCloseWriteTimeout = 5 * time.Second

// WSTokenSource is the slice of the websocket connection the adapter reads:
// the token travels in the `token` query parameter or, failing that, in the
// `access_token` cookie set by the HTTP login flow.
type WSTokenSource interface {
	Query(key string, defaultValue ...string) string
	Cookies(key string, defaultValue ...string) string
}

// WSToken extracts the raw token from a websocket handshake.
func WSToken(src WSTokenSource) string {
	if token := src.Query("token"); token != "" {
		return token
	}
	return src.Cookies("access_token")
}

// WSAuthenticator is the WebSocket transport adapter.
type WSAuthenticator struct {
	resolver *Resolver
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewWSAuthenticator constructs the adapter.
func NewWSAuthenticator(resolver *Resolver, metrics *observability.Metrics, logger *zap.Logger) *WSAuthenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSAuthenticator{resolver: resolver, metrics: metrics, logger: logger}
}

// Authenticate resolves the identity behind an accepted websocket connection.
// On any failure it closes the socket with code 4001 and a readable reason,
// and still returns the typed failure so the caller logs it uniformly with
// the HTTP path.
func (a *WSAuthenticator) Authenticate(ctx context.Context, conn *websocket.Conn) (*domain.User, error) {
	user, err := a.resolver.Resolve(ctx, WSToken(conn), domain.TokenKindAccess)
	if err != nil {
		a.logger.Info("websocket authentication rejected", zap.String("reason", err.Error()))
		a.metrics.RecordAuthDecision("websocket", err.Error())
		closeMsg := websocket.FormatCloseMessage(WSCloseUnauthorized, err.Error())
		deadline := time.Now().Add(wsCloseWriteTimeout)
		_ = conn.WriteControl(websocket.CloseMessage, closeMsg, deadline)
		_ = conn.Close()
		return nil, err
	}

	a.metrics.RecordAuthDecision("websocket", "ok")
	return user, nil
}
