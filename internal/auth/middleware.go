package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bidworks/internal/domain"
	"github.com/spec-kit/bidworks/internal/events"
	"github.com/spec-kit/bidworks/internal/observability"
	apperrors "github.com/spec-kit/bidworks/pkg/util"
)

const identityKey = "auth_identity"

// Middleware is the HTTP transport adapter: it extracts the bearer token,
// resolves the identity and stores it in the request context. Only ACCESS
// tokens are accepted here; the refresh flow has its own handler.
type Middleware struct {
	resolver   *Resolver
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(resolver *Resolver, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{resolver: resolver, dispatcher: dispatcher, metrics: metrics, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	user, err := m.resolver.Resolve(c.UserContext(), BearerToken(c), domain.TokenKindAccess)
	if err != nil {
		m.logger.Info("authentication rejected",
			zap.String("path", c.Path()),
			zap.String("reason", err.Error()))
		m.metrics.RecordAuthDecision("http", err.Error())
		return apperrors.NewUnauthenticated(err)
	}

	m.metrics.RecordAuthDecision("http", "ok")
	c.Locals(identityKey, user)
	return c.Next()
}

// RequireRole guards a route with a minimum role. It runs after Handle and
// returns 403 without a WWW-Authenticate header: the caller is known, just
// not allowed.
func (m *Middleware) RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated(ErrMissingToken)
		}
		if err := Authorize(user, required); err != nil {
			if m.dispatcher != nil {
				_ = m.dispatcher.Publish(c.UserContext(), events.Event{
					ID:        uuid.NewString(),
					Type:      events.EventAccessDenied,
					UserID:    user.ID,
					Timestamp: time.Now(),
					Payload: events.AccessDeniedPayload{
						Path:         c.Path(),
						RequiredRole: string(required),
					},
				})
			}
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// BearerToken extracts the token from the Authorization header. Absent or
// malformed headers yield the empty string, which the resolver maps to
// ErrMissingToken.
func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// IdentityFromContext retrieves the authenticated user.
func IdentityFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
