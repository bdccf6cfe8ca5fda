package auth

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bidworks/internal/domain"
)

// UserLookup is the read-only contract the resolver needs from the user
// store. Lookup failures of any sort are treated as an unknown user.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Resolver turns a raw token string into a full user identity. It owns no
// mutable state; every call depends only on the token, the secret and the
// store at lookup time.
type Resolver struct {
	tokens *TokenManager
	users  UserLookup
	logger *zap.Logger
}

// NewResolver constructs a resolver.
func NewResolver(tokens *TokenManager, users UserLookup, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{tokens: tokens, users: users, logger: logger}
}

// Resolve validates the token and loads the account it names. The failure
// order is fixed: missing credential, then cryptographic validity, then kind,
// then account existence, then account state. Transports collapse all of these
// into one generic signal; the order only matters for consistent logs.
func (r *Resolver) Resolve(ctx context.Context, tokenStr string, expected domain.TokenKind) (*domain.User, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	claims, err := r.tokens.Verify(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Kind != expected {
		return nil, ErrWrongTokenKind
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}

	user, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		r.logger.Debug("token subject lookup failed",
			zap.String("subject", claims.Subject), zap.Error(err))
		return nil, ErrUnknownUser
	}

	if !user.Active {
		return nil, ErrInactiveAccount
	}

	return user, nil
}
