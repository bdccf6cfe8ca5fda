package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/bidworks/internal/auth"
	"github.com/spec-kit/bidworks/internal/config"
	"github.com/spec-kit/bidworks/internal/domain"
	"github.com/spec-kit/bidworks/internal/events"
	"github.com/spec-kit/bidworks/internal/repository"
	apperrors "github.com/spec-kit/bidworks/pkg/util"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// two cases stay indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService coordinates registration, login and token refresh.
type AuthService struct {
	users      repository.UserRepository
	denylist   repository.TokenDenylist
	tokens     *auth.TokenManager
	resolver   *auth.Resolver
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Denylist   repository.TokenDenylist
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	denylist := deps.Denylist
	if denylist == nil {
		denylist = repository.NewNoopTokenDenylist()
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	return &AuthService{
		users:      deps.UserRepo,
		denylist:   denylist,
		tokens:     tokens,
		resolver:   auth.NewResolver(tokens, deps.UserRepo, logger),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Register creates a new account with the USER role.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			// concurrent registration slipped past the pre-check and hit the
			// users.email unique index
			return nil, apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, nil)
	return user, nil
}

// Login authenticates by email and password and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.denyLogin(ctx, email, ErrInvalidCredentials)
			return nil, domain.TokenPair{}, ErrInvalidCredentials
		}
		return nil, domain.TokenPair{}, err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	if !ok {
		s.denyLogin(ctx, email, ErrInvalidCredentials)
		return nil, domain.TokenPair{}, ErrInvalidCredentials
	}
	if !user.Active {
		s.denyLogin(ctx, email, auth.ErrInactiveAccount)
		return nil, domain.TokenPair{}, auth.ErrInactiveAccount
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	s.publish(ctx, events.EventLoginSucceeded, user.ID, nil)
	return user, pair, nil
}

// Refresh validates a refresh token, rotates it and returns a brand-new pair.
// The presented token's id lands on the denylist for its remaining lifetime,
// so each rotation retires its predecessor.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, domain.TokenPair, error) {
	user, err := s.resolver.Resolve(ctx, refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, domain.TokenPair{}, auth.ErrInvalidToken
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		// denylist unavailable: log and fall back to TTL-only mitigation
		s.logger.Warn("token denylist check failed", zap.Error(err))
	} else if revoked {
		return nil, domain.TokenPair{}, auth.ErrInvalidToken
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, claims.ID, remaining); err != nil {
		s.logger.Warn("failed to revoke rotated refresh token", zap.Error(err))
	}

	s.publish(ctx, events.EventTokenRefreshed, user.ID, events.TokenRefreshedPayload{RotatedJTI: claims.ID})
	return user, pair, nil
}

// Resolver exposes the identity resolver for the transport adapters.
func (s *AuthService) Resolver() *auth.Resolver {
	return s.resolver
}

// isUniqueViolation reports whether err is a postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *AuthService) issuePair(subject string) (domain.TokenPair, error) {
	access, err := s.tokens.IssueAccess(subject, 0)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefresh(subject, 0)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) denyLogin(ctx context.Context, email string, reason error) {
	s.publish(ctx, events.EventLoginDenied, "", events.LoginDeniedPayload{
		Email:  email,
		Reason: reason.Error(),
	})
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
