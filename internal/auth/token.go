package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/bidworks/internal/domain"
)

// TokenManager issues and verifies signed identity tokens. It holds the
// server secret and the default lifetimes; both are fixed at construction.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Claims describes the JWT payload. Kind ties a token to the operations that
// may consume it; ID (jti) keys the refresh rotation denylist.
type Claims struct {
	Kind domain.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// IssueAccess signs a new access token for the subject. A zero ttl means the
// configured default.
func (tm *TokenManager) IssueAccess(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = tm.accessTTL
	}
	return tm.issue(subject, domain.TokenKindAccess, ttl)
}

// IssueRefresh signs a new refresh token for the subject.
func (tm *TokenManager) IssueRefresh(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = tm.refreshTTL
	}
	return tm.issue(subject, domain.TokenKindRefresh, ttl)
}

func (tm *TokenManager) issue(subject string, kind domain.TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify checks signature integrity and expiry and returns the claims. Every
// failure mode collapses into ErrInvalidToken: distinguishing a bad signature
// from an expired token leaks information the caller has no use for.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
