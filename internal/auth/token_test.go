package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bidworks/internal/domain"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager("test-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestIssueAccessRoundtrip(t *testing.T) {
	tm := newTestTokenManager()
	subject := uuid.NewString()

	tokenStr, err := tm.IssueAccess(subject, 0)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := tm.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenKindAccess, claims.Kind)
	assert.Equal(t, subject, claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueRefreshRoundtrip(t *testing.T) {
	tm := newTestTokenManager()
	subject := uuid.NewString()

	tokenStr, err := tm.IssueRefresh(subject, 0)
	require.NoError(t, err)

	claims, err := tm.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenKindRefresh, claims.Kind)
	assert.Equal(t, subject, claims.Subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := newTestTokenManager()

	tokenStr, err := tm.IssueAccess(uuid.NewString(), time.Millisecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = tm.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	tokenStr, err := newTestTokenManager().IssueAccess(uuid.NewString(), 0)
	require.NoError(t, err)

	other := NewTokenManager("another-secret", 30*time.Minute, 7*24*time.Hour)
	_, err = other.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	tm := newTestTokenManager()

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestRefreshTokensGetUniqueIDs(t *testing.T) {
	tm := newTestTokenManager()
	subject := uuid.NewString()

	first, err := tm.IssueRefresh(subject, 0)
	require.NoError(t, err)
	second, err := tm.IssueRefresh(subject, 0)
	require.NoError(t, err)

	firstClaims, err := tm.Verify(first)
	require.NoError(t, err)
	secondClaims, err := tm.Verify(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
