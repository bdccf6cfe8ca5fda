package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bidworks/internal/domain"
)

type fakeUserLookup struct {
	users map[string]*domain.User
	err   error
}

func (f *fakeUserLookup) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return user, nil
}

func newTestResolver(lookup *fakeUserLookup) (*Resolver, *TokenManager) {
	tm := NewTokenManager("test-secret", 30*time.Minute, 7*24*time.Hour)
	return NewResolver(tm, lookup, zap.NewNop()), tm
}

func TestResolveSuccess(t *testing.T) {
	user := &domain.User{ID: uuid.NewString(), Email: "a@example.com", Role: domain.RoleUser, Active: true}
	resolver, tm := newTestResolver(&fakeUserLookup{users: map[string]*domain.User{user.ID: user}})

	tokenStr, err := tm.IssueAccess(user.ID, 0)
	require.NoError(t, err)

	resolved, err := resolver.Resolve(context.Background(), tokenStr, domain.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, user, resolved)
}

func TestResolveMissingToken(t *testing.T) {
	resolver, _ := newTestResolver(&fakeUserLookup{})

	_, err := resolver.Resolve(context.Background(), "", domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestResolveInvalidToken(t *testing.T) {
	resolver, _ := newTestResolver(&fakeUserLookup{})

	_, err := resolver.Resolve(context.Background(), "not-a-token", domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveWrongTokenKind(t *testing.T) {
	user := &domain.User{ID: uuid.NewString(), Active: true}
	resolver, tm := newTestResolver(&fakeUserLookup{users: map[string]*domain.User{user.ID: user}})

	refresh, err := tm.IssueRefresh(user.ID, 0)
	require.NoError(t, err)
	_, err = resolver.Resolve(context.Background(), refresh, domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrWrongTokenKind)

	access, err := tm.IssueAccess(user.ID, 0)
	require.NoError(t, err)
	_, err = resolver.Resolve(context.Background(), access, domain.TokenKindRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestResolveNonUUIDSubject(t *testing.T) {
	resolver, tm := newTestResolver(&fakeUserLookup{})

	tokenStr, err := tm.IssueAccess("not-a-uuid", 0)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), tokenStr, domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveUnknownUser(t *testing.T) {
	resolver, tm := newTestResolver(&fakeUserLookup{users: map[string]*domain.User{}})

	tokenStr, err := tm.IssueAccess(uuid.NewString(), 0)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), tokenStr, domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestResolveLookupErrorIsUnknownUser(t *testing.T) {
	resolver, tm := newTestResolver(&fakeUserLookup{err: errors.New("connection reset")})

	tokenStr, err := tm.IssueAccess(uuid.NewString(), 0)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), tokenStr, domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestResolveInactiveAccount(t *testing.T) {
	user := &domain.User{ID: uuid.NewString(), Active: false}
	resolver, tm := newTestResolver(&fakeUserLookup{users: map[string]*domain.User{user.ID: user}})

	tokenStr, err := tm.IssueAccess(user.ID, 0)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), tokenStr, domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrInactiveAccount)
}
