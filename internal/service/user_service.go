package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bidworks/internal/auth"
	"github.com/spec-kit/bidworks/internal/domain"
	"github.com/spec-kit/bidworks/internal/repository"
	apperrors "github.com/spec-kit/bidworks/pkg/util"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// UserUpdate carries the mutable profile fields. Nil means unchanged.
type UserUpdate struct {
	FullName *string
	Password *string
	Role     *domain.Role
}

// UserService handles account management around the auth core.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// List returns accounts ordered by creation time.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// GetByID loads one account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}
	return user, nil
}

// Update applies a profile update on behalf of an actor. Role changes are
// only honored when the actor holds the ADMIN role; for everyone else they
// are silently dropped.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, update UserUpdate) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if update.Role != nil && actor != nil && actor.Role.Satisfies(domain.RoleAdmin) {
		if !update.Role.IsValid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(*update.Role)})
		}
		user.Role = *update.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return err
	}
	return nil
}
