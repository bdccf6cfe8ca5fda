package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/bidworks/internal/domain"
)

func TestAuthorize(t *testing.T) {
	admin := &domain.User{Role: domain.RoleAdmin, Active: true}
	user := &domain.User{Role: domain.RoleUser, Active: true}

	tests := []struct {
		name     string
		identity *domain.User
		required domain.Role
		wantErr  error
	}{
		{"admin passes admin requirement", admin, domain.RoleAdmin, nil},
		{"admin passes user requirement", admin, domain.RoleUser, nil},
		{"user passes user requirement", user, domain.RoleUser, nil},
		{"user fails admin requirement", user, domain.RoleAdmin, ErrInsufficientRole},
		{"nil identity fails", nil, domain.RoleUser, ErrInsufficientRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.identity, tt.required)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
