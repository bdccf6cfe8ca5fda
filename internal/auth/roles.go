package auth

import (
	"github.com/spec-kit/bidworks/internal/domain"
)

// Authorize checks a resolved identity against a required role. Pure
// function: ADMIN passes everything, otherwise the roles must match.
func Authorize(user *domain.User, required domain.Role) error {
	if user == nil || !user.Role.Satisfies(required) {
		return ErrInsufficientRole
	}
	return nil
}
