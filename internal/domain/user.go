package domain

import "time"

// Role enumerates account roles. The hierarchy is a closed two-tier partial
// order: ADMIN satisfies every requirement, USER satisfies only USER. Adding a
// tier means adding a constant and a level entry below.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var roleLevels = map[Role]int{
	RoleUser:  0,
	RoleAdmin: 1,
}

// IsValid reports whether the role is one of the predefined roles.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Satisfies reports whether this role meets the required role. Unknown roles
// on either side never satisfy anything.
func (r Role) Satisfies(required Role) bool {
	level, ok := roleLevels[r]
	if !ok {
		return false
	}
	requiredLevel, ok := roleLevels[required]
	if !ok {
		return false
	}
	return level >= requiredLevel
}

// User is the domain model for platform accounts.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
