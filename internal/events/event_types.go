package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginDenied    EventType = "login_denied"
	EventTokenRefreshed EventType = "token_refreshed"
	EventAccessDenied   EventType = "access_denied"
)

// Event represents a security-relevant event emitted by the auth flows. The
// payload never carries credentials or token strings, only identifiers and
// server-side reasons.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginDeniedPayload payload.
type LoginDeniedPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Path         string `json:"path"`
	RequiredRole string `json:"required_role"`
}

// TokenRefreshedPayload payload.
type TokenRefreshedPayload struct {
	RotatedJTI string `json:"rotated_jti"`
}
