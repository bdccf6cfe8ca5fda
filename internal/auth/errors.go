package auth

import "errors"

// Typed resolution failures. The transport adapters collapse the first five
// into a generic "authentication failed" signal; the precise reason is only
// ever logged server-side.
var (
	// ErrMissingToken means no credential was presented at all.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrInvalidToken covers every cryptographic or structural failure:
	// bad signature, malformed token, expired token. Callers are not told
	// which one.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrWrongTokenKind means a valid token of the wrong kind was presented,
	// e.g. a refresh token on a resource route.
	ErrWrongTokenKind = errors.New("wrong token kind")

	// ErrUnknownUser means the token subject does not resolve to an account.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInactiveAccount means the account exists but is disabled.
	ErrInactiveAccount = errors.New("account is disabled")

	// ErrInsufficientRole is an authorization failure, distinct from the
	// authentication failures above: the identity is valid but lacks the
	// required role.
	ErrInsufficientRole = errors.New("insufficient role")
)
