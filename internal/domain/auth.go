package domain

// TokenKind differentiates access from refresh tokens. A token is only
// accepted by operations expecting its kind.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPair bundles the two tokens returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
