package ports

import "github.com/menumesa/pos-system/internal/core/domain"

// TokenIssuer creates and verifies the two token classes. Access and refresh
// tokens are signed with separate secrets so compromise of one class does not
// compromise the other.
type TokenIssuer interface {
	IssueAccess(user *domain.User) (string, error)
	IssueRefresh(userID string) (string, error)
	// VerifyAccess returns the identity embedded in a valid access token, or
	// domain.ErrInvalidToken for any failure mode.
	VerifyAccess(token string) (domain.Identity, error)
	// VerifyRefresh returns the user id embedded in a valid refresh token, or
	// domain.ErrInvalidRefreshToken for any failure mode.
	VerifyRefresh(token string) (string, error)
}
