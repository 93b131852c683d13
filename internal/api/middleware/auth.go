package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/menumesa/pos-system/internal/core/domain"
)

// identityKey is the echo context key holding the verified identity.
const identityKey = "auth.identity"

// AccessVerifier validates an access token and returns the identity it
// carries. Satisfied by token.Issuer.
type AccessVerifier interface {
	VerifyAccess(token string) (domain.Identity, error)
}

// Auth extracts the bearer token from the Authorization header, verifies it,
// and attaches the resulting identity to the request context. A missing or
// malformed header and a failed verification both short-circuit with 401; no
// handler runs.
func Auth(verifier AccessVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			ident, err := verifier.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity attached by Auth, if any.
func CurrentIdentity(c echo.Context) (domain.Identity, bool) {
	ident, ok := c.Get(identityKey).(domain.Identity)
	return ident, ok
}
