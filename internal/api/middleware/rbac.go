package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menumesa/pos-system/internal/core/domain"
)

// RequireRole permits the request only when the attached identity holds one
// of the given roles. With no roles it degrades to an authentication-only
// gate. Missing identity is 401; a wrong role is 403.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := CurrentIdentity(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
			}
			if len(allowed) == 0 {
				return next(c)
			}
			if _, member := allowed[ident.Role]; !member {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permission")
			}
			return next(c)
		}
	}
}
