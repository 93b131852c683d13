package domain

import "errors"

// Error taxonomy for the auth and user subsystem. Repositories translate
// storage-specific failures into these at their boundary; services and the
// token issuer surface them unchanged so the HTTP layer owns the mapping.
var (
	// ErrEmailTaken signals a registration or update against an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable to prevent
	// account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every access-token verification failure:
	// malformed, expired, or signed with the wrong secret.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidRefreshToken is the refresh-token analogue of ErrInvalidToken.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrUserNotFound signals a user lookup miss on an authenticated path.
	ErrUserNotFound = errors.New("user not found")

	// ErrForbidden signals an authenticated caller without the required role.
	ErrForbidden = errors.New("insufficient permission")
)
