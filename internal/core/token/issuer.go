// Package token issues and verifies the two JWT classes used by the API:
// short-lived access tokens carrying the full identity, and long-lived
// refresh tokens carrying only the user id. Each class is signed with its
// own secret.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/menumesa/pos-system/internal/core/domain"
)

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims intentionally carries only the user id: a profile or role
// change must not invalidate the ability to refresh.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// Issuer signs and verifies access and refresh tokens with HS256.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (i *Issuer) IssueAccess(user *domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        tokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.accessSecret)
}

func (i *Issuer) IssueRefresh(userID string) (string, error) {
	now := time.Now()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        tokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.refreshSecret)
}

// VerifyAccess validates signature and expiry against the access secret.
// Every failure mode collapses to domain.ErrInvalidToken so callers cannot
// distinguish malformed, expired, or wrong-secret tokens.
func (i *Issuer) VerifyAccess(tokenString string) (domain.Identity, error) {
	claims := &accessClaims{}
	if err := i.parse(tokenString, claims, i.accessSecret); err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   role,
	}, nil
}

// VerifyRefresh validates against the refresh secret and returns the user id.
func (i *Issuer) VerifyRefresh(tokenString string) (string, error) {
	claims := &refreshClaims{}
	if err := i.parse(tokenString, claims, i.refreshSecret); err != nil {
		return "", domain.ErrInvalidRefreshToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidRefreshToken
	}
	return claims.Subject, nil
}

// tokenID returns a random jti so two tokens minted for the same claims in
// the same second still differ.
func tokenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

func (i *Issuer) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}
