package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthTokens is the bearer token pair issued at login or registration.
// Access goes on every authenticated request; Refresh is only sent on logout.
type AuthTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Complete reports whether both tokens are set.
func (t AuthTokens) Complete() bool {
	return t.Access != "" && t.Refresh != ""
}

// AccessClaims is the informational view of an access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID any `json:"user_id,omitempty"`
}

// Expiry returns the exp claim, or the zero time when absent.
func (c AccessClaims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Account returns the user_id claim as text, falling back to sub.
func (c AccessClaims) Account() string {
	if c.UserID != nil {
		return fmt.Sprint(c.UserID)
	}
	return c.Subject
}

// AccessClaims decodes the access token payload without verifying its
// signature. The client never trusts these values; they are for display.
func (t AuthTokens) AccessClaims() (AccessClaims, error) {
	var claims AccessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(t.Access, &claims); err != nil {
		return AccessClaims{}, fmt.Errorf("decode access token: %w", err)
	}
	return claims, nil
}
