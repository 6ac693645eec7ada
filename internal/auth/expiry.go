package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a JWT access token without verifying its
// signature. The backend is the only party that verifies it.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// SessionExpiry is the earlier of now+ttl and the access token's own expiry.
func SessionExpiry(accessToken string, now time.Time, ttl time.Duration) time.Time {
	expiry := now.Add(ttl)
	if exp, ok := TokenExpiry(accessToken); ok && exp.Before(expiry) {
		return exp
	}
	return expiry
}
