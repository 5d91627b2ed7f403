package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL derives how long persisted keys should live from the token's exp claim.
// The token is issued by the journal server, so its signature is not checked here.
func tokenTTL(token string, now time.Time, fallback time.Duration) time.Duration {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	if claims.ExpiresAt == nil {
		return fallback
	}
	ttl := claims.ExpiresAt.Time.Sub(now)
	if ttl <= 0 {
		return fallback
	}
	return ttl
}
