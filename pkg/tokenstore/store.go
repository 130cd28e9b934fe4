// Package tokenstore keeps short-lived admin session tokens in memory.
package tokenstore

import (
	"time"
)

const (
	// DefaultTTL is the lifetime of an issued token when none is configured.
	DefaultTTL = time.Hour
	// DefaultSweepInterval is how often expired tokens are evicted.
	DefaultSweepInterval = time.Minute
)

// Token is an issued session token and its absolute expiry.
type Token struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the token is no longer valid at now.
// A token is valid strictly before its expiry instant.
func (t Token) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Issuer mints new tokens.
type Issuer interface {
	Issue() string
}

// Validator checks a candidate token.
type Validator interface {
	Validate(token string) bool
}
