// Package auth implements admin access control: the shared-secret/token
// guard for mutating requests and the username/password session issuer.
package auth

import (
	"crypto/subtle"

	"github.com/rs/zerolog"

	perrors "github.com/p-blackswan/storefront/internal/errors"
	"github.com/p-blackswan/storefront/pkg/tokenstore"
)

// Guard decides whether a credential candidate grants admin access.
type Guard struct {
	secret string
	tokens tokenstore.Validator
	debug  bool
	logger zerolog.Logger
}

// GuardConfig holds the guard settings.
type GuardConfig struct {
	// Secret is the shared admin API key. Empty disables secret-based access.
	Secret string
	// Debug enables masked diagnostic logging of every check.
	Debug bool
}

// NewGuard creates a guard backed by the given token validator.
func NewGuard(cfg GuardConfig, tokens tokenstore.Validator, logger zerolog.Logger) *Guard {
	return &Guard{
		secret: cfg.Secret,
		tokens: tokens,
		debug:  cfg.Debug,
		logger: logger.With().Str("component", "admin_guard").Logger(),
	}
}

// SecretConfigured reports whether a shared secret is set.
func (g *Guard) SecretConfigured() bool { return g.secret != "" }

// Check returns nil when candidate equals the shared secret or is a valid
// session token. Otherwise it returns ErrNotConfigured when no secret is set
// and ErrInvalidCredential when one is.
func (g *Guard) Check(candidate string) error {
	secretMatch := g.secret != "" &&
		subtle.ConstantTimeCompare([]byte(candidate), []byte(g.secret)) == 1
	tokenValid := !secretMatch && g.tokens.Validate(candidate)

	if g.debug {
		g.logger.Debug().
			Bool("key_configured", g.secret != "").
			Str("key_mask", Mask(g.secret)).
			Str("sent_mask", Mask(candidate)).
			Bool("equal", secretMatch).
			Bool("token_valid", tokenValid).
			Msg("admin auth check")
	}

	switch {
	case secretMatch, tokenValid:
		return nil
	case g.secret == "":
		return perrors.ErrNotConfigured
	default:
		return perrors.ErrInvalidCredential
	}
}
