package auth

import (
	"crypto/subtle"

	"github.com/rs/zerolog"

	perrors "github.com/p-blackswan/storefront/internal/errors"
	"github.com/p-blackswan/storefront/pkg/tokenstore"
)

// Credentials is the single admin username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Issuer verifies admin credentials and mints session tokens. It is the only
// path that creates tokens.
type Issuer struct {
	creds  Credentials
	tokens tokenstore.Issuer
	logger zerolog.Logger
}

// NewIssuer creates a session issuer.
func NewIssuer(creds Credentials, tokens tokenstore.Issuer, logger zerolog.Logger) *Issuer {
	return &Issuer{
		creds:  creds,
		tokens: tokens,
		logger: logger.With().Str("component", "session_issuer").Logger(),
	}
}

// Login returns a fresh token for a matching username/password pair.
func (i *Issuer) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", perrors.ErrMissingCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(i.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(i.creds.Password)) == 1
	if !userOK || !passOK {
		i.logger.Warn().Str("username", username).Msg("admin login rejected")
		return "", perrors.ErrInvalidCredentials
	}

	token := i.tokens.Issue()
	i.logger.Info().Str("username", username).Msg("admin session issued")
	return token, nil
}
