package auth

import (
	"bytes"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/p-blackswan/storefront/internal/errors"
	"github.com/p-blackswan/storefront/pkg/tokenstore"
)

const testSecret = "s3cr3t-admin-api-key"

func newTestGuard(secret string) (*Guard, *tokenstore.MemoryStore) {
	tokens := tokenstore.NewMemoryStore(time.Hour)
	return NewGuard(GuardConfig{Secret: secret}, tokens, zerolog.Nop()), tokens
}

func TestGuard_SecretMatch(t *testing.T) {
	guard, _ := newTestGuard(testSecret)
	assert.NoError(t, guard.Check(testSecret))
	assert.True(t, guard.SecretConfigured())
}

func TestGuard_ValidTokenWithSecretConfigured(t *testing.T) {
	guard, tokens := newTestGuard(testSecret)
	tok := tokens.Issue()
	assert.NoError(t, guard.Check(tok))
}

func TestGuard_InvalidCredential(t *testing.T) {
	guard, _ := newTestGuard(testSecret)

	for _, candidate := range []string{"", "wrong", testSecret + " ", "S3CR3T-ADMIN-API-KEY"} {
		err := guard.Check(candidate)
		assert.ErrorIs(t, err, perrors.ErrInvalidCredential, "candidate %q", candidate)
	}
}

func TestGuard_NotConfigured(t *testing.T) {
	guard, _ := newTestGuard("")
	assert.False(t, guard.SecretConfigured())

	assert.ErrorIs(t, guard.Check("garbage"), perrors.ErrNotConfigured)
	assert.ErrorIs(t, guard.Check(""), perrors.ErrNotConfigured, "empty candidate never matches an empty secret")
}

func TestGuard_NotConfiguredButValidToken(t *testing.T) {
	guard, tokens := newTestGuard("")
	tok := tokens.Issue()
	assert.NoError(t, guard.Check(tok))
}

func TestGuard_ExpiredToken(t *testing.T) {
	now := time.Now()
	tokens := tokenstore.NewMemoryStore(time.Minute, tokenstore.WithClock(func() time.Time { return now }))
	guard := NewGuard(GuardConfig{Secret: testSecret}, tokens, zerolog.Nop())

	tok := tokens.Issue()
	now = now.Add(time.Minute)

	assert.ErrorIs(t, guard.Check(tok), perrors.ErrInvalidCredential)
}

func TestGuard_DebugLogsMaskedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	tokens := tokenstore.NewMemoryStore(time.Hour)
	guard := NewGuard(GuardConfig{Secret: testSecret, Debug: true}, tokens, logger)

	_ = guard.Check("wrong-candidate-value")

	out := buf.String()
	require.Contains(t, out, "admin auth check")
	assert.Contains(t, out, "s3cr...-key")
	assert.Contains(t, out, "wron...alue")
	assert.NotContains(t, out, testSecret)
	assert.NotContains(t, out, "wrong-candidate-value")
}

func TestGuard_NoLoggingWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	tokens := tokenstore.NewMemoryStore(time.Hour)
	guard := NewGuard(GuardConfig{Secret: testSecret}, tokens, logger)

	_ = guard.Check("wrong")
	_ = guard.Check(testSecret)

	assert.Empty(t, buf.String())
}

func TestIssuer_Login(t *testing.T) {
	tokens := tokenstore.NewMemoryStore(time.Hour)
	issuer := NewIssuer(Credentials{Username: "admin", Password: "hunter2"}, tokens, zerolog.Nop())

	tok, err := issuer.Login("admin", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.True(t, tokens.Validate(tok))
	assert.Equal(t, 1, tokens.Len())
}

func TestIssuer_LoginFailures(t *testing.T) {
	tokens := tokenstore.NewMemoryStore(time.Hour)
	issuer := NewIssuer(Credentials{Username: "admin", Password: "hunter2"}, tokens, zerolog.Nop())

	cases := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"missing both", "", "", perrors.ErrMissingCredentials},
		{"missing username", "", "hunter2", perrors.ErrMissingCredentials},
		{"missing password", "admin", "", perrors.ErrMissingCredentials},
		{"wrong password", "admin", "hunter3", perrors.ErrInvalidCredentials},
		{"wrong username", "root", "hunter2", perrors.ErrInvalidCredentials},
		{"swapped", "hunter2", "admin", perrors.ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := issuer.Login(tc.username, tc.password)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, tok)
			assert.Equal(t, 0, tokens.Len(), "no token created on failure")
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "****", Mask("abc"))
	assert.Equal(t, "****", Mask("12345678"))
	assert.Equal(t, "1234...6789", Mask("123456789"))
	assert.Equal(t, "s3cr...-key", Mask(testSecret))
}

func TestMask_Multibyte(t *testing.T) {
	masked := Mask("пароль-секрет")
	assert.Equal(t, "паро...крет", masked)
	assert.True(t, utf8.ValidString(masked))
	assert.Equal(t, "****", Mask("ключ🔑"))
}
