package tokenstore

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MemoryStore maps opaque tokens to their expiry. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *MemoryStore) { m.now = now }
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *MemoryStore) {
		m.logger = logger.With().Str("component", "token_store").Logger()
	}
}

// NewMemoryStore creates a token store issuing tokens that live for ttl.
// A non-positive ttl falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration, opts ...Option) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &MemoryStore{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the lifetime given to issued tokens.
func (m *MemoryStore) TTL() time.Duration { return m.ttl }

// Issue mints a random token valid for the store TTL.
func (m *MemoryStore) Issue() string {
	tok := Token{Value: rand.Text()}

	m.mu.Lock()
	tok.ExpiresAt = m.now().Add(m.ttl)
	m.tokens[tok.Value] = tok.ExpiresAt
	m.mu.Unlock()

	m.logger.Debug().Time("expires_at", tok.ExpiresAt).Msg("token issued")
	return tok.Value
}

// Validate reports whether token is known and unexpired. An expired entry is
// evicted on the spot; a valid one is left untouched.
func (m *MemoryStore) Validate(token string) bool {
	if token == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.tokens[token]
	if !ok {
		return false
	}
	if (Token{Value: token, ExpiresAt: exp}).ExpiredAt(m.now()) {
		delete(m.tokens, token)
		return false
	}
	return true
}

// Sweep removes every expired token and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for value, exp := range m.tokens {
		if (Token{Value: value, ExpiresAt: exp}).ExpiredAt(now) {
			delete(m.tokens, value)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored tokens, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}
