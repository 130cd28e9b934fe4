// Package requestid carries a per-request correlation id through a context.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Header is the response header carrying the request id.
const Header = "X-Request-ID"

// New returns a child of ctx holding a fresh request id, and the id.
func New(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}

// WithRequestID returns a child of ctx holding id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request id in ctx, generating one when absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
