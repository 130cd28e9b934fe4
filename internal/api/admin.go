package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/p-blackswan/storefront/internal/auth"
	perrors "github.com/p-blackswan/storefront/internal/errors"
)

// Names under which an admin credential may be sent.
const (
	AdminKeyHeader = "x-admin-key"
	AdminKeyQuery  = "adminKey"
	AdminKeyField  = "adminKey"
)

// CredentialExtractor pulls a credential candidate from a request, returning
// "" when the source carries none.
type CredentialExtractor func(c *fiber.Ctx) string

// DefaultCredentialExtractors lists credential sources by precedence:
// header, then query parameter, then JSON body field.
var DefaultCredentialExtractors = []CredentialExtractor{
	FromHeader(AdminKeyHeader),
	FromQuery(AdminKeyQuery),
	FromBodyField(AdminKeyField),
}

// FromHeader reads a request header.
func FromHeader(name string) CredentialExtractor {
	return func(c *fiber.Ctx) string { return c.Get(name) }
}

// FromQuery reads a query parameter.
func FromQuery(name string) CredentialExtractor {
	return func(c *fiber.Ctx) string { return c.Query(name) }
}

// FromBodyField reads a top-level string field of a JSON body.
func FromBodyField(name string) CredentialExtractor {
	return func(c *fiber.Ctx) string {
		body := c.Body()
		if len(body) == 0 {
			return ""
		}
		var fields map[string]json.RawMessage
		if json.Unmarshal(body, &fields) != nil {
			return ""
		}
		var v string
		if json.Unmarshal(fields[name], &v) != nil {
			return ""
		}
		return v
	}
}

// ExtractCredential returns the first non-empty candidate.
func ExtractCredential(c *fiber.Ctx, extractors []CredentialExtractor) string {
	for _, extract := range extractors {
		if v := extract(c); v != "" {
			return v
		}
	}
	return ""
}

// RequireAdmin guards a route with the admin guard.
func (h *Handlers) RequireAdmin(guard *auth.Guard, extractors []CredentialExtractor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		candidate := ExtractCredential(c, extractors)
		if err := guard.Check(candidate); err != nil {
			reason := "invalid_credential"
			if errors.Is(err, perrors.ErrNotConfigured) {
				reason = "not_configured"
			}
			if h.metrics != nil {
				h.metrics.RecordAuthRejection(reason)
			}
			h.logger.Warn().
				Str("path", c.Path()).
				Str("method", c.Method()).
				Str("reason", reason).
				Msg("admin request rejected")
			return err
		}
		return c.Next()
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	token, err := h.issuer.Login(req.Username, req.Password)
	if err != nil {
		result := "invalid"
		if errors.Is(err, perrors.ErrMissingCredentials) {
			result = "missing"
		}
		if h.metrics != nil {
			h.metrics.RecordLogin(result)
		}
		return err
	}

	if h.metrics != nil {
		h.metrics.RecordLogin("success")
	}
	return ok(c, Envelope{Token: token})
}
