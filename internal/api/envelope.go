package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	perrors "github.com/p-blackswan/storefront/internal/errors"
)

// Envelope is the response shape shared by every JSON endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
	Type    string `json:"type,omitempty"`
	Token   string `json:"token,omitempty"`
	Row     any    `json:"row,omitempty"`
	Rows    any    `json:"rows,omitempty"`
}

func ok(c *fiber.Ctx, env Envelope) error {
	env.Success = true
	return c.Status(fiber.StatusOK).JSON(env)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: message})
}

// decodeJSON parses the request body into v. An empty body leaves v untouched.
func decodeJSON(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return perrors.Invalid("invalid JSON body")
	}
	return nil
}

// flexString accepts a JSON string or number and keeps its text.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

func errorHandler(h *Handlers) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := perrors.StatusCode(err)
		message := perrors.Message(err)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		var se *perrors.StoreError
		if errors.As(err, &se) && h.metrics != nil {
			h.metrics.RecordStoreError(se.Op)
		}

		if status >= fiber.StatusInternalServerError {
			h.logger.Error().
				Err(err).
				Int("status", status).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Msg("request failed")
		}

		return fail(c, status, message)
	}
}
