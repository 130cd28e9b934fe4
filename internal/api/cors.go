package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"github.com/p-blackswan/storefront/internal/origin"
)

// OriginGate rejects requests whose Origin is not on the allow-list before
// any other processing. Requests without an Origin pass. An allowed Origin
// is rewritten to its normalized form for the CORS middleware that follows.
func OriginGate(list origin.AllowList, logger zerolog.Logger) fiber.Handler {
	logger = logger.With().Str("component", "origin_gate").Logger()
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderOrigin)
		if raw == "" {
			return c.Next()
		}
		if !list.Allows(raw) {
			logger.Warn().
				Str("origin", raw).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("origin not allowed")
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(fiber.StatusForbidden).SendString("CORS policy: origin not allowed")
		}
		c.Request().Header.Set(fiber.HeaderOrigin, strings.Clone(origin.Normalize(raw)))
		return c.Next()
	}
}

// corsMiddleware emits CORS headers for allowed origins.
func corsMiddleware(list origin.AllowList) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  list.String(),
		AllowMethods:  strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete}, ","),
		AllowHeaders:  "Content-Type, " + AdminKeyHeader,
		ExposeHeaders: AdminKeyHeader,
	})
}
