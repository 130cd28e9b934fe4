package api

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/p-blackswan/storefront/internal/auth"
	"github.com/p-blackswan/storefront/internal/health"
	"github.com/p-blackswan/storefront/internal/metrics"
	"github.com/p-blackswan/storefront/internal/store"
)

// Catalog is the document store as seen by the handlers.
type Catalog interface {
	ListCategories(ctx context.Context) ([]store.Category, error)
	GetCategory(ctx context.Context, id string) (store.Category, error)
	CreateCategory(ctx context.Context, c *store.Category) error
	UpdateCategory(ctx context.Context, c store.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListProducts(ctx context.Context, f store.ProductFilter) ([]store.Product, error)
	GetProduct(ctx context.Context, id string) (store.Product, error)
	CreateProduct(ctx context.Context, p *store.Product) error
	UpdateProduct(ctx context.Context, p store.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListInquiries(ctx context.Context) ([]store.Inquiry, error)
	CreateInquiry(ctx context.Context, i *store.Inquiry) error
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	catalog   Catalog
	issuer    *auth.Issuer
	checker   *health.Checker
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandlers creates a new Handlers instance. checker and m may be nil.
func NewHandlers(catalog Catalog, issuer *auth.Issuer, checker *health.Checker, m *metrics.Metrics, logger zerolog.Logger) *Handlers {
	return &Handlers{
		catalog:   catalog,
		issuer:    issuer,
		checker:   checker,
		metrics:   m,
		logger:    logger.With().Str("component", "handlers").Logger(),
		startTime: time.Now(),
	}
}

// Root handles GET /.
func (h *Handlers) Root(c *fiber.Ctx) error {
	return ok(c, Envelope{Message: "storefront backend running"})
}

// Liveness handles GET /healthz.
func (h *Handlers) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readiness handles GET /readyz.
func (h *Handlers) Readiness(c *fiber.Ctx) error {
	if h.checker == nil {
		return c.JSON(health.Report{Status: "ready", Checks: map[string]health.Status{}})
	}
	report := h.checker.Run(c.UserContext())
	if !report.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases s and joins its alphanumeric runs with dashes.
func slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// trimmed returns the trimmed value of p, or "" when p is nil.
func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
