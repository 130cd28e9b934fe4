// Package api serves the storefront HTTP API.
package api

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/p-blackswan/storefront/internal/auth"
	"github.com/p-blackswan/storefront/internal/health"
	"github.com/p-blackswan/storefront/internal/metrics"
	"github.com/p-blackswan/storefront/internal/origin"
	"github.com/p-blackswan/storefront/internal/requestid"
)

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	ListenAddr string
	BodyLimit  int
}

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Catalog Catalog
	Guard   *auth.Guard
	Issuer  *auth.Issuer
	Origins origin.AllowList
	Checker *health.Checker
	Metrics *metrics.Metrics

	// Extractors overrides DefaultCredentialExtractors when non-nil.
	Extractors []CredentialExtractor
}

// Server is the storefront Fiber application.
type Server struct {
	app      *fiber.App
	handlers *Handlers
	logger   zerolog.Logger
	config   ServerConfig
}

// NewServer creates and configures a new API server.
func NewServer(cfg ServerConfig, deps Deps, logger zerolog.Logger) *Server {
	handlers := NewHandlers(deps.Catalog, deps.Issuer, deps.Checker, deps.Metrics, logger)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(handlers),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             cfg.BodyLimit,
	})

	s := &Server{
		app:      app,
		handlers: handlers,
		logger:   logger.With().Str("component", "api_server").Logger(),
		config:   cfg,
	}

	s.setupMiddleware(deps)
	s.setupRoutes(deps)

	return s
}

func (s *Server) setupMiddleware(deps Deps) {
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Request ID
	s.app.Use(func(c *fiber.Ctx) error {
		ctx, reqID := requestid.New(c.UserContext())
		c.SetUserContext(ctx)
		c.Set(requestid.Header, reqID)
		return c.Next()
	})

	// Access log and request metrics
	s.app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				return herr
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		if deps.Metrics != nil {
			deps.Metrics.ObserveRequest(c.Method(), route, strconv.Itoa(status), time.Since(start).Seconds())
		}

		path := c.Path()
		if path == "/healthz" || path == "/readyz" || path == "/metrics" {
			return nil
		}
		s.logger.Info().
			Str("method", c.Method()).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Str("request_id", requestid.FromContext(c.UserContext())).
			Msg("api request")
		return nil
	})

	s.app.Use(OriginGate(deps.Origins, s.logger))
	if !deps.Origins.Empty() {
		s.app.Use(corsMiddleware(deps.Origins))
	}
}

func (s *Server) setupRoutes(deps Deps) {
	h := s.handlers
	extractors := deps.Extractors
	if extractors == nil {
		extractors = DefaultCredentialExtractors
	}
	admin := h.RequireAdmin(deps.Guard, extractors)

	s.app.Get("/", h.Root)
	s.app.Get("/healthz", h.Liveness)
	s.app.Get("/readyz", h.Readiness)
	if deps.Metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := s.app.Group("/api")

	api.Post("/admin/login", h.Login)

	api.Get("/categories", h.ListCategories)
	api.Post("/categories", admin, h.CreateCategory)
	api.Put("/categories/:id", admin, h.UpdateCategory)
	api.Delete("/categories/:id", admin, h.DeleteCategory)

	api.Get("/products", h.ListProducts)
	api.Get("/products/:id", h.GetProduct)
	api.Post("/products", admin, h.CreateProduct)
	api.Put("/products/:id", admin, h.UpdateProduct)
	api.Delete("/products/:id", admin, h.DeleteProduct)

	api.Post("/inquiries", h.CreateInquiry)
	api.Get("/inquiries", admin, h.ListInquiries)

	s.app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})
}

// Start starts the server. Blocks until stopped.
func (s *Server) Start() error {
	addr := s.config.ListenAddr
	if addr == "" {
		addr = ":4000"
	}
	s.logger.Info().Str("addr", addr).Msg("api server starting")
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("api server shutting down")
	return s.app.Shutdown()
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}
