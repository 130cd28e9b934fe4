package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/p-blackswan/storefront/internal/api"
	"github.com/p-blackswan/storefront/internal/auth"
	"github.com/p-blackswan/storefront/internal/config"
	"github.com/p-blackswan/storefront/internal/health"
	"github.com/p-blackswan/storefront/internal/metrics"
	"github.com/p-blackswan/storefront/internal/retry"
	"github.com/p-blackswan/storefront/internal/store"
	"github.com/p-blackswan/storefront/pkg/tokenstore"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	if os.Getenv("ENVIRONMENT") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if cfg.DebugAdminAuth && zerolog.GlobalLevel() > zerolog.DebugLevel {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	origins, err := cfg.OriginAllowList()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid origin allow-list")
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("listen_addr", cfg.ListenAddr).
		Str("dialect", string(store.DialectFor(cfg.DatabaseURL))).
		Strs("origins", origins.Origins()).
		Msg("starting storefront")

	connectRetry := retry.DefaultConfig()
	connectRetry.Retryable = func(err error) bool { return !errors.Is(err, store.ErrEmptyDSN) }
	connectRetry.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warn().Err(err).Int("attempt", attempt).Dur("backoff", delay).Msg("store not reachable, retrying")
	}

	var db *store.Store
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	err = retry.Do(ctx, connectRetry, func(ctx context.Context) error {
		var openErr error
		db, openErr = store.Open(ctx, cfg.DatabaseURL, logger)
		return openErr
	})
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}

	m := metrics.New()

	tokens := tokenstore.NewMemoryStore(cfg.TokenTTL(), tokenstore.WithLogger(logger))
	sweeper := tokens.StartSweeper(cfg.TokenSweepInterval, func(_, remaining int) {
		m.SetTokensActive(remaining)
	})

	guard := auth.NewGuard(cfg.GuardConfig(), tokens, logger)
	issuer := auth.NewIssuer(cfg.AdminCredentials(), tokens, logger)

	if guard.SecretConfigured() {
		logger.Info().Msg("admin API key configured")
	} else {
		logger.Warn().Msg("ADMIN_API_KEY not set; admin writes require a login token")
	}
	if cfg.InsecureAdminDefaults() {
		logger.Warn().Msg("using default admin username and password; set ADMIN_USERNAME and ADMIN_PASSWORD")
	}

	checker := health.NewChecker(logger)
	checker.Register("store", health.PingCheck(db))

	server := api.NewServer(api.ServerConfig{
		ListenAddr: cfg.ListenAddr,
		BodyLimit:  cfg.BodyLimit,
	}, api.Deps{
		Catalog: db,
		Guard:   guard,
		Issuer:  issuer,
		Origins: origins,
		Checker: checker,
		Metrics: m,
	}, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down gracefully")
	case err := <-errCh:
		logger.Error().Err(err).Msg("api server stopped")
	}

	sweeper.Stop()

	if err := server.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("api server shutdown error")
	}
	if err := db.Close(); err != nil {
		logger.Error().Err(err).Msg("store close error")
	}

	logger.Info().Msg("storefront stopped")
}
