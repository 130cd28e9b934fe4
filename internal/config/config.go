package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/p-blackswan/storefront/internal/auth"
	"github.com/p-blackswan/storefront/internal/origin"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "123"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// General
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":4000"`
	BodyLimit   int    `envconfig:"BODY_LIMIT_BYTES" default:"5242880"`

	// Document store. A postgres:// URL selects Postgres, anything else is a SQLite path.
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Admin access
	AdminAPIKey        string        `envconfig:"ADMIN_API_KEY"`
	AdminTokenTTL      int           `envconfig:"ADMIN_TOKEN_TTL" default:"3600"` // seconds
	TokenSweepInterval time.Duration `envconfig:"ADMIN_TOKEN_SWEEP_INTERVAL" default:"60s"`
	AdminUsername      string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword      string        `envconfig:"ADMIN_PASSWORD" default:"123"`
	DebugAdminAuth     bool          `envconfig:"DEBUG_ADMIN_AUTH" default:"false"`

	// Comma-separated origins allowed to call the API from a browser.
	AllowedOrigins string `envconfig:"FRONTEND_URL" default:"https://utsavdecorandevents.firebaseapp.com,https://utsavdecorandevents.web.app,http://localhost:5173"`
}

// TokenTTL returns the admin session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.AdminTokenTTL) * time.Second
}

// GuardConfig returns the admin guard settings.
func (c *Config) GuardConfig() auth.GuardConfig {
	return auth.GuardConfig{
		Secret: c.AdminAPIKey,
		Debug:  c.DebugAdminAuth,
	}
}

// AdminCredentials returns the username/password pair accepted at login.
func (c *Config) AdminCredentials() auth.Credentials {
	return auth.Credentials{
		Username: c.AdminUsername,
		Password: c.AdminPassword,
	}
}

// InsecureAdminDefaults reports whether the built-in admin credentials are in use.
func (c *Config) InsecureAdminDefaults() bool {
	return c.AdminUsername == defaultAdminUsername && c.AdminPassword == defaultAdminPassword
}

// OriginAllowList parses FRONTEND_URL.
func (c *Config) OriginAllowList() (origin.AllowList, error) {
	list, err := origin.ParseAllowList(c.AllowedOrigins)
	if err != nil {
		return origin.AllowList{}, fmt.Errorf("FRONTEND_URL: %w", err)
	}
	return list, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if c.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be positive, got %d", c.AdminTokenTTL)
	}
	if c.TokenSweepInterval <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_SWEEP_INTERVAL must be positive, got %s", c.TokenSweepInterval)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("BODY_LIMIT_BYTES must be positive, got %d", c.BodyLimit)
	}
	if _, err := c.OriginAllowList(); err != nil {
		return err
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return LoadWithPrefix("")
}

// LoadWithPrefix reads configuration with a prefix.
func LoadWithPrefix(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
