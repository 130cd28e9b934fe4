// Command seed upserts demo categories and products into the catalog store.
//
// Usage:
//
//	DATABASE_URL=catalog.db seed [--file catalog.yaml]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/p-blackswan/storefront/internal/seed"
	"github.com/p-blackswan/storefront/internal/store"
)

type seedConfig struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
	logger.Info().Msg("seeding complete")
}

func run(logger zerolog.Logger) error {
	var filePath string

	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVar(&filePath, "file", "", "YAML seed file (default: built-in demo catalog)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	var cfg seedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return err
	}

	data, err := loadData(filePath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := store.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info().Str("dialect", string(s.Dialect())).Msg("store connected for seeding")
	return seed.Apply(ctx, s, data, logger)
}

func loadData(path string) (seed.Data, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return seed.Data{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return seed.Parse(f)
}
