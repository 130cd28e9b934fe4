// Package seed loads demo catalog data into the document store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/p-blackswan/storefront/internal/store"
)

//go:embed default.yaml
var defaultData []byte

// Data is a seed document.
type Data struct {
	Categories []store.Category `yaml:"categories"`
	Products   []store.Product  `yaml:"products"`
}

// Target is the subset of the store seeding writes to.
type Target interface {
	UpsertCategoryBySlug(ctx context.Context, c store.Category) (store.Category, error)
	UpsertProductByTitle(ctx context.Context, p store.Product) (store.Product, error)
}

// Default returns the built-in demo catalog.
func Default() (Data, error) {
	return Parse(strings.NewReader(string(defaultData)))
}

// Parse decodes a YAML seed document and checks that every entry is keyed.
func Parse(r io.Reader) (Data, error) {
	var d Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && err != io.EOF {
		return Data{}, fmt.Errorf("decode seed: %w", err)
	}
	for i, c := range d.Categories {
		if strings.TrimSpace(c.Slug) == "" {
			return Data{}, fmt.Errorf("category %d: slug is required", i)
		}
	}
	for i, p := range d.Products {
		if strings.TrimSpace(p.Title) == "" {
			return Data{}, fmt.Errorf("product %d: title is required", i)
		}
	}
	return d, nil
}

// Apply upserts categories by slug and products by title. Running it twice
// leaves the store unchanged.
func Apply(ctx context.Context, t Target, d Data, logger zerolog.Logger) error {
	for _, c := range d.Categories {
		if _, err := t.UpsertCategoryBySlug(ctx, c); err != nil {
			return fmt.Errorf("upsert category %q: %w", c.Slug, err)
		}
		logger.Info().Str("slug", c.Slug).Msg("upserted category")
	}
	for _, p := range d.Products {
		if _, err := t.UpsertProductByTitle(ctx, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Title, err)
		}
		logger.Info().Str("title", p.Title).Msg("upserted product")
	}
	return nil
}
