package seed

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-blackswan/storefront/internal/store"
)

func TestDefault(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	assert.Len(t, d.Categories, 3)
	assert.Len(t, d.Products, 3)
	assert.Equal(t, "wedding-services", d.Products[0].Category)
	assert.Len(t, d.Products[0].Images, 2)
	assert.Equal(t, "2000", d.Products[0].Price)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing slug", "categories:\n  - name: X\n", "slug is required"},
		{"missing title", "products:\n  - description: X\n", "title is required"},
		{"unknown field", "categories:\n  - name: X\n    slug: x\n    colour: red\n", "decode seed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	d, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, d.Categories)
}

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, filepath.Join(t.TempDir(), "seed.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	d, err := Default()
	require.NoError(t, err)

	require.NoError(t, Apply(ctx, s, d, zerolog.Nop()))
	first, err := s.ListProducts(ctx, store.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, first, 3)

	d.Products[0].Price = "2500"
	require.NoError(t, Apply(ctx, s, d, zerolog.Nop()))

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)

	products, err := s.ListProducts(ctx, store.ProductFilter{Category: "wedding-services"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "2500", products[0].Price)
}
