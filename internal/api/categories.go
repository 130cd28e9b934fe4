package api

import (
	"github.com/gofiber/fiber/v2"

	perrors "github.com/p-blackswan/storefront/internal/errors"
	"github.com/p-blackswan/storefront/internal/store"
)

type categoryInput struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// ListCategories handles GET /api/categories.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	rows, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, Envelope{Rows: rows})
}

// CreateCategory handles POST /api/categories.
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var in categoryInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}

	cat := store.Category{Name: trimmed(in.Name), Slug: slugify(trimmed(in.Slug))}
	if cat.Name == "" {
		return perrors.Invalid("category name is required")
	}
	if cat.Slug == "" {
		cat.Slug = slugify(cat.Name)
	}
	if cat.Slug == "" {
		return perrors.Invalid("category slug is required")
	}

	if err := h.catalog.CreateCategory(c.UserContext(), &cat); err != nil {
		return err
	}
	h.logger.Info().Str("id", cat.ID).Str("slug", cat.Slug).Msg("category created")
	return ok(c, Envelope{ID: cat.ID, Type: "category"})
}

// UpdateCategory handles PUT /api/categories/:id.
func (h *Handlers) UpdateCategory(c *fiber.Ctx) error {
	var in categoryInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}

	cat, err := h.catalog.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if in.Name != nil {
		cat.Name = trimmed(in.Name)
	}
	if in.Slug != nil {
		cat.Slug = slugify(trimmed(in.Slug))
	}
	if cat.Name == "" {
		return perrors.Invalid("category name is required")
	}
	if cat.Slug == "" {
		cat.Slug = slugify(cat.Name)
	}

	if err := h.catalog.UpdateCategory(c.UserContext(), cat); err != nil {
		return err
	}
	return ok(c, Envelope{Row: cat})
}

// DeleteCategory handles DELETE /api/categories/:id.
func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	h.logger.Info().Str("id", c.Params("id")).Msg("category deleted")
	return ok(c, Envelope{})
}
