package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	perrors "github.com/p-blackswan/storefront/internal/errors"
	"github.com/p-blackswan/storefront/internal/store"
)

// productInput accepts both the images list and the older single image field.
type productInput struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Images      []string     `json:"images"`
	Image       *string      `json:"image"`
	Price       *flexString  `json:"price"`
	Category    *string      `json:"category"`
	Inclusions  []flexString `json:"inclusions"`
}

// images returns the image list the input asks for, and whether it names any.
func (in productInput) images() ([]string, bool) {
	if in.Images == nil && in.Image == nil {
		return nil, false
	}
	out := make([]string, 0, len(in.Images)+1)
	for _, img := range in.Images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	if img := trimmed(in.Image); img != "" && len(out) == 0 {
		out = append(out, img)
	}
	return out, true
}

func (in productInput) inclusions() []string {
	out := make([]string, 0, len(in.Inclusions))
	for _, v := range in.Inclusions {
		if s := strings.TrimSpace(string(v)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// productRow adds the single image field older clients read.
type productRow struct {
	store.Product
	Image string `json:"image"`
}

func toRow(p store.Product) productRow {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Inclusions == nil {
		p.Inclusions = []string{}
	}
	return productRow{Product: p, Image: p.Image()}
}

// ListProducts handles GET /api/products.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	filter := store.ProductFilter{Category: strings.TrimSpace(c.Query("category"))}
	products, err := h.catalog.ListProducts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, toRow(p))
	}
	return ok(c, Envelope{Rows: rows})
}

// GetProduct handles GET /api/products/:id.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	p, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, Envelope{Row: toRow(p)})
}

// CreateProduct handles POST /api/products.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	var in productInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}

	images, _ := in.images()
	p := store.Product{
		Title:       trimmed(in.Title),
		Description: trimmed(in.Description),
		Images:      images,
		Category:    trimmed(in.Category),
		Inclusions:  in.inclusions(),
	}
	if in.Price != nil {
		p.Price = strings.TrimSpace(string(*in.Price))
	}
	if p.Title == "" && len(p.Images) == 0 {
		return perrors.Invalid("product must include title or image")
	}

	if err := h.catalog.CreateProduct(c.UserContext(), &p); err != nil {
		return err
	}
	h.logger.Info().Str("id", p.ID).Str("title", p.Title).Msg("product created")
	return ok(c, Envelope{ID: p.ID, Type: "product"})
}

// UpdateProduct handles PUT /api/products/:id. Omitted fields keep their
// stored values.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	var in productInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}

	p, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if in.Title != nil {
		p.Title = trimmed(in.Title)
	}
	if in.Description != nil {
		p.Description = trimmed(in.Description)
	}
	if images, set := in.images(); set {
		p.Images = images
	}
	if in.Price != nil {
		p.Price = strings.TrimSpace(string(*in.Price))
	}
	if in.Category != nil {
		p.Category = trimmed(in.Category)
	}
	if in.Inclusions != nil {
		p.Inclusions = in.inclusions()
	}
	if p.Title == "" && len(p.Images) == 0 {
		return perrors.Invalid("product must include title or image")
	}

	if err := h.catalog.UpdateProduct(c.UserContext(), p); err != nil {
		return err
	}
	return ok(c, Envelope{Row: toRow(p)})
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	h.logger.Info().Str("id", c.Params("id")).Msg("product deleted")
	return ok(c, Envelope{})
}
