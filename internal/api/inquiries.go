package api

import (
	"github.com/gofiber/fiber/v2"

	perrors "github.com/p-blackswan/storefront/internal/errors"
	"github.com/p-blackswan/storefront/internal/store"
)

type inquiryInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Service *string `json:"service"`
	Message *string `json:"message"`
}

// CreateInquiry handles POST /api/inquiries.
func (h *Handlers) CreateInquiry(c *fiber.Ctx) error {
	var in inquiryInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}

	inq := store.Inquiry{
		Name:    trimmed(in.Name),
		Email:   trimmed(in.Email),
		Phone:   trimmed(in.Phone),
		Service: trimmed(in.Service),
		Message: trimmed(in.Message),
	}
	if inq.Name == "" {
		return perrors.Invalid("inquiry name is required")
	}
	if inq.Email == "" && inq.Phone == "" {
		return perrors.Invalid("inquiry must include email or phone")
	}

	if err := h.catalog.CreateInquiry(c.UserContext(), &inq); err != nil {
		return err
	}
	h.logger.Info().Str("id", inq.ID).Str("service", inq.Service).Msg("inquiry received")
	return ok(c, Envelope{ID: inq.ID, Type: "inquiry"})
}

// ListInquiries handles GET /api/inquiries.
func (h *Handlers) ListInquiries(c *fiber.Ctx) error {
	rows, err := h.catalog.ListInquiries(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, Envelope{Rows: rows})
}
