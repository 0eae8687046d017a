package content

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes public content endpoints and the admin seed operation.
type Handler struct {
	service *Service
}

// NewHandler builds a content HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Overview summarises platform activity.
func (h *Handler) Overview(c *fiber.Ctx) error {
	ov, err := h.service.Overview(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"stats": fiber.Map{
			"batches_egg":     ov.BatchesEgg,
			"batches_chicken": ov.BatchesChicken,
		},
		"highlights": ov.Highlights,
	})
}

// FAQ lists all FAQ entries.
func (h *Handler) FAQ(c *fiber.Ctx) error {
	faqs, err := h.service.FAQs(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]fiber.Map, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, fiber.Map{"id": f.ID, "question": f.Question, "answer": f.Answer})
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Page returns the content page for a slug.
func (h *Handler) Page(c *fiber.Ctx) error {
	page, err := h.service.Page(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"slug":    page.Slug,
		"title":   page.Title,
		"body_md": page.BodyMD,
	})
}

// Seed inserts demo content.
func (h *Handler) Seed(c *fiber.Ctx) error {
	if err := h.service.Seed(c.UserContext()); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true})
}
