package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/phoenix-adventures/trip-service/internal/service"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

// ResourcesHandler exposes admin CRUD over one resource kind.
type ResourcesHandler struct {
	resources *service.ResourceService
}

// NewResourcesHandler constructs handler.
func NewResourcesHandler(resources *service.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{resources: resources}
}

// List handles GET /.
func (h *ResourcesHandler) List(c *fiber.Ctx) error {
	records, err := h.resources.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"results":          len(records),
			h.resources.Name(): records,
		},
	})
}

// Get handles GET /:id.
func (h *ResourcesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	record, err := h.resources.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// Update handles PATCH /:id with a field-merge body.
func (h *ResourcesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record, err := h.resources.Update(c.Context(), id, fields)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// Delete handles DELETE /:id.
func (h *ResourcesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.resources.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}
