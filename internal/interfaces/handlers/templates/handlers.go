package templates

import (
	"errors"

	tplsvc "wedding-backend/internal/application/templates"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *tplsvc.Service
}

// List GET /api/v1/admin/templates
func (h *Handlers) List(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	list, err := h.Service.List(c.Context(), actor.WeddingID)
	if err != nil {
		return response.Internal(c)
	}
	return response.Success(c, "Templates retrieved", list, fiber.Map{"count": len(list)})
}

// Upsert PUT /api/v1/admin/templates
func (h *Handlers) Upsert(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	var in tplsvc.UpsertInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	tpl, err := h.Service.Upsert(c.Context(), actor.WeddingID, in)
	switch {
	case err == nil:
		return response.Success(c, "Template saved", tpl, nil)
	case errors.Is(err, tplsvc.ErrInvalidType), errors.Is(err, tplsvc.ErrInvalidLanguage),
		errors.Is(err, tplsvc.ErrInvalidChannel), errors.Is(err, tplsvc.ErrBodyRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Internal(c)
	}
}

// Delete DELETE /api/v1/admin/templates/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid template id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), actor.WeddingID, id); err != nil {
		if errors.Is(err, tplsvc.ErrTemplateNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Internal(c)
	}
	return response.Success(c, "Template deleted", nil, nil)
}
