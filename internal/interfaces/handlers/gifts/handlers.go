package gifts

import (
	"errors"

	giftsvc "wedding-backend/internal/application/gifts"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *giftsvc.Service
}

func (h *Handlers) List(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	list, err := h.Service.List(c.Context(), actor.WeddingID)
	if err != nil {
		return response.Internal(c)
	}
	return response.Success(c, "Gifts retrieved", list, fiber.Map{"count": len(list)})
}

// Create POST /api/v1/admin/gifts
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	var in giftsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	g, err := h.Service.Create(c.Context(), actor.WeddingID, in)
	switch {
	case err == nil:
		return response.SuccessCreated(c, "Gift recorded", g, fiber.Map{"matched": g.FamilyID != nil})
	case errors.Is(err, giftsvc.ErrInvalidAmount), errors.Is(err, giftsvc.ErrInvalidCurrency):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Internal(c)
	}
}

// Confirm PATCH /api/v1/admin/gifts/:id/confirm
func (h *Handlers) Confirm(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid gift id", fiber.StatusBadRequest, nil)
	}
	g, err := h.Service.Confirm(c.Context(), actor.WeddingID, id)
	switch {
	case err == nil:
		return response.Success(c, "Gift confirmed", g, nil)
	case errors.Is(err, giftsvc.ErrGiftNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, giftsvc.ErrAlreadyConfirmed):
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	default:
		return response.Internal(c)
	}
}
