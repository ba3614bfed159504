package families

import (
	"errors"

	famsvc "wedding-backend/internal/application/families"
	"wedding-backend/internal/application/weddings"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service  *famsvc.Service
	Weddings *weddings.Service
}

// List GET /api/v1/admin/families (with RSVP counts)
func (h *Handlers) List(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	list, err := h.Service.List(c.Context(), actor.WeddingID)
	if err != nil {
		return response.Internal(c)
	}
	responded := 0
	for _, s := range list {
		if s.Responded {
			responded++
		}
	}
	return response.Success(c, "Families retrieved", list, fiber.Map{"count": len(list), "responded": responded})
}

// Get GET /api/v1/admin/families/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid family id", fiber.StatusBadRequest, nil)
	}
	found, err := h.Service.ByIDs(c.Context(), actor.WeddingID, []uuid.UUID{id})
	if err != nil {
		return response.Internal(c)
	}
	if len(found) == 0 {
		return response.Error(c, famsvc.ErrFamilyNotFound.Error(), fiber.StatusNotFound, nil)
	}
	return response.Success(c, "Family retrieved", found[0], nil)
}

// Create POST /api/v1/admin/families
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	var in famsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	w, err := h.Weddings.Get(c.Context(), actor.WeddingID)
	if err != nil {
		if errors.Is(err, weddings.ErrWeddingNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Internal(c)
	}
	f, err := h.Service.Create(c.Context(), w, in)
	switch {
	case err == nil:
		log.Info().Str("wedding_id", w.ID.String()).Str("family_id", f.ID.String()).Msg("family created")
		return response.SuccessCreated(c, "Family created", fiber.Map{
			"family":         f,
			"magic_token":    f.MagicToken,
			"reference_code": f.ReferenceCode,
		}, nil)
	case errors.Is(err, famsvc.ErrNameRequired), errors.Is(err, famsvc.ErrInvalidEmail),
		errors.Is(err, famsvc.ErrInvalidPhone), errors.Is(err, famsvc.ErrInvalidChannel),
		errors.Is(err, famsvc.ErrInvalidLanguage), errors.Is(err, famsvc.ErrMemberNameNeeded):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Internal(c)
	}
}
