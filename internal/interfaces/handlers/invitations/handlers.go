package invitations

import (
	"errors"

	invsvc "wedding-backend/internal/application/invitations"
	"wedding-backend/internal/application/weddings"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/response"
	"wedding-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *invsvc.Service
}

type SendRequest struct {
	Channel   string   `json:"channel"`
	FamilyIDs []string `json:"family_ids"`
}

// Send POST /api/v1/admin/invitations/send. Channel defaults to PREFERRED.
func (h *Handlers) Send(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	var body SendRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	ch := domain.ChannelPreferred
	if body.Channel != "" {
		parsed, ok := domain.ParseChannel(body.Channel)
		if !ok {
			return response.Error(c, invsvc.ErrInvalidChannel.Error(), fiber.StatusBadRequest, fiber.Map{"field": "channel"})
		}
		ch = parsed
	}
	ids, err := validation.ParseUUIDs(body.FamilyIDs)
	if err != nil {
		return response.Error(c, "family_ids must be UUIDs", fiber.StatusBadRequest, fiber.Map{"field": "family_ids"})
	}

	res, err := h.Service.SendBatch(c.Context(), invsvc.BatchRequest{
		WeddingID: actor.WeddingID,
		AdminID:   actor.UserID,
		Channel:   ch,
		FamilyIDs: ids,
	})
	switch {
	case err == nil:
		return response.Success(c, "Invitations processed", res, nil)
	case errors.Is(err, weddings.ErrWeddingNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		log.Error().Err(err).Str("wedding_id", actor.WeddingID.String()).Msg("invitation batch failed")
		return response.Internal(c)
	}
}
