package reminders

import (
	"errors"

	remsvc "wedding-backend/internal/application/reminders"
	"wedding-backend/internal/application/tracking"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/response"
	"wedding-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// CodeCutoffPassed is details.code on the 400 returned once RSVPs are closed.
const CodeCutoffPassed = "RSVP_CUTOFF_PASSED"

type Handlers struct {
	Service *remsvc.Service
}

type SendRequest struct {
	Channel         string   `json:"channel"`
	MessageTemplate *string  `json:"message_template"`
	FamilyIDs       []string `json:"family_ids"`
}

// Send POST /api/v1/admin/reminders
func (h *Handlers) Send(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}

	var body SendRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	ch, ok := domain.ParseChannel(body.Channel)
	if !ok {
		return response.Error(c, remsvc.ErrInvalidChannel.Error(), fiber.StatusBadRequest, fiber.Map{"field": "channel"})
	}
	ids, err := validation.ParseUUIDs(body.FamilyIDs)
	if err != nil {
		return response.Error(c, remsvc.ErrInvalidFamilyID.Error(), fiber.StatusBadRequest, fiber.Map{"field": "family_ids"})
	}

	res, err := h.Service.SendReminders(c.Context(), remsvc.Request{
		WeddingID:       actor.WeddingID,
		AdminID:         actor.UserID,
		Channel:         ch,
		MessageTemplate: body.MessageTemplate,
		FamilyIDs:       ids,
	})
	switch {
	case err == nil:
	case errors.Is(err, remsvc.ErrRsvpCutoffPassed):
		return response.ErrorCode(c, err.Error(), fiber.StatusBadRequest, CodeCutoffPassed)
	case errors.Is(err, remsvc.ErrInvalidChannel):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, remsvc.ErrWeddingNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		ev := log.Error().Err(err).Str("wedding_id", actor.WeddingID.String())
		if errors.Is(err, tracking.ErrRecordFailed) {
			ev = ev.Bool("partial", true)
		}
		ev.Msg("reminder batch failed")
		return response.Internal(c)
	}
	return response.Success(c, "Reminders processed", res, nil)
}
