package rsvp

import (
	"errors"

	"wedding-backend/internal/application/families"
	rsvpsvc "wedding-backend/internal/application/rsvp"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// CodeRsvpClosed is details.code when a guest answers after the cutoff.
const CodeRsvpClosed = "RSVP_CUTOFF_PASSED"

type Handlers struct {
	Service *rsvpsvc.Service
}

// Get GET /api/v1/rsvp/:token
func (h *Handlers) Get(c *fiber.Ctx) error {
	view, err := h.Service.Open(c.Context(), c.Params("token"))
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "RSVP retrieved", view, nil)
}

// Submit POST /api/v1/rsvp/:token
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var in rsvpsvc.SubmitInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	res, err := h.Service.Submit(c.Context(), c.Params("token"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "RSVP saved", res, nil)
}

func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, families.ErrFamilyNotFound):
		return response.Error(c, "Invitation not found", fiber.StatusNotFound, nil)
	case errors.Is(err, rsvpsvc.ErrRsvpClosed):
		return response.ErrorCode(c, err.Error(), fiber.StatusBadRequest, CodeRsvpClosed)
	case errors.Is(err, rsvpsvc.ErrNoAnswers), errors.Is(err, rsvpsvc.ErrUnknownMember),
		errors.Is(err, rsvpsvc.ErrAttendingRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("rsvp request failed")
		return response.Internal(c)
	}
}
