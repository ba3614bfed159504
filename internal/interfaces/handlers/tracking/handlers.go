package tracking

import (
	"strings"

	tracksvc "wedding-backend/internal/application/tracking"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *tracksvc.Service
}

// List GET /api/v1/admin/tracking-events?family_id=&event_type=&limit=
func (h *Handlers) List(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	var f tracksvc.ListFilter
	if v := c.Query("family_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid family_id", fiber.StatusBadRequest, nil)
		}
		f.FamilyID = id
	}
	if v := c.Query("event_type"); v != "" {
		f.EventType = domain.EventType(strings.ToUpper(v))
	}
	f.Limit = c.QueryInt("limit", 0)

	events, err := h.Service.ListWeddingEvents(c.Context(), actor.WeddingID, f)
	if err != nil {
		return response.Internal(c)
	}
	return response.Success(c, "Tracking events retrieved", events, fiber.Map{"count": len(events)})
}
