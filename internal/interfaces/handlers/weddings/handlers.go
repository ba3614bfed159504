package weddings

import (
	"errors"

	wedsvc "wedding-backend/internal/application/weddings"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *wedsvc.Service
	Config  middleware.SessionConfig
}

// Current GET /api/v1/admin/wedding returns the wedding bound to the session.
func (h *Handlers) Current(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	w, err := h.Service.Get(c.Context(), actor.WeddingID)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Wedding retrieved", w, nil)
}

// List GET /api/v1/weddings (planner)
func (h *Handlers) List(c *fiber.Ctx) error {
	uid, _, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	list, err := h.Service.ListForPlanner(c.Context(), uid)
	if err != nil {
		return response.Internal(c)
	}
	return response.Success(c, "Weddings retrieved", list, fiber.Map{"count": len(list)})
}

// Create POST /api/v1/weddings. The new wedding becomes the session's wedding.
func (h *Handlers) Create(c *fiber.Ctx) error {
	uid, _, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in wedsvc.WeddingInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	w, err := h.Service.Create(c.Context(), uid, in)
	if err != nil {
		return h.fail(c, err)
	}
	h.bind(c, w.ID)
	return response.SuccessCreated(c, "Wedding created", w, nil)
}

// Update PUT /api/v1/weddings/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	uid, _, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid wedding id", fiber.StatusBadRequest, nil)
	}
	var in wedsvc.WeddingInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	w, err := h.Service.Update(c.Context(), uid, id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Wedding updated", w, nil)
}

// Select POST /api/v1/weddings/:id/select binds one of the planner's weddings to the session.
func (h *Handlers) Select(c *fiber.Ctx) error {
	uid, _, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid wedding id", fiber.StatusBadRequest, nil)
	}
	w, err := h.Service.Owned(c.Context(), uid, id)
	if err != nil {
		return h.fail(c, err)
	}
	h.bind(c, w.ID)
	return response.Success(c, "Wedding selected", w, nil)
}

// Delete DELETE /api/v1/weddings/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	uid, _, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid wedding id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), uid, id); err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Wedding deleted", nil, nil)
}

// bind rewrites the session user with the wedding id under a fresh session id.
func (h *Handlers) bind(c *fiber.Ctx, weddingID uuid.UUID) {
	m, _ := middleware.GetUser(c).(map[string]interface{})
	str := func(k string) string {
		s, _ := m[k].(string)
		return s
	}
	wid := weddingID.String()
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:    str("user_id"),
		Fullname:  str("fullname"),
		Email:     str("email"),
		Role:      str("role"),
		WeddingID: &wid,
	})
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)
}

func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wedsvc.ErrWeddingNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, wedsvc.ErrNotWeddingPlanner):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, wedsvc.ErrCoupleRequired), errors.Is(err, wedsvc.ErrInvalidDate),
		errors.Is(err, wedsvc.ErrCutoffAfterDate), errors.Is(err, wedsvc.ErrInvalidLanguage):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Internal(c)
	}
}
