package auth

import (
	"errors"

	authsvc "wedding-backend/internal/application/auth"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/constants"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userSessionsPrefix = "user_sessions:"

type Handlers struct {
	UserFinder authsvc.UserFinder
	Service    *authsvc.Service
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Internal(c)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByEmailAndPassword(c.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, authsvc.ErrEmailPasswordRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, authsvc.ErrInvalidEmail), errors.Is(err, authsvc.ErrIncorrectPassword):
		return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
	default:
		log.Error().Err(err).Msg("login lookup failed")
		return response.Internal(c)
	}

	sessionID := middleware.RegenerateSessionID(c)
	weddingID := nilString(user.WeddingID)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:    user.UserID.String(),
		Fullname:  user.Fullname,
		Email:     user.Email,
		Role:      user.Role,
		WeddingID: weddingID,
	})

	if h.Rdb != nil {
		if err := h.Rdb.SAdd(c.Context(), userSessionsPrefix+user.UserID.String(), sessionID).Err(); err != nil {
			return response.Internal(c)
		}
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{
		"user": authsvc.SessionUserShape{
			UserID:    user.UserID.String(),
			Fullname:  user.Fullname,
			Email:     user.Email,
			Role:      user.Role,
			WeddingID: weddingID,
		},
	}, nil)
}

// Me GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		log.Debug().Bool("session_id_present", middleware.GetSessionID(c) != "").Msg("auth/me: not authenticated")
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	if h.Rdb != nil && sessionID != "" {
		if m, ok := middleware.GetUser(c).(map[string]interface{}); ok {
			if userID, _ := m["user_id"].(string); userID != "" {
				_ = h.Rdb.SRem(c.Context(), userSessionsPrefix+userID, sessionID).Err()
			}
		}
		_ = h.Rdb.Del(c.Context(), middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)
	return response.Success(c, "Logged out successfully", nil, nil)
}

// CreateUser POST /api/v1/admin/users. Planners create wedding admins for their
// current wedding; wedding_id is taken from the session, not the body.
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Forbidden(c, "No wedding selected for this session")
	}
	var in authsvc.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	in.Role = constants.WeddingAdmin
	in.WeddingID = &actor.WeddingID

	u, err := h.Service.Register(c.Context(), in)
	switch {
	case err == nil:
		return response.SuccessCreated(c, "User created", u, nil)
	case errors.Is(err, authsvc.ErrEmailTaken):
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	case errors.Is(err, authsvc.ErrEmailPasswordRequired), errors.Is(err, authsvc.ErrInvalidEmail),
		errors.Is(err, authsvc.ErrWeakPassword), errors.Is(err, authsvc.ErrInvalidFullname),
		errors.Is(err, authsvc.ErrInvalidRole):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Internal(c)
	}
}

func nilString(u *uuid.UUID) *string {
	if u == nil {
		return nil
	}
	s := u.String()
	return &s
}
