package middleware

import (
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// Actor is the authenticated admin acting on one wedding.
type Actor struct {
	UserID    uuid.UUID
	Role      string
	WeddingID uuid.UUID
}

// CurrentActor reads the admin id, role and wedding id out of the session user.
// ok is false when any of them is missing or malformed.
func CurrentActor(c *fiber.Ctx) (Actor, bool) {
	m, isMap := GetUser(c).(map[string]interface{})
	if !isMap {
		return Actor{}, false
	}
	uid, err := uuid.Parse(stringField(m, "user_id"))
	if err != nil {
		return Actor{}, false
	}
	wid, err := uuid.Parse(stringField(m, "wedding_id"))
	if err != nil {
		return Actor{}, false
	}
	return Actor{UserID: uid, Role: stringField(m, "role"), WeddingID: wid}, true
}

// RequireWedding rejects sessions that are not bound to a wedding (403).
func RequireWedding() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUser(c) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		actor, ok := CurrentActor(c)
		if !ok {
			return response.Error(c, "No wedding selected for this session", fiber.StatusForbidden, nil)
		}
		c.Locals("actor", actor)
		return c.Next()
	}
}

func stringField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	}
	return ""
}

// GetActor returns the actor RequireWedding stored; ok is false outside that middleware.
func GetActor(c *fiber.Ctx) (Actor, bool) {
	a, ok := c.Locals("actor").(Actor)
	return a, ok
}

// CurrentUserID returns the session user's id and role without requiring a wedding.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, string, bool) {
	m, isMap := GetUser(c).(map[string]interface{})
	if !isMap {
		return uuid.Nil, "", false
	}
	uid, err := uuid.Parse(stringField(m, "user_id"))
	if err != nil {
		return uuid.Nil, "", false
	}
	return uid, stringField(m, "role"), true
}
