package middleware

import (
	"wedding-backend/internal/pkg/constants"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizePermission lets the request through when the session role is listed for permission
// in constants.PermissionRoles. A permission missing from the table is a wiring bug and answers 500.
func AuthorizePermission(permission string) fiber.Handler {
	if _, ok := constants.PermissionRoles[permission]; !ok {
		return func(c *fiber.Ctx) error {
			Logger(c).Error().Str("permission", permission).Msg("permission not configured")
			return response.Error(c, "Permission configuration error", fiber.StatusInternalServerError, nil)
		}
	}
	return func(c *fiber.Ctx) error {
		m, ok := GetUser(c).(map[string]interface{})
		if !ok || m == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		role := stringField(m, "role")
		if !constants.AllowedRole(permission, role) {
			Logger(c).Warn().
				Str("permission", permission).
				Str("role", role).
				Str("user_id", stringField(m, "user_id")).
				Msg("permission denied")
			return response.Forbidden(c, "User is Forbidden from performing this action")
		}
		return c.Next()
	}
}
