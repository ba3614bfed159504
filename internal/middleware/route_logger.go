package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RouteLogger writes one line per finished request. Probe and metrics traffic is logged at debug.
// Admin requests carry the session's user and wedding.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		var evt *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = Logger(c).Error()
		case quietPath(c.Path()):
			evt = Logger(c).Debug()
		default:
			evt = Logger(c).Info()
		}
		if m, ok := GetUser(c).(map[string]interface{}); ok && m != nil {
			evt = evt.Str("user_id", stringField(m, "user_id")).Str("wedding_id", stringField(m, "wedding_id"))
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}

func quietPath(p string) bool {
	return p == "/" || p == "/metrics" || strings.HasPrefix(p, "/health")
}
