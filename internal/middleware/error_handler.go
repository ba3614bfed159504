package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const errorLogSize = 50

// NewErrorHandler returns the global Fiber error handler. Unhandled errors are logged
// and, when rdb is set, pushed onto the health error log.
func NewErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			Logger(c).Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
			if rdb != nil {
				entry, _ := json.Marshal(map[string]interface{}{
					"time":    time.Now(),
					"path":    c.OriginalURL(),
					"method":  c.Method(),
					"message": err.Error(),
				})
				ctx := context.Background()
				_ = rdb.LPush(ctx, KeyErrorLog, entry).Err()
				_ = rdb.LTrim(ctx, KeyErrorLog, 0, errorLogSize-1).Err()
			}
		}
		return response.Error(c, message, code, nil)
	}
}
