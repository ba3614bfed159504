package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	traceIDHeader = "X-Trace-Id"
	traceIDLocal  = "trace_id"
	loggerLocal   = "logger"
)

// Tracing tags the request with a trace id (an incoming valid X-Trace-Id is kept) and stores
// a request logger carrying it, also attached to the user context (zerolog.Ctx).
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(traceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.NewString()
		}
		logger := log.With().Str("trace_id", traceID).Logger()
		c.Locals(traceIDLocal, traceID)
		c.Locals(loggerLocal, &logger)
		c.SetUserContext(logger.WithContext(c.UserContext()))
		c.Set(traceIDHeader, traceID)
		return c.Next()
	}
}

func GetTraceID(c *fiber.Ctx) string {
	if id, ok := c.Locals(traceIDLocal).(string); ok {
		return id
	}
	return ""
}

// Logger returns the request logger, or the global one outside Tracing.
func Logger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(loggerLocal).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &log.Logger
}
