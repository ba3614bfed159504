package health

import (
	"encoding/json"
	"strconv"
	"time"

	healthsvc "wedding-backend/internal/application/health"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const serviceName = "wedding-api"

type Handlers struct {
	Rdb            *redis.Client
	Collector      *healthsvc.Collector
	HealthAdminKey string
}

// Index GET / is a liveness probe; it touches nothing.
func (h *Handlers) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"service": serviceName, "status": "up", "time": time.Now().UTC()})
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	r := h.Collector.Collect(c.Context())
	status := fiber.StatusOK
	if r.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"service":      serviceName,
		"status":       r.Status,
		"runtime":      r.Runtime,
		"traffic":      r.Traffic,
		"dependencies": r.Dependencies,
	})
}

// Errors GET /health/errors returns the last 50 logged 5xx entries.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return c.JSON([]interface{}{})
	}
	entries, err := h.Rdb.LRange(c.Context(), middleware.KeyErrorLog, 0, 49).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(s), &m) == nil && m != nil {
			out = append(out, m)
		}
	}
	return c.JSON(out)
}

// Reset GET /health/reset?key=HEALTH_ADMIN_KEY clears the counters.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey || h.Rdb == nil {
		return response.Forbidden(c, "Unauthorized")
	}
	ctx := c.Context()
	keys := []string{middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq, middleware.KeyErrorLog}
	if err := h.Rdb.Del(ctx, keys...).Err(); err != nil {
		return response.Internal(c)
	}
	if err := h.Rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err(); err != nil {
		return response.Internal(c)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}
