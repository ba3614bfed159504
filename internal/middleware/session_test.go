package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_LoadsUserFromRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	wid := uuid.New().String()
	uid := uuid.New().String()
	b, _ := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{"user_id": uid, "role": "wedding_admin", "wedding_id": wid},
	})
	require.NoError(t, mr.Set(SessionRedisPrefix+"abc", string(b)))

	app := fiber.New()
	app.Use(SessionWithClient(rdb))
	app.Get("/", RequireWedding(), func(c *fiber.Ctx) error {
		actor, _ := CurrentActor(c)
		return c.SendString(actor.UserID.String())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", SessionCookieName+"=s:abc.sig")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestSession_PersistsAfterLogin(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	wid := uuid.New().String()
	app := fiber.New()
	app.Use(SessionWithClient(rdb))
	app.Post("/login", func(c *fiber.Ctx) error {
		sid := RegenerateSessionID(c)
		SetSessionUser(c, SessionUser{UserID: uuid.New().String(), Role: "planner", WeddingID: &wid})
		return c.SendString(sid)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	sid, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	stored, err := mr.Get(SessionRedisPrefix + string(sid))
	require.NoError(t, err)
	assert.Contains(t, stored, wid)
}
