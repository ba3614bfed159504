package gifts

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	giftsvc "wedding-backend/internal/application/gifts"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGiftsTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Family{}, &domain.Gift{}))
	weddingID := uuid.New()
	code := "ROSS-AB23CD"
	require.NoError(t, db.Create(&domain.Family{WeddingID: weddingID, Name: "Rossi", MagicToken: "t", ReferenceCode: &code}).Error)

	h := &Handlers{Service: &giftsvc.Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": uuid.New().String(), "role": "wedding_admin", "wedding_id": weddingID.String()})
		return c.Next()
	})
	app.Use(middleware.RequireWedding())
	app.Get("/gifts", h.List)
	app.Post("/gifts", h.Create)
	app.Patch("/gifts/:id/confirm", h.Confirm)
	return app
}

func req(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	rq := httptest.NewRequest(method, path, r)
	rq.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(rq)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestGiftFlow(t *testing.T) {
	app := setupGiftsTest(t)

	status, body := req(t, app, "POST", "/gifts", map[string]interface{}{"amount": 200, "reference_code_used": "ross-ab23cd"})
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "RECEIVED", data["status"])
	assert.Equal(t, "200", data["amount"])
	assert.Equal(t, true, body["metadata"].(map[string]interface{})["matched"])
	id := data["id"].(string)

	status, body = req(t, app, "PATCH", "/gifts/"+id+"/confirm", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "CONFIRMED", body["data"].(map[string]interface{})["status"])

	status, _ = req(t, app, "PATCH", "/gifts/"+id+"/confirm", nil)
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = req(t, app, "GET", "/gifts", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)
}

func TestCreate_BadAmount(t *testing.T) {
	app := setupGiftsTest(t)
	status, _ := req(t, app, "POST", "/gifts", map[string]interface{}{"amount": -5})
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = req(t, app, "POST", "/gifts", map[string]interface{}{"amount": "12.5x"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
