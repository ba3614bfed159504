package templates

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	tplsvc "wedding-backend/internal/application/templates"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTemplatesTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.MessageTemplate{}))

	h := &Handlers{Service: &tplsvc.Service{DB: db}}
	weddingID := uuid.New()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": uuid.New().String(), "role": "wedding_admin", "wedding_id": weddingID.String()})
		return c.Next()
	})
	app.Use(middleware.RequireWedding())
	app.Get("/templates", h.List)
	app.Put("/templates", h.Upsert)
	app.Delete("/templates/:id", h.Delete)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestUpsertListDelete(t *testing.T) {
	app := setupTemplatesTest(t)

	status, body := do(t, app, "PUT", "/templates", map[string]string{
		"type": "reminder", "language": "en", "channel": "email",
		"subject": "Reminder", "body": "Hi {{familyName}}",
	})
	require.Equal(t, fiber.StatusOK, status)
	id := body["data"].(map[string]interface{})["id"].(string)

	status, body = do(t, app, "GET", "/templates", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _ = do(t, app, "DELETE", "/templates/"+id, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do(t, app, "DELETE", "/templates/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = do(t, app, "DELETE", "/templates/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpsert_Invalid(t *testing.T) {
	app := setupTemplatesTest(t)
	status, _ := do(t, app, "PUT", "/templates", map[string]string{"type": "POSTCARD", "language": "ES", "channel": "EMAIL", "body": "x"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = do(t, app, "PUT", "/templates", map[string]string{"type": "REMINDER", "language": "ES", "channel": "EMAIL"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
