package invitations

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"wedding-backend/internal/application/families"
	invsvc "wedding-backend/internal/application/invitations"
	"wedding-backend/internal/application/notifications"
	"wedding-backend/internal/application/templates"
	"wedding-backend/internal/application/tracking"
	"wedding-backend/internal/application/weddings"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/infrastructure/database"
	"wedding-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type okTransport struct{}

func (okTransport) Send(ctx context.Context, out notifications.Outbound) (string, error) {
	return "", nil
}

func setupInvitationsTest(t *testing.T) (*fiber.App, *gorm.DB, *domain.Wedding) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	w := &domain.Wedding{CoupleNames: "Ana & Luis", WeddingDate: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), RSVPCutoffDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(w).Error)

	h := &Handlers{Service: &invsvc.Service{
		Weddings:  &weddings.Service{DB: db},
		Families:  &families.Service{DB: db},
		Templates: &templates.Service{DB: db},
		Tracking:  &tracking.Service{DB: db},
		Transport: okTransport{},
		BaseURL:   "https://bodas.example.com",
	}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":    uuid.New().String(),
			"role":       "wedding_admin",
			"wedding_id": w.ID.String(),
		})
		return c.Next()
	})
	app.Post("/send", middleware.RequireWedding(), h.Send)
	return app, db, w
}

func post(t *testing.T, app *fiber.App, body interface{}) (int, map[string]interface{}) {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/send", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestSend_InvitesOnceThenSkips(t *testing.T) {
	app, db, w := setupInvitationsTest(t)
	email := "garcia@example.com"
	f := &domain.Family{WeddingID: w.ID, Name: "García", Email: &email, MagicToken: "tok-garcia"}
	require.NoError(t, db.Create(f).Error)

	status, body := post(t, app, map[string]interface{}{})
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["sent_count"])

	status, body = post(t, app, map[string]interface{}{"channel": "EMAIL", "family_ids": []string{f.ID.String()}})
	require.Equal(t, fiber.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["sent_count"])
	assert.Equal(t, []interface{}{f.ID.String()}, data["skipped_families"])
}

func TestSend_BadInput(t *testing.T) {
	app, _, _ := setupInvitationsTest(t)

	status, _ := post(t, app, map[string]interface{}{"channel": "PIGEON"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = post(t, app, map[string]interface{}{"family_ids": []string{"x"}})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
