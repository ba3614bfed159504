package rsvp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"wedding-backend/internal/application/families"
	"wedding-backend/internal/application/notifications"
	rsvpsvc "wedding-backend/internal/application/rsvp"
	"wedding-backend/internal/application/templates"
	"wedding-backend/internal/application/tracking"
	"wedding-backend/internal/application/weddings"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopTransport struct{}

func (nopTransport) Send(ctx context.Context, out notifications.Outbound) (string, error) {
	return "", nil
}

func setupRsvpTest(t *testing.T) (*fiber.App, *rsvpsvc.Service, *domain.Family) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	w := &domain.Wedding{CoupleNames: "Ana & Luis", WeddingDate: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), RSVPCutoffDate: time.Date(2025, 12, 1, 23, 59, 59, 0, time.UTC)}
	require.NoError(t, db.Create(w).Error)
	f := &domain.Family{WeddingID: w.ID, Name: "Rossi", MagicToken: "tok-rossi", Members: []domain.FamilyMember{{Name: "Gianni"}}}
	require.NoError(t, db.Create(f).Error)

	svc := &rsvpsvc.Service{
		DB:        db,
		Weddings:  &weddings.Service{DB: db},
		Families:  &families.Service{DB: db},
		Templates: &templates.Service{DB: db},
		Tracking:  &tracking.Service{DB: db},
		Transport: nopTransport{},
		Now:       func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Get("/rsvp/:token", h.Get)
	app.Post("/rsvp/:token", h.Submit)
	return app, svc, f
}

func send(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
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

func TestGet(t *testing.T) {
	app, _, _ := setupRsvpTest(t)

	status, body := send(t, app, "GET", "/rsvp/tok-rossi", nil)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Ana & Luis", data["wedding"].(map[string]interface{})["couple_names"])
	_, hasToken := data["family"].(map[string]interface{})["magic_token"]
	assert.False(t, hasToken)

	status, _ = send(t, app, "GET", "/rsvp/unknown", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSubmit(t *testing.T) {
	app, svc, f := setupRsvpTest(t)
	member := f.Members[0].ID.String()

	status, body := send(t, app, "POST", "/rsvp/tok-rossi", map[string]interface{}{
		"members": []map[string]interface{}{{"id": member, "attending": true}},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]interface{})["confirmation_sent"])

	status, _ = send(t, app, "POST", "/rsvp/tok-rossi", map[string]interface{}{"members": []interface{}{}})
	assert.Equal(t, fiber.StatusBadRequest, status)

	svc.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	status, body = send(t, app, "POST", "/rsvp/tok-rossi", map[string]interface{}{
		"members": []map[string]interface{}{{"id": member, "attending": false}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, CodeRsvpClosed, body["error"].(map[string]interface{})["details"].(map[string]interface{})["code"])
}
