package reminders

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"wedding-backend/internal/application/families"
	"wedding-backend/internal/application/invitations"
	"wedding-backend/internal/application/notifications"
	remsvc "wedding-backend/internal/application/reminders"
	"wedding-backend/internal/application/templates"
	"wedding-backend/internal/application/tracking"
	"wedding-backend/internal/application/weddings"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/infrastructure/database"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/constants"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type okTransport struct{}

func (okTransport) Send(ctx context.Context, out notifications.Outbound) (string, error) {
	return "id-" + out.To, nil
}

type env struct {
	app     *fiber.App
	db      *gorm.DB
	svc     *remsvc.Service
	wedding *domain.Wedding
	user    map[string]interface{}
}

func setupRemindersTest(t *testing.T) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ws, fs := &weddings.Service{DB: db}, &families.Service{DB: db}
	ts, tr := &templates.Service{DB: db}, &tracking.Service{DB: db}
	inv := &invitations.Service{Rdb: rdb, Weddings: ws, Families: fs, Templates: ts, Tracking: tr, Transport: okTransport{}, BaseURL: "https://bodas.example.com"}
	svc := &remsvc.Service{
		Rdb: rdb, Weddings: ws, Families: fs, Templates: ts, Tracking: tr,
		Invitations: inv, Transport: okTransport{}, BaseURL: "https://bodas.example.com",
		Now: func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) },
	}

	w := &domain.Wedding{
		CoupleNames:    "Ana & Luis",
		WeddingDate:    time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		RSVPCutoffDate: time.Date(2025, 12, 1, 23, 59, 59, 0, time.UTC),
	}
	require.NoError(t, db.Create(w).Error)

	e := &env{db: db, svc: svc, wedding: w}
	e.user = map[string]interface{}{
		"user_id":    uuid.New().String(),
		"fullname":   "Lucía",
		"email":      "lucia@example.com",
		"role":       constants.WeddingAdmin,
		"wedding_id": w.ID.String(),
	}
	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if e.user != nil {
			c.Locals("user", e.user)
		}
		return c.Next()
	})
	app.Post("/api/v1/admin/reminders",
		middleware.RequireAuth(),
		middleware.AuthorizePermission(constants.SendReminders),
		middleware.RequireWedding(),
		h.Send)
	e.app = app
	return e
}

func (e *env) post(t *testing.T, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/admin/reminders", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func (e *env) family(t *testing.T, name string, attending *bool, invited bool) *domain.Family {
	t.Helper()
	email := name + "@example.com"
	f := &domain.Family{
		WeddingID:  e.wedding.ID,
		Name:       name,
		Email:      &email,
		MagicToken: "tok-" + name,
		Members:    []domain.FamilyMember{{Name: name + " 1", Attending: attending}},
	}
	require.NoError(t, e.db.Create(f).Error)
	if invited {
		_, err := e.svc.Tracking.Record(context.Background(), tracking.Event{WeddingID: e.wedding.ID, FamilyID: f.ID, Type: domain.EventInvitationSent})
		require.NoError(t, err)
	}
	return f
}

func TestSend_ExplicitFamilyScenario(t *testing.T) {
	e := setupRemindersTest(t)
	yes := true
	e.family(t, "a", nil, true)
	e.family(t, "b", &yes, false)
	c := e.family(t, "c", nil, false)

	status, body := e.post(t, map[string]interface{}{"channel": "EMAIL", "family_ids": []string{c.ID.String()}})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["sent_count"])
	assert.Equal(t, float64(0), data["failed_count"])
	assert.Equal(t, []interface{}{c.ID.String()}, data["recipient_families"])

	var n int64
	e.db.Model(&domain.TrackingEvent{}).Where("family_id = ? AND event_type = ?", c.ID, domain.EventInvitationSent).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestSend_LowercaseChannelAccepted(t *testing.T) {
	e := setupRemindersTest(t)
	e.family(t, "a", nil, true)

	status, body := e.post(t, map[string]interface{}{"channel": "preferred"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["sent_count"])
}

func TestSend_CutoffPassed(t *testing.T) {
	e := setupRemindersTest(t)
	e.family(t, "a", nil, true)
	e.svc.Now = func() time.Time { return time.Date(2025, 12, 2, 8, 0, 0, 0, time.UTC) }

	status, body := e.post(t, map[string]interface{}{"channel": "EMAIL"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, CodeCutoffPassed, errObj["details"].(map[string]interface{})["code"])

	var n int64
	e.db.Model(&domain.TrackingEvent{}).Where("event_type <> ?", domain.EventInvitationSent).Count(&n)
	assert.Equal(t, int64(0), n)
}

func TestSend_ValidationErrors(t *testing.T) {
	e := setupRemindersTest(t)

	status, _ := e.post(t, map[string]interface{}{"channel": "FAX"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = e.post(t, map[string]interface{}{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := e.post(t, map[string]interface{}{"channel": "SMS", "family_ids": []string{"not-a-uuid"}})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "family_ids", body["error"].(map[string]interface{})["details"].(map[string]interface{})["field"])

	status, _ = e.post(t, map[string]interface{}{"channel": "SMS", "family_ids": "abc"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSend_AuthErrors(t *testing.T) {
	e := setupRemindersTest(t)
	user := e.user

	e.user = nil
	status, _ := e.post(t, map[string]interface{}{"channel": "EMAIL"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	e.user = map[string]interface{}{"user_id": user["user_id"], "role": "guest", "wedding_id": user["wedding_id"]}
	status, _ = e.post(t, map[string]interface{}{"channel": "EMAIL"})
	assert.Equal(t, fiber.StatusForbidden, status)

	e.user = map[string]interface{}{"user_id": user["user_id"], "role": constants.Planner, "wedding_id": nil}
	status, _ = e.post(t, map[string]interface{}{"channel": "EMAIL"})
	assert.Equal(t, fiber.StatusForbidden, status)
}
