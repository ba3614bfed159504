package weddings

import (
	"context"
	"testing"
	"time"

	"wedding-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Wedding{}))
	return db
}

func validInput() WeddingInput {
	return WeddingInput{
		CoupleNames:     "Ana & Luis",
		WeddingDate:     "2025-12-20",
		WeddingTime:     "18:00",
		Location:        "Sevilla",
		RSVPCutoffDate:  "2025-12-01",
		DefaultLanguage: "en",
	}
}

func TestCreate_BindsPlanner(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}
	ctx := context.Background()

	planner := domain.User{Email: "p@example.com", PasswordHash: "x", Fullname: "P", Role: "planner"}
	require.NoError(t, db.Create(&planner).Error)

	w, err := svc.Create(ctx, planner.UserID, validInput())
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEN, w.DefaultLanguage)
	assert.Equal(t, time.Date(2025, 12, 1, 23, 59, 59, 0, time.UTC), w.RSVPCutoffDate)

	var reloaded domain.User
	require.NoError(t, db.First(&reloaded, "user_id = ?", planner.UserID).Error)
	require.NotNil(t, reloaded.WeddingID)
	assert.Equal(t, w.ID, *reloaded.WeddingID)
}

func TestCreate_Validation(t *testing.T) {
	svc := &Service{DB: setupDB(t)}
	ctx := context.Background()

	in := validInput()
	in.CoupleNames = " "
	_, err := svc.Create(ctx, uuid.New(), in)
	assert.Equal(t, ErrCoupleRequired, err)

	in = validInput()
	in.WeddingDate = "20/12/2025"
	_, err = svc.Create(ctx, uuid.New(), in)
	assert.Equal(t, ErrInvalidDate, err)

	in = validInput()
	in.RSVPCutoffDate = "2026-01-01"
	_, err = svc.Create(ctx, uuid.New(), in)
	assert.Equal(t, ErrCutoffAfterDate, err)

	in = validInput()
	in.DefaultLanguage = "ja"
	_, err = svc.Create(ctx, uuid.New(), in)
	assert.Equal(t, ErrInvalidLanguage, err)
}

func TestGetUpdateDelete(t *testing.T) {
	svc := &Service{DB: setupDB(t)}
	ctx := context.Background()
	planner := uuid.New()

	w, err := svc.Create(ctx, planner, validInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, uuid.New())
	assert.Equal(t, ErrWeddingNotFound, err)

	in := validInput()
	in.Location = "Granada"
	_, err = svc.Update(ctx, uuid.New(), w.ID, in)
	assert.Equal(t, ErrNotWeddingPlanner, err)

	updated, err := svc.Update(ctx, planner, w.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Granada", updated.Location)

	list, err := svc.ListForPlanner(ctx, planner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, planner, w.ID))
	_, err = svc.Get(ctx, w.ID)
	assert.Equal(t, ErrWeddingNotFound, err)
}
