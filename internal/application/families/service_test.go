package families

import (
	"context"
	"regexp"
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
	require.NoError(t, db.AutoMigrate(&domain.Wedding{}, &domain.Family{}, &domain.FamilyMember{}))
	return db
}

func seedWedding(t *testing.T, db *gorm.DB) *domain.Wedding {
	t.Helper()
	w := &domain.Wedding{CoupleNames: "Ana & Luis", WeddingDate: time.Now().AddDate(0, 6, 0), RSVPCutoffDate: time.Now().AddDate(0, 5, 0), DefaultLanguage: domain.LanguageIT}
	require.NoError(t, db.Create(w).Error)
	return w
}

func str(s string) *string { return &s }

func TestCreate(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}
	w := seedWedding(t, db)

	f, err := svc.Create(context.Background(), w, CreateInput{
		Name:              "García López",
		Email:             str(" Ana@Example.com "),
		ChannelPreference: str("whatsapp"),
		WhatsAppNumber:    str("+34 600 11 22 33"),
		Members:           []string{"Ana", "Luis"},
	})
	require.NoError(t, err)
	assert.Len(t, f.MagicToken, 64)
	require.NotNil(t, f.ReferenceCode)
	assert.Regexp(t, regexp.MustCompile(`^GARC-[A-Z2-9]{6}$`), *f.ReferenceCode)
	assert.Equal(t, "ana@example.com", *f.Email)
	assert.Equal(t, domain.LanguageIT, f.PreferredLanguage)
	assert.Equal(t, domain.ChannelWhatsApp, *f.ChannelPreference)
	assert.Len(t, f.Members, 2)
}

func TestCreate_Validation(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}
	w := seedWedding(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, w, CreateInput{Name: " "})
	assert.Equal(t, ErrNameRequired, err)
	_, err = svc.Create(ctx, w, CreateInput{Name: "A", Email: str("nope")})
	assert.Equal(t, ErrInvalidEmail, err)
	_, err = svc.Create(ctx, w, CreateInput{Name: "A", Phone: str("abc")})
	assert.Equal(t, ErrInvalidPhone, err)
	_, err = svc.Create(ctx, w, CreateInput{Name: "A", ChannelPreference: str("PREFERRED")})
	assert.Equal(t, ErrInvalidChannel, err)
	_, err = svc.Create(ctx, w, CreateInput{Name: "A", PreferredLanguage: "xx-invalid-"})
	assert.Equal(t, ErrInvalidLanguage, err)
	_, err = svc.Create(ctx, w, CreateInput{Name: "A", Members: []string{""}})
	assert.Equal(t, ErrMemberNameNeeded, err)
}

func TestByIDs_KeepsRequestOrder(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}
	w := seedWedding(t, db)
	other := seedWedding(t, db)
	ctx := context.Background()

	a, err := svc.Create(ctx, w, CreateInput{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, w, CreateInput{Name: "B"})
	require.NoError(t, err)
	foreign, err := svc.Create(ctx, other, CreateInput{Name: "X"})
	require.NoError(t, err)

	got, err := svc.ByIDs(ctx, w.ID, []uuid.UUID{b.ID, uuid.New(), a.ID, foreign.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}

func TestListAndByToken(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}
	w := seedWedding(t, db)
	ctx := context.Background()

	f, err := svc.Create(ctx, w, CreateInput{Name: "A", Members: []string{"Uno", "Dos", "Tres"}})
	require.NoError(t, err)
	yes, no := true, false
	require.NoError(t, db.Model(&domain.FamilyMember{}).Where("id = ?", f.Members[0].ID).Update("attending", &yes).Error)
	require.NoError(t, db.Model(&domain.FamilyMember{}).Where("id = ?", f.Members[1].ID).Update("attending", &no).Error)

	list, err := svc.List(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Responded)
	assert.Equal(t, 1, list[0].Attending)
	assert.Equal(t, 1, list[0].Declined)
	assert.Equal(t, 1, list[0].Pending)

	byToken, err := svc.ByToken(ctx, f.MagicToken)
	require.NoError(t, err)
	assert.Equal(t, f.ID, byToken.ID)
	assert.Len(t, byToken.Members, 3)

	_, err = svc.ByToken(ctx, "missing")
	assert.Equal(t, ErrFamilyNotFound, err)
}

func TestNewReferenceCode_ShortName(t *testing.T) {
	code, err := NewReferenceCode("Li")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^LIXX-[A-Z2-9]{6}$`), code)
}
