package families

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"regexp"
	"strings"

	"wedding-backend/internal/domain"
	"wedding-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFamilyNotFound   = errors.New("Family not found")
	ErrNameRequired     = errors.New("Family name is required")
	ErrInvalidEmail     = errors.New("Invalid email format")
	ErrInvalidPhone     = errors.New("Invalid phone number")
	ErrInvalidChannel   = errors.New("Invalid channel preference")
	ErrInvalidLanguage  = errors.New("Invalid language")
	ErrMemberNameNeeded = errors.New("Every member needs a name")
)

type Service struct {
	DB *gorm.DB
}

// ForWedding returns every family of the wedding with members, ordered by creation.
func (s *Service) ForWedding(ctx context.Context, weddingID uuid.UUID) ([]domain.Family, error) {
	var out []domain.Family
	err := s.DB.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("wedding_id = ?", weddingID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ByIDs returns the wedding's families among ids, in the order given.
// Unknown ids, ids of other weddings and duplicates are dropped.
func (s *Service) ByIDs(ctx context.Context, weddingID uuid.UUID, ids []uuid.UUID) ([]domain.Family, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []domain.Family
	err := s.DB.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("wedding_id = ? AND id IN ?", weddingID, ids).
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Family, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}
	out := make([]domain.Family, 0, len(found))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
			delete(byID, id)
		}
	}
	return out, nil
}

// ByToken resolves a magic token to its family, with members.
func (s *Service) ByToken(ctx context.Context, token string) (*domain.Family, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrFamilyNotFound
	}
	var f domain.Family
	err := s.DB.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("magic_token = ?", token).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFamilyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateInput is the admin payload for a new family.
type CreateInput struct {
	Name              string   `json:"name"`
	Email             *string  `json:"email"`
	Phone             *string  `json:"phone"`
	WhatsAppNumber    *string  `json:"whatsapp_number"`
	ChannelPreference *string  `json:"channel_preference"`
	PreferredLanguage string   `json:"preferred_language"`
	Members           []string `json:"members"`
}

var phoneRe = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)

// Create stores a family with a fresh magic token and reference code.
func (s *Service) Create(ctx context.Context, w *domain.Wedding, in CreateInput) (*domain.Family, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	f := &domain.Family{
		WeddingID:         w.ID,
		Name:              name,
		PreferredLanguage: w.DefaultLanguage,
	}
	if v := trimmed(in.Email); v != nil {
		if !validation.IsValidEmail(*v) {
			return nil, ErrInvalidEmail
		}
		lower := strings.ToLower(*v)
		f.Email = &lower
	}
	if v := trimmed(in.Phone); v != nil {
		if !phoneRe.MatchString(*v) {
			return nil, ErrInvalidPhone
		}
		f.Phone = v
	}
	if v := trimmed(in.WhatsAppNumber); v != nil {
		if !phoneRe.MatchString(*v) {
			return nil, ErrInvalidPhone
		}
		f.WhatsAppNumber = v
	}
	if v := trimmed(in.ChannelPreference); v != nil {
		ch, ok := domain.ParseChannel(*v)
		if !ok || !ch.Deliverable() {
			return nil, ErrInvalidChannel
		}
		f.ChannelPreference = &ch
	}
	if strings.TrimSpace(in.PreferredLanguage) != "" {
		lang, ok := domain.ParseLanguage(in.PreferredLanguage)
		if !ok {
			return nil, ErrInvalidLanguage
		}
		f.PreferredLanguage = lang
	}
	for _, m := range in.Members {
		if strings.TrimSpace(m) == "" {
			return nil, ErrMemberNameNeeded
		}
		f.Members = append(f.Members, domain.FamilyMember{Name: strings.TrimSpace(m)})
	}

	token, err := NewMagicToken()
	if err != nil {
		return nil, err
	}
	f.MagicToken = token
	code, err := NewReferenceCode(name)
	if err != nil {
		return nil, err
	}
	f.ReferenceCode = &code

	if err := s.DB.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// Summary is a family as shown in the admin list.
type Summary struct {
	domain.Family
	Responded bool `json:"responded"`
	Attending int  `json:"attending"`
	Declined  int  `json:"declined"`
	Pending   int  `json:"pending"`
}

// List returns the wedding's families with their RSVP state.
func (s *Service) List(ctx context.Context, weddingID uuid.UUID) ([]Summary, error) {
	fams, err := s.ForWedding(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(fams))
	for _, f := range fams {
		sum := Summary{Family: f, Responded: f.HasResponded()}
		for _, m := range f.Members {
			switch {
			case m.Attending == nil:
				sum.Pending++
			case *m.Attending:
				sum.Attending++
			default:
				sum.Declined++
			}
		}
		out = append(out, sum)
	}
	return out, nil
}

// NewMagicToken returns 32 random bytes, hex encoded.
func NewMagicToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var nonLetters = regexp.MustCompile(`[^A-Za-z]`)

// NewReferenceCode builds "<PREFIX>-<6 chars>" where PREFIX is up to four letters of name.
func NewReferenceCode(name string) (string, error) {
	prefix := strings.ToUpper(nonLetters.ReplaceAllString(name, ""))
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	for len(prefix) < 4 {
		prefix += "X"
	}
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return prefix + "-" + string(suffix), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
