package gifts

import (
	"context"
	"errors"
	"strings"

	"wedding-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrGiftNotFound     = errors.New("Gift not found")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter code")
	ErrAlreadyConfirmed = errors.New("Gift is already confirmed")
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	ReferenceCodeUsed *string         `json:"reference_code_used"`
	Note              string          `json:"note"`
}

// Create records an incoming gift. A reference code matching one of the wedding's families
// (case-insensitive) attaches the family and marks the gift RECEIVED; otherwise it stays PENDING.
func (s *Service) Create(ctx context.Context, weddingID uuid.UUID, in CreateInput) (*domain.Gift, error) {
	// stored with two decimals; anything that rounds to zero is rejected
	amount := in.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "EUR"
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}

	g := &domain.Gift{
		WeddingID: weddingID,
		Amount:    amount,
		Currency:  currency,
		Status:    domain.GiftPending,
		Note:      strings.TrimSpace(in.Note),
	}
	if in.ReferenceCodeUsed != nil {
		if code := strings.ToUpper(strings.TrimSpace(*in.ReferenceCodeUsed)); code != "" {
			g.ReferenceCodeUsed = &code
			var fam domain.Family
			err := s.DB.WithContext(ctx).
				Where("wedding_id = ? AND UPPER(reference_code) = ?", weddingID, code).
				First(&fam).Error
			switch {
			case err == nil:
				g.FamilyID = &fam.ID
				g.Status = domain.GiftReceived
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return nil, err
			}
		}
	}
	if err := s.DB.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// Confirm moves a RECEIVED or PENDING gift to CONFIRMED.
func (s *Service) Confirm(ctx context.Context, weddingID, id uuid.UUID) (*domain.Gift, error) {
	var g domain.Gift
	err := s.DB.WithContext(ctx).Where("id = ? AND wedding_id = ?", id, weddingID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGiftNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.Status == domain.GiftConfirmed {
		return nil, ErrAlreadyConfirmed
	}
	if err := s.DB.WithContext(ctx).Model(&g).Update("status", domain.GiftConfirmed).Error; err != nil {
		return nil, err
	}
	g.Status = domain.GiftConfirmed
	return &g, nil
}

func (s *Service) List(ctx context.Context, weddingID uuid.UUID) ([]domain.Gift, error) {
	var out []domain.Gift
	err := s.DB.WithContext(ctx).Where("wedding_id = ?", weddingID).Order("created_at DESC, id ASC").Find(&out).Error
	return out, err
}
