package templates

import (
	"context"
	"errors"
	"strings"

	"wedding-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTemplateNotFound = errors.New("Template not found")
	ErrInvalidType      = errors.New("Invalid template type")
	ErrInvalidLanguage  = errors.New("Invalid language")
	ErrInvalidChannel   = errors.New("Invalid channel")
	ErrBodyRequired     = errors.New("Template body is required")
)

type Service struct {
	DB *gorm.DB
}

// UpsertInput is the admin request body for PUT /templates.
type UpsertInput struct {
	Type     string  `json:"type"`
	Language string  `json:"language"`
	Channel  string  `json:"channel"`
	Subject  string  `json:"subject"`
	Body     string  `json:"body"`
	ImageURL *string `json:"image_url"`
}

// List returns the wedding's stored templates ordered by type, language, channel.
func (s *Service) List(ctx context.Context, weddingID uuid.UUID) ([]domain.MessageTemplate, error) {
	var out []domain.MessageTemplate
	err := s.DB.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Order("type ASC, language ASC, channel ASC").
		Find(&out).Error
	return out, err
}

// Upsert stores the template for its (wedding, type, language, channel) key.
func (s *Service) Upsert(ctx context.Context, weddingID uuid.UUID, in UpsertInput) (*domain.MessageTemplate, error) {
	typ, ok := domain.ParseMessageType(in.Type)
	if !ok {
		return nil, ErrInvalidType
	}
	lang, ok := domain.ParseLanguage(in.Language)
	if !ok {
		return nil, ErrInvalidLanguage
	}
	ch, ok := domain.ParseChannel(in.Channel)
	if !ok || !ch.Deliverable() {
		return nil, ErrInvalidChannel
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, ErrBodyRequired
	}
	var image *string
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) != "" {
		v := strings.TrimSpace(*in.ImageURL)
		image = &v
	}

	t := &domain.MessageTemplate{
		WeddingID: weddingID,
		Type:      typ,
		Language:  lang,
		Channel:   ch,
		Subject:   strings.TrimSpace(in.Subject),
		Body:      in.Body,
		ImageURL:  image,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wedding_id"}, {Name: "type"}, {Name: "language"}, {Name: "channel"}},
		DoUpdates: clause.AssignmentColumns([]string{"subject", "body", "image_url", "updated_at"}),
	}).Create(t).Error
	if err != nil {
		return nil, err
	}

	var stored domain.MessageTemplate
	if err := s.DB.WithContext(ctx).
		Where("wedding_id = ? AND type = ? AND language = ? AND channel = ?", weddingID, typ, lang, ch).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Delete removes a stored template so the built-in one applies again.
func (s *Service) Delete(ctx context.Context, weddingID, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND wedding_id = ?", id, weddingID).Delete(&domain.MessageTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
