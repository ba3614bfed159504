package templates

import (
	"context"
	"errors"

	"wedding-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolved is the template to render for one send.
type Resolved struct {
	Subject  string
	Body     string
	CTA      string
	ImageURL string
	Stored   bool
}

// Rendered is a Resolved template with placeholders filled in.
type Rendered struct {
	Subject  string
	Body     string
	CTA      string
	ImageURL string
}

// Render fills the subject, body and CTA of r.
func (r Resolved) Render(values map[string]string) Rendered {
	return Rendered{
		Subject:  Render(r.Subject, values),
		Body:     Render(r.Body, values),
		CTA:      Render(r.CTA, values),
		ImageURL: r.ImageURL,
	}
}

// Resolve returns the stored template for (wedding, type, language, channel), or the
// built-in one for that language and type when none is stored.
func (s *Service) Resolve(ctx context.Context, weddingID uuid.UUID, typ domain.MessageType, lang domain.Language, ch domain.Channel) (Resolved, error) {
	builtin := BuiltinFor(lang, typ)

	var t domain.MessageTemplate
	err := s.DB.WithContext(ctx).
		Where("wedding_id = ? AND type = ? AND language = ? AND channel = ?", weddingID, typ, lang, ch).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Resolved{
			Subject: builtin.Subject,
			Body:    builtin.Greeting + "\n\n" + builtin.Body,
			CTA:     builtin.CTA,
		}, nil
	}
	if err != nil {
		return Resolved{}, err
	}

	out := Resolved{Subject: t.Subject, Body: t.Body, CTA: builtin.CTA, Stored: true}
	if out.Subject == "" {
		out.Subject = builtin.Subject
	}
	if t.ImageURL != nil {
		out.ImageURL = *t.ImageURL
	}
	return out, nil
}
