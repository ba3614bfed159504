package rsvp

import (
	"context"
	"errors"
	"time"

	"wedding-backend/internal/application/families"
	"wedding-backend/internal/application/invitations"
	"wedding-backend/internal/application/notifications"
	"wedding-backend/internal/application/templates"
	"wedding-backend/internal/application/tracking"
	"wedding-backend/internal/application/weddings"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrRsvpClosed        = errors.New("RSVP is closed for this wedding")
	ErrNoAnswers         = errors.New("members is required")
	ErrUnknownMember     = errors.New("Member does not belong to this family")
	ErrAttendingRequired = errors.New("attending must be true or false for every member")
)

// Service is the guest-facing side reached through the magic link.
type Service struct {
	DB        *gorm.DB
	Weddings  *weddings.Service
	Families  *families.Service
	Templates *templates.Service
	Tracking  *tracking.Service
	Transport invitations.Transport
	Metrics   *metrics.Metrics
	BaseURL   string
	Now       func() time.Time
}

// WeddingInfo is the public part of the wedding a guest sees.
type WeddingInfo struct {
	CoupleNames    string    `json:"couple_names"`
	WeddingDate    time.Time `json:"wedding_date"`
	WeddingTime    string    `json:"wedding_time"`
	Location       string    `json:"location"`
	RSVPCutoffDate time.Time `json:"rsvp_cutoff_date"`
}

type View struct {
	Family       *domain.Family  `json:"family"`
	Wedding      WeddingInfo     `json:"wedding"`
	Language     domain.Language `json:"language"`
	CutoffPassed bool            `json:"cutoff_passed"`
}

type Answer struct {
	ID        uuid.UUID `json:"id"`
	Attending *bool     `json:"attending"`
}

type SubmitInput struct {
	Members []Answer `json:"members"`
}

type SubmitResult struct {
	Family           *domain.Family `json:"family"`
	ConfirmationSent bool           `json:"confirmation_sent"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) load(ctx context.Context, token string) (*domain.Family, *domain.Wedding, error) {
	f, err := s.Families.ByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	w, err := s.Weddings.Get(ctx, f.WeddingID)
	if err != nil {
		return nil, nil, err
	}
	return f, w, nil
}

// Open resolves the magic token and records LINK_OPENED.
func (s *Service) Open(ctx context.Context, token string) (*View, error) {
	f, w, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, err := s.Tracking.Record(ctx, tracking.Event{
		WeddingID: w.ID,
		FamilyID:  f.ID,
		Type:      domain.EventLinkOpened,
	}); err != nil {
		return nil, err
	}
	return &View{
		Family: f,
		Wedding: WeddingInfo{
			CoupleNames:    w.CoupleNames,
			WeddingDate:    w.WeddingDate,
			WeddingTime:    w.WeddingTime,
			Location:       w.Location,
			RSVPCutoffDate: w.RSVPCutoffDate,
		},
		Language:     f.Language(w.DefaultLanguage),
		CutoffPassed: w.CutoffPassed(s.now()),
	}, nil
}

// Submit stores the family's answers, records RSVP_SUBMITTED and, when the family has an
// email, sends the CONFIRMATION message. A failed confirmation does not fail the RSVP.
func (s *Service) Submit(ctx context.Context, token string, in SubmitInput) (*SubmitResult, error) {
	if len(in.Members) == 0 {
		return nil, ErrNoAnswers
	}
	f, w, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if w.CutoffPassed(s.now()) {
		return nil, ErrRsvpClosed
	}

	own := make(map[uuid.UUID]int, len(f.Members))
	for i, m := range f.Members {
		own[m.ID] = i
	}
	for _, a := range in.Members {
		if _, ok := own[a.ID]; !ok {
			return nil, ErrUnknownMember
		}
		if a.Attending == nil {
			return nil, ErrAttendingRequired
		}
	}

	attending, declined := 0, 0
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range in.Members {
			if err := tx.Model(&domain.FamilyMember{}).
				Where("id = ? AND family_id = ?", a.ID, f.ID).
				Update("attending", *a.Attending).Error; err != nil {
				return err
			}
			v := *a.Attending
			f.Members[own[a.ID]].Attending = &v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, m := range f.Members {
		if m.Attending != nil && *m.Attending {
			attending++
		} else if m.Attending != nil {
			declined++
		}
	}

	if _, err := s.Tracking.Record(ctx, tracking.Event{
		WeddingID: w.ID,
		FamilyID:  f.ID,
		Type:      domain.EventRSVPSubmitted,
		Metadata:  map[string]interface{}{"attending": attending, "declined": declined},
	}); err != nil {
		return nil, err
	}

	res := &SubmitResult{Family: f}
	if _, ok := f.ContactFor(domain.ChannelEmail); ok {
		if err := s.confirm(ctx, w, f); err != nil {
			log.Warn().Err(err).Str("family_id", f.ID.String()).Msg("rsvp confirmation failed")
		} else {
			res.ConfirmationSent = true
		}
	}
	return res, nil
}

func (s *Service) confirm(ctx context.Context, w *domain.Wedding, f *domain.Family) error {
	to, _ := f.ContactFor(domain.ChannelEmail)
	lang := f.Language(w.DefaultLanguage)
	resolved, err := s.Templates.Resolve(ctx, w.ID, domain.MessageConfirmation, lang, domain.ChannelEmail)
	if err != nil {
		return err
	}
	vars := templates.VariablesFor(w, f, s.BaseURL)
	msg := resolved.Render(vars.Values(lang))

	messageID, err := s.Transport.Send(ctx, notifications.Outbound{
		Channel:  domain.ChannelEmail,
		To:       to,
		Subject:  msg.Subject,
		Body:     msg.Body,
		CTA:      msg.CTA,
		CTAURL:   vars.MagicLink,
		ImageURL: msg.ImageURL,
		Language: lang,
	})
	s.Metrics.ObserveDelivery(string(domain.MessageConfirmation), string(domain.ChannelEmail), err)
	if err != nil {
		return err
	}
	ch := domain.ChannelEmail
	meta := map[string]interface{}{"subject": msg.Subject, "channel": ch}
	if messageID != "" {
		meta["message_id"] = messageID
	}
	_, err = s.Tracking.Record(ctx, tracking.Event{
		WeddingID: w.ID,
		FamilyID:  f.ID,
		Type:      domain.EventConfirmationSent,
		Channel:   &ch,
		Metadata:  meta,
	})
	return err
}
