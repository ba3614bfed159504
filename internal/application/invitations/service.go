package invitations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wedding-backend/internal/application/families"
	"wedding-backend/internal/application/notifications"
	"wedding-backend/internal/application/templates"
	"wedding-backend/internal/application/tracking"
	"wedding-backend/internal/application/weddings"
	"wedding-backend/internal/domain"
	"wedding-backend/internal/infrastructure/metrics"
	"wedding-backend/internal/infrastructure/redislock"
	"wedding-backend/internal/pkg/workpool"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingContact = errors.New("Family has no contact for channel")
	ErrInvalidChannel = errors.New("Invalid channel")
	ErrFamilyBusy     = errors.New("Another send for this family is in progress")
	ErrAlreadyInvited = errors.New("Family has already been invited")
)

// LockTTL bounds how long one family's send sequence may hold its lock.
const LockTTL = 2 * time.Minute

// LockKey is the per-family key shared by every admin-triggered send.
func LockKey(familyID uuid.UUID) string {
	return "reminders:family:" + familyID.String()
}

// Transport delivers a rendered message on its channel.
type Transport interface {
	Send(ctx context.Context, out notifications.Outbound) (string, error)
}

type Service struct {
	Rdb         *redis.Client
	Weddings    *weddings.Service
	Families    *families.Service
	Templates   *templates.Service
	Tracking    *tracking.Service
	Transport   Transport
	Metrics     *metrics.Metrics
	BaseURL     string
	Concurrency int
}

// Delivery is one first-contact send. Channel may be PREFERRED.
type Delivery struct {
	Wedding *domain.Wedding
	Family  *domain.Family
	Channel domain.Channel
	AdminID uuid.UUID
}

// Outcome describes a delivered invitation.
type Outcome struct {
	Channel   domain.Channel `json:"channel"`
	MessageID string         `json:"message_id"`
	Subject   string         `json:"subject"`
	MagicLink string         `json:"magic_link"`
}

// SendInvitation renders the INVITATION template for the family, sends it and records
// INVITATION_SENT. Failed sends are not recorded here; the caller owns failure bookkeeping.
func (s *Service) SendInvitation(ctx context.Context, d Delivery) (*Outcome, error) {
	ch := d.Family.EffectiveChannel(d.Channel)
	if !ch.Deliverable() {
		return nil, ErrInvalidChannel
	}
	to, ok := d.Family.ContactFor(ch)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingContact, ch)
	}
	lang := d.Family.Language(d.Wedding.DefaultLanguage)
	resolved, err := s.Templates.Resolve(ctx, d.Wedding.ID, domain.MessageInvitation, lang, ch)
	if err != nil {
		return nil, err
	}
	vars := templates.VariablesFor(d.Wedding, d.Family, s.BaseURL)
	msg := resolved.Render(vars.Values(lang))

	messageID, err := s.Transport.Send(ctx, notifications.Outbound{
		Channel:  ch,
		To:       to,
		Subject:  msg.Subject,
		Body:     msg.Body,
		CTA:      msg.CTA,
		CTAURL:   vars.MagicLink,
		ImageURL: msg.ImageURL,
		Language: lang,
	})
	s.Metrics.ObserveDelivery(string(domain.MessageInvitation), string(ch), err)
	if err != nil {
		return nil, err
	}

	meta := map[string]interface{}{
		"subject":    msg.Subject,
		"body":       msg.Body,
		"cta":        msg.CTA,
		"magic_link": vars.MagicLink,
		"admin_id":   d.AdminID.String(),
		"channel":    ch,
	}
	if messageID != "" {
		meta["message_id"] = messageID
	}
	if _, err := s.Tracking.Record(ctx, tracking.Event{
		WeddingID:      d.Wedding.ID,
		FamilyID:       d.Family.ID,
		Type:           domain.EventInvitationSent,
		Channel:        &ch,
		AdminTriggered: true,
		Metadata:       meta,
	}); err != nil {
		return nil, err
	}
	return &Outcome{Channel: ch, MessageID: messageID, Subject: msg.Subject, MagicLink: vars.MagicLink}, nil
}

// BatchRequest is the admin request for POST /admin/invitations/send.
type BatchRequest struct {
	WeddingID uuid.UUID
	AdminID   uuid.UUID
	Channel   domain.Channel
	FamilyIDs []uuid.UUID
}

// BatchResult totals a batch. SentCount + FailedCount == len(RecipientFamilies).
type BatchResult struct {
	SentCount         int         `json:"sent_count"`
	FailedCount       int         `json:"failed_count"`
	RecipientFamilies []uuid.UUID `json:"recipient_families"`
	SkippedFamilies   []uuid.UUID `json:"skipped_families"`
}

// SendBatch invites every targeted family that has not been invited yet.
func (s *Service) SendBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	started := time.Now()
	if req.Channel == "" {
		req.Channel = domain.ChannelPreferred
	}
	if _, ok := domain.ParseChannel(string(req.Channel)); !ok {
		return nil, ErrInvalidChannel
	}
	wedding, err := s.Weddings.Get(ctx, req.WeddingID)
	if err != nil {
		return nil, err
	}

	var targets []domain.Family
	if len(req.FamilyIDs) > 0 {
		targets, err = s.Families.ByIDs(ctx, wedding.ID, req.FamilyIDs)
	} else {
		targets, err = s.Families.ForWedding(ctx, wedding.ID)
	}
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(targets))
	for i := range targets {
		ids[i] = targets[i].ID
	}
	invited, err := s.Tracking.InvitedFamilies(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := &BatchResult{RecipientFamilies: []uuid.UUID{}, SkippedFamilies: []uuid.UUID{}}
	var pending []*domain.Family
	for i := range targets {
		if invited[targets[i].ID] {
			res.SkippedFamilies = append(res.SkippedFamilies, targets[i].ID)
			continue
		}
		pending = append(pending, &targets[i])
		res.RecipientFamilies = append(res.RecipientFamilies, targets[i].ID)
	}

	failures := make([]error, len(pending))
	err = workpool.Run(ctx, s.Concurrency, len(pending), func(ctx context.Context, i int) error {
		fam := pending[i]
		sendErr := s.inviteLocked(ctx, Delivery{Wedding: wedding, Family: fam, Channel: req.Channel, AdminID: req.AdminID})
		if sendErr == nil {
			return nil
		}
		if errors.Is(sendErr, tracking.ErrRecordFailed) {
			return sendErr
		}
		failures[i] = sendErr
		log.Warn().Err(sendErr).Str("family_id", fam.ID.String()).Msg("invitation failed")
		return s.Tracking.RecordFailure(ctx, wedding.ID, fam.ID, domain.MessageInvitation,
			fam.EffectiveChannel(req.Channel), req.AdminID, sendErr)
	})
	if err != nil {
		s.Metrics.ObserveBatch(string(domain.MessageInvitation), "error", time.Since(started))
		return nil, err
	}
	for _, f := range failures {
		if f != nil {
			res.FailedCount++
		} else {
			res.SentCount++
		}
	}
	s.Metrics.ObserveBatch(string(domain.MessageInvitation), "ok", time.Since(started))
	log.Info().
		Str("wedding_id", wedding.ID.String()).
		Int("sent", res.SentCount).
		Int("failed", res.FailedCount).
		Int("skipped", len(res.SkippedFamilies)).
		Msg("invitation batch finished")
	return res, nil
}

func (s *Service) inviteLocked(ctx context.Context, d Delivery) error {
	lock, err := redislock.Acquire(ctx, s.Rdb, LockKey(d.Family.ID), LockTTL)
	if errors.Is(err, redislock.ErrLocked) {
		return ErrFamilyBusy
	}
	if err != nil {
		return err
	}
	defer lock.Release(context.Background())

	already, err := s.Tracking.HasInvitation(ctx, d.Family.ID)
	if err != nil {
		return err
	}
	if already {
		return ErrAlreadyInvited
	}
	_, err = s.SendInvitation(ctx, d)
	return err
}
