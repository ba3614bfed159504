package reminders

import (
	"context"
	"errors"
	"strings"
	"time"

	"wedding-backend/internal/application/families"
	"wedding-backend/internal/application/invitations"
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

// Service dispatches admin-triggered reminders.
type Service struct {
	Rdb         *redis.Client
	Weddings    *weddings.Service
	Families    *families.Service
	Templates   *templates.Service
	Tracking    *tracking.Service
	Invitations *invitations.Service
	Transport   invitations.Transport
	Metrics     *metrics.Metrics
	BaseURL     string
	Concurrency int
	Now         func() time.Time
}

// Request is one reminder batch. Channel may be PREFERRED. MessageTemplate, when set,
// replaces the reminder body for the whole batch.
type Request struct {
	WeddingID       uuid.UUID
	AdminID         uuid.UUID
	Channel         domain.Channel
	MessageTemplate *string
	FamilyIDs       []uuid.UUID
}

// Result totals a batch. SentCount + FailedCount == len(RecipientFamilies), and
// RecipientFamilies lists every eligible family in listing order.
type Result struct {
	SentCount         int         `json:"sent_count"`
	FailedCount       int         `json:"failed_count"`
	RecipientFamilies []uuid.UUID `json:"recipient_families"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SendReminders runs one batch. Per-family failures are recorded and counted; only
// validation, cutoff, lookup and tracking-store errors abort the batch. Sends that
// completed before an abort stay recorded.
func (s *Service) SendReminders(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	if _, ok := domain.ParseChannel(string(req.Channel)); !ok {
		return nil, ErrInvalidChannel
	}
	wedding, err := s.Weddings.Get(ctx, req.WeddingID)
	if err != nil {
		return nil, err
	}
	targets, err := s.Eligible(ctx, wedding, req.FamilyIDs, s.now())
	if err != nil {
		s.Metrics.ObserveBatch(string(domain.MessageReminder), resultLabel(err), time.Since(started))
		return nil, err
	}

	res := &Result{RecipientFamilies: make([]uuid.UUID, len(targets))}
	for i := range targets {
		res.RecipientFamilies[i] = targets[i].ID
	}

	var override string
	if req.MessageTemplate != nil {
		override = strings.TrimSpace(*req.MessageTemplate)
	}
	rec := recorder{tracking: s.Tracking}
	sent := make([]bool, len(targets))

	err = workpool.Run(ctx, s.Concurrency, len(targets), func(ctx context.Context, i int) error {
		fam := &targets[i]
		step, sendErr := s.dispatchLocked(ctx, wedding, fam, req, override, rec)
		if sendErr == nil {
			sent[i] = true
			return nil
		}
		if errors.Is(sendErr, tracking.ErrRecordFailed) {
			return sendErr
		}
		log.Warn().Err(sendErr).
			Str("family_id", fam.ID.String()).
			Str("step", step.String()).
			Msg("reminder dispatch failed")
		return rec.failed(ctx, wedding, fam, step.MessageType(), fam.EffectiveChannel(req.Channel), req.AdminID, sendErr)
	})
	if err != nil {
		s.Metrics.ObserveBatch(string(domain.MessageReminder), "error", time.Since(started))
		return nil, err
	}

	for _, ok := range sent {
		if ok {
			res.SentCount++
		} else {
			res.FailedCount++
		}
	}
	s.Metrics.ObserveBatch(string(domain.MessageReminder), "ok", time.Since(started))
	log.Info().
		Str("wedding_id", wedding.ID.String()).
		Str("admin_id", req.AdminID.String()).
		Int("sent", res.SentCount).
		Int("failed", res.FailedCount).
		Msg("reminder batch finished")
	return res, nil
}

// dispatchLocked runs one family's sequence under its lock.
func (s *Service) dispatchLocked(ctx context.Context, w *domain.Wedding, fam *domain.Family, req Request, override string, rec recorder) (Step, error) {
	lock, err := redislock.Acquire(ctx, s.Rdb, invitations.LockKey(fam.ID), invitations.LockTTL)
	if errors.Is(err, redislock.ErrLocked) {
		return StepFollowUp, ErrFamilyBusy
	}
	if err != nil {
		return StepFollowUp, err
	}
	defer lock.Release(context.Background())

	invited, err := s.Tracking.HasInvitation(ctx, fam.ID)
	if err != nil {
		return StepFollowUp, err
	}
	plan, err := NewPlan(fam, req.Channel, invited)
	if err != nil {
		return plan.Step, err
	}

	if plan.Step == StepFirstContact {
		_, err := s.Invitations.SendInvitation(ctx, invitations.Delivery{
			Wedding: w,
			Family:  fam,
			Channel: plan.Channel,
			AdminID: req.AdminID,
		})
		return plan.Step, err
	}

	lang := fam.Language(w.DefaultLanguage)
	resolved, err := s.Templates.Resolve(ctx, w.ID, domain.MessageReminder, lang, plan.Channel)
	if err != nil {
		return plan.Step, err
	}
	if override != "" {
		resolved.Body = override
	}
	vars := templates.VariablesFor(w, fam, s.BaseURL)
	msg := resolved.Render(vars.Values(lang))

	messageID, err := s.Transport.Send(ctx, notifications.Outbound{
		Channel:  plan.Channel,
		To:       plan.To,
		Subject:  msg.Subject,
		Body:     msg.Body,
		CTA:      msg.CTA,
		CTAURL:   vars.MagicLink,
		ImageURL: msg.ImageURL,
		Language: lang,
	})
	s.Metrics.ObserveDelivery(string(domain.MessageReminder), string(plan.Channel), err)
	if err != nil {
		return plan.Step, err
	}
	return plan.Step, rec.reminderSent(ctx, w, fam, plan, msg, vars.MagicLink, messageID, req.AdminID)
}

func resultLabel(err error) string {
	if errors.Is(err, ErrRsvpCutoffPassed) {
		return "cutoff_passed"
	}
	return "error"
}
