package reminders

import (
	"context"

	"wedding-backend/internal/application/templates"
	"wedding-backend/internal/application/tracking"
	"wedding-backend/internal/domain"

	"github.com/google/uuid"
)

type recorder struct {
	tracking *tracking.Service
}

func (r recorder) reminderSent(ctx context.Context, w *domain.Wedding, f *domain.Family, p Plan, msg templates.Rendered, link, messageID string, adminID uuid.UUID) error {
	ch := p.Channel
	meta := map[string]interface{}{
		"subject":    msg.Subject,
		"body":       msg.Body,
		"cta":        msg.CTA,
		"magic_link": link,
		"admin_id":   adminID.String(),
		"channel":    ch,
	}
	if messageID != "" {
		meta["message_id"] = messageID
	}
	_, err := r.tracking.Record(ctx, tracking.Event{
		WeddingID:      w.ID,
		FamilyID:       f.ID,
		Type:           domain.EventReminderSent,
		Channel:        &ch,
		AdminTriggered: true,
		Metadata:       meta,
	})
	return err
}

func (r recorder) failed(ctx context.Context, w *domain.Wedding, f *domain.Family, kind domain.MessageType, ch domain.Channel, adminID uuid.UUID, cause error) error {
	return r.tracking.RecordFailure(ctx, w.ID, f.ID, kind, ch, adminID, cause)
}
