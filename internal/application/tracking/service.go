package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wedding-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrWeddingIDRequired = errors.New("Wedding ID is required")
	ErrRecordFailed      = errors.New("Failed to record tracking event")
)

// Service appends to and reads the TrackingEvents log. Events are never updated.
type Service struct {
	DB *gorm.DB
}

// Event is one entry to record.
type Event struct {
	WeddingID      uuid.UUID
	FamilyID       uuid.UUID
	Type           domain.EventType
	Channel        *domain.Channel
	AdminTriggered bool
	Metadata       map[string]interface{}
}

func (s *Service) Record(ctx context.Context, e Event) (*domain.TrackingEvent, error) {
	var meta datatypes.JSON
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, err
		}
		meta = datatypes.JSON(b)
	}
	row := &domain.TrackingEvent{
		WeddingID:      e.WeddingID,
		FamilyID:       e.FamilyID,
		EventType:      e.Type,
		Channel:        e.Channel,
		AdminTriggered: e.AdminTriggered,
		Metadata:       meta,
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordFailed, err)
	}
	return row, nil
}

// RecordFailure appends a SEND_FAILED event for an attempted admin send.
func (s *Service) RecordFailure(ctx context.Context, weddingID, familyID uuid.UUID, kind domain.MessageType, ch domain.Channel, adminID uuid.UUID, cause error) error {
	meta := map[string]interface{}{
		"message_type": kind,
		"admin_id":     adminID.String(),
		"error":        cause.Error(),
	}
	var chp *domain.Channel
	if ch != "" {
		c := ch
		chp = &c
		meta["channel"] = ch
	}
	_, err := s.Record(ctx, Event{
		WeddingID:      weddingID,
		FamilyID:       familyID,
		Type:           domain.EventSendFailed,
		Channel:        chp,
		AdminTriggered: true,
		Metadata:       meta,
	})
	return err
}

// HasInvitation reports whether an INVITATION_SENT event exists for the family.
func (s *Service) HasInvitation(ctx context.Context, familyID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&domain.TrackingEvent{}).
		Where("family_id = ? AND event_type = ?", familyID, domain.EventInvitationSent).
		Count(&n).Error
	return n > 0, err
}

// InvitedFamilies returns the subset of familyIDs that already have an INVITATION_SENT event.
func (s *Service) InvitedFamilies(ctx context.Context, familyIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(familyIDs))
	if len(familyIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).Model(&domain.TrackingEvent{}).
		Where("family_id IN ? AND event_type = ?", familyIDs, domain.EventInvitationSent).
		Distinct().Pluck("family_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ListFilter narrows ListWeddingEvents. Zero values mean no filter.
type ListFilter struct {
	FamilyID  uuid.UUID
	EventType domain.EventType
	Limit     int
}

// ListWeddingEvents returns a wedding's events, newest first.
func (s *Service) ListWeddingEvents(ctx context.Context, weddingID uuid.UUID, f ListFilter) ([]domain.TrackingEvent, error) {
	if weddingID == uuid.Nil {
		return nil, ErrWeddingIDRequired
	}
	q := s.DB.WithContext(ctx).Where("wedding_id = ?", weddingID)
	if f.FamilyID != uuid.Nil {
		q = q.Where("family_id = ?", f.FamilyID)
	}
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []domain.TrackingEvent
	if err := q.Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
