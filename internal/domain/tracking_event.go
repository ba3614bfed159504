package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TrackingEvent is the append-only audit log of sends and guest actions.
// Whether a family was ever invited is answered from this table alone.
type TrackingEvent struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WeddingID      uuid.UUID      `gorm:"column:wedding_id;type:uuid;not null;index" json:"wedding_id"`
	FamilyID       uuid.UUID      `gorm:"column:family_id;type:uuid;not null;index" json:"family_id"`
	EventType      EventType      `gorm:"column:event_type;type:varchar(32);not null;index" json:"event_type"`
	Channel        *Channel       `gorm:"column:channel;type:varchar(16)" json:"channel"`
	AdminTriggered bool           `gorm:"column:admin_triggered;not null" json:"admin_triggered"`
	Metadata       datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (TrackingEvent) TableName() string {
	return "TrackingEvents"
}

func (e *TrackingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
