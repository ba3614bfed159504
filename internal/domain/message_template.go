package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageTemplate is an admin-edited override for one (wedding, type, language, channel).
type MessageTemplate struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WeddingID uuid.UUID   `gorm:"column:wedding_id;type:uuid;not null;uniqueIndex:idx_template_key,priority:1" json:"wedding_id"`
	Type      MessageType `gorm:"column:type;type:varchar(16);not null;uniqueIndex:idx_template_key,priority:2" json:"type"`
	Language  Language    `gorm:"column:language;type:varchar(2);not null;uniqueIndex:idx_template_key,priority:3" json:"language"`
	Channel   Channel     `gorm:"column:channel;type:varchar(16);not null;uniqueIndex:idx_template_key,priority:4" json:"channel"`
	Subject   string      `gorm:"column:subject" json:"subject"`
	Body      string      `gorm:"column:body;type:text;not null" json:"body"`
	ImageURL  *string     `gorm:"column:image_url" json:"image_url"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (MessageTemplate) TableName() string {
	return "MessageTemplates"
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
