package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Gift struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WeddingID         uuid.UUID       `gorm:"column:wedding_id;type:uuid;not null;index" json:"wedding_id"`
	FamilyID          *uuid.UUID      `gorm:"column:family_id;type:uuid;index" json:"family_id"`
	Amount            decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Currency          string          `gorm:"column:currency;type:varchar(3);not null" json:"currency"`
	Status            GiftStatus      `gorm:"column:status;type:varchar(16);not null" json:"status"`
	ReferenceCodeUsed *string         `gorm:"column:reference_code_used" json:"reference_code_used"`
	Note              string          `gorm:"column:note" json:"note"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (Gift) TableName() string {
	return "Gifts"
}

func (g *Gift) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
