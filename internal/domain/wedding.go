package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wedding is one tenant event, owned by a planner.
type Wedding struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PlannerID       *uuid.UUID     `gorm:"column:planner_id;type:uuid;index" json:"planner_id"`
	CoupleNames     string         `gorm:"column:couple_names;not null" json:"couple_names"`
	WeddingDate     time.Time      `gorm:"column:wedding_date;not null" json:"wedding_date"`
	WeddingTime     string         `gorm:"column:wedding_time" json:"wedding_time"`
	Location        string         `gorm:"column:location" json:"location"`
	RSVPCutoffDate  time.Time      `gorm:"column:rsvp_cutoff_date;not null" json:"rsvp_cutoff_date"`
	DefaultLanguage Language       `gorm:"column:default_language;type:varchar(2);not null" json:"default_language"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Wedding) TableName() string {
	return "Weddings"
}

func (w *Wedding) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.DefaultLanguage == "" {
		w.DefaultLanguage = LanguageES
	}
	return nil
}

// CutoffPassed reports now > rsvp_cutoff_date.
func (w *Wedding) CutoffPassed(now time.Time) bool {
	return now.After(w.RSVPCutoffDate)
}
