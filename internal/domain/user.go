package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a back-office account: a planner or a wedding admin.
type User struct {
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Email        string         `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Fullname     string         `gorm:"column:fullname;not null" json:"fullname"`
	Role         string         `gorm:"column:role;not null" json:"role"`
	WeddingID    *uuid.UUID     `gorm:"column:wedding_id;type:uuid;index" json:"wedding_id"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "Users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
