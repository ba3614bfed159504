package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Family is a guest household: the RSVP and contact-routing unit.
type Family struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WeddingID         uuid.UUID      `gorm:"column:wedding_id;type:uuid;not null;index" json:"wedding_id"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	Email             *string        `gorm:"column:email" json:"email"`
	Phone             *string        `gorm:"column:phone" json:"phone"`
	WhatsAppNumber    *string        `gorm:"column:whatsapp_number" json:"whatsapp_number"`
	ChannelPreference *Channel       `gorm:"column:channel_preference;type:varchar(16)" json:"channel_preference"`
	PreferredLanguage Language       `gorm:"column:preferred_language;type:varchar(2)" json:"preferred_language"`
	MagicToken        string         `gorm:"column:magic_token;uniqueIndex;not null" json:"-"`
	ReferenceCode     *string        `gorm:"column:reference_code;index" json:"reference_code"`
	Members           []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func (Family) TableName() string {
	return "Families"
}

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// EffectiveChannel resolves PREFERRED against the family's stored preference (EMAIL when unset).
func (f *Family) EffectiveChannel(requested Channel) Channel {
	if requested != ChannelPreferred {
		return requested
	}
	if f.ChannelPreference != nil && f.ChannelPreference.Deliverable() {
		return *f.ChannelPreference
	}
	return ChannelEmail
}

// ContactFor returns the address the channel needs, if the family has one.
func (f *Family) ContactFor(ch Channel) (string, bool) {
	var v *string
	switch ch {
	case ChannelEmail:
		v = f.Email
	case ChannelSMS:
		v = f.Phone
	case ChannelWhatsApp:
		v = f.WhatsAppNumber
	}
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", false
	}
	return strings.TrimSpace(*v), true
}

// Language returns the family's language or def when unset.
func (f *Family) Language(def Language) Language {
	if f.PreferredLanguage != "" {
		return f.PreferredLanguage
	}
	return def
}

// HasResponded is true once any loaded member has a non-null attending value.
func (f *Family) HasResponded() bool {
	for _, m := range f.Members {
		if m.Attending != nil {
			return true
		}
	}
	return false
}

// FamilyMember is one person in a family. Attending is nil until they RSVP.
type FamilyMember struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FamilyID  uuid.UUID `gorm:"column:family_id;type:uuid;not null;index" json:"family_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Attending *bool     `gorm:"column:attending" json:"attending"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (FamilyMember) TableName() string {
	return "FamilyMembers"
}

func (m *FamilyMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
