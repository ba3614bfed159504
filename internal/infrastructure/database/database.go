package database

import (
	"wedding-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Postgres or a pooler URL).
// PreferSimpleProtocol avoids 42P05 ("prepared statement already exists") behind PgBouncer.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// invitationOnceIndex turns a second INVITATION_SENT for the same family into a conflict.
// Both Postgres and SQLite accept partial indexes.
const invitationOnceIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_tracking_invitation_once ON "TrackingEvents" (family_id) WHERE event_type = 'INVITATION_SENT'`

// AutoMigrate creates or updates every table the service uses.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Wedding{},
		&domain.Family{},
		&domain.FamilyMember{},
		&domain.MessageTemplate{},
		&domain.TrackingEvent{},
		&domain.Gift{},
	); err != nil {
		return err
	}
	return db.Exec(invitationOnceIndex).Error
}
