package reminders

import (
	"errors"

	"wedding-backend/internal/application/invitations"
	"wedding-backend/internal/application/weddings"
)

var (
	ErrRsvpCutoffPassed = errors.New("RSVP cutoff date has passed")
	ErrInvalidChannel   = errors.New("channel must be one of EMAIL, SMS, WHATSAPP, PREFERRED")
	ErrInvalidFamilyID  = errors.New("family_ids must be UUIDs")

	ErrWeddingNotFound = weddings.ErrWeddingNotFound
	ErrMissingContact  = invitations.ErrMissingContact
	ErrFamilyBusy      = invitations.ErrFamilyBusy
)
