package reminders

import (
	"context"
	"time"

	"wedding-backend/internal/domain"

	"github.com/google/uuid"
)

// Eligible returns the families a reminder batch targets.
// Past the RSVP cutoff nothing is eligible and ErrRsvpCutoffPassed is returned.
// Explicit ids are taken as given (in that order, no RSVP filtering); otherwise every
// family of the wedding where no member has answered yet, oldest first.
func (s *Service) Eligible(ctx context.Context, w *domain.Wedding, familyIDs []uuid.UUID, now time.Time) ([]domain.Family, error) {
	if w.CutoffPassed(now) {
		return nil, ErrRsvpCutoffPassed
	}
	if len(familyIDs) > 0 {
		return s.Families.ByIDs(ctx, w.ID, familyIDs)
	}
	all, err := s.Families.ForWedding(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, f := range all {
		if !f.HasResponded() {
			out = append(out, f)
		}
	}
	return out, nil
}
