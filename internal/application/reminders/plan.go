package reminders

import (
	"fmt"

	"wedding-backend/internal/domain"
)

// Step is what a family gets in this batch.
type Step int

const (
	// StepFirstContact: no INVITATION_SENT yet, so the invitation goes out instead.
	StepFirstContact Step = iota
	// StepFollowUp: invited before, so the REMINDER template goes out.
	StepFollowUp
)

func (s Step) String() string {
	if s == StepFollowUp {
		return "follow_up"
	}
	return "first_contact"
}

// MessageType is the template type a step sends.
func (s Step) MessageType() domain.MessageType {
	if s == StepFollowUp {
		return domain.MessageReminder
	}
	return domain.MessageInvitation
}

// Plan is the per-family decision, made once before anything is sent.
type Plan struct {
	Step    Step
	Channel domain.Channel
	To      string
}

// NewPlan resolves the effective channel, checks the family can be reached on it and
// picks the step from whether an invitation was ever sent.
func NewPlan(f *domain.Family, requested domain.Channel, invited bool) (Plan, error) {
	ch := f.EffectiveChannel(requested)
	p := Plan{Step: StepFirstContact, Channel: ch}
	if invited {
		p.Step = StepFollowUp
	}
	to, ok := f.ContactFor(ch)
	if !ok {
		return p, fmt.Errorf("%w: %s", ErrMissingContact, ch)
	}
	p.To = to
	return p, nil
}
