package reminders

import (
	"errors"
	"testing"

	"wedding-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan_StepFollowsInvitationHistory(t *testing.T) {
	email := "a@example.com"
	f := &domain.Family{Email: &email}

	for _, ch := range []domain.Channel{domain.ChannelEmail, domain.ChannelPreferred} {
		p, err := NewPlan(f, ch, false)
		require.NoError(t, err)
		assert.Equal(t, StepFirstContact, p.Step, ch)
		assert.Equal(t, domain.MessageInvitation, p.Step.MessageType())

		p, err = NewPlan(f, ch, true)
		require.NoError(t, err)
		assert.Equal(t, StepFollowUp, p.Step, ch)
		assert.Equal(t, domain.MessageReminder, p.Step.MessageType())
		assert.Equal(t, email, p.To)
	}
}

func TestNewPlan_PreferredUsesFamilyChannel(t *testing.T) {
	wa := domain.ChannelWhatsApp
	number := "+34600112233"
	f := &domain.Family{ChannelPreference: &wa, WhatsAppNumber: &number}

	p, err := NewPlan(f, domain.ChannelPreferred, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelWhatsApp, p.Channel)
	assert.Equal(t, number, p.To)
}

func TestNewPlan_MissingContact(t *testing.T) {
	f := &domain.Family{}
	p, err := NewPlan(f, domain.ChannelSMS, false)
	assert.True(t, errors.Is(err, ErrMissingContact))
	assert.Equal(t, domain.ChannelSMS, p.Channel)
	assert.Equal(t, StepFirstContact, p.Step)
}
