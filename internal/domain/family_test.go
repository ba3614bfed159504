package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestFamily_EffectiveChannel(t *testing.T) {
	sms := ChannelSMS
	f := &Family{ChannelPreference: &sms}
	assert.Equal(t, ChannelSMS, f.EffectiveChannel(ChannelPreferred))
	assert.Equal(t, ChannelEmail, f.EffectiveChannel(ChannelEmail))

	unset := &Family{}
	assert.Equal(t, ChannelEmail, unset.EffectiveChannel(ChannelPreferred))
}

func TestFamily_ContactFor(t *testing.T) {
	f := &Family{Email: strPtr(" ana@example.com "), Phone: strPtr("")}
	to, ok := f.ContactFor(ChannelEmail)
	assert.True(t, ok)
	assert.Equal(t, "ana@example.com", to)

	_, ok = f.ContactFor(ChannelSMS)
	assert.False(t, ok)
	_, ok = f.ContactFor(ChannelWhatsApp)
	assert.False(t, ok)
}

func TestFamily_HasResponded(t *testing.T) {
	yes := true
	f := &Family{Members: []FamilyMember{{Name: "A"}, {Name: "B"}}}
	assert.False(t, f.HasResponded())
	f.Members[1].Attending = &yes
	assert.True(t, f.HasResponded())
}

func TestWedding_CutoffPassed(t *testing.T) {
	w := &Wedding{RSVPCutoffDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}
	assert.False(t, w.CutoffPassed(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.CutoffPassed(w.RSVPCutoffDate))
	assert.True(t, w.CutoffPassed(w.RSVPCutoffDate.Add(time.Second)))
}
