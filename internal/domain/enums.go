package domain

import (
	"strings"

	"golang.org/x/text/language"
)

// Channel is an outbound delivery channel. PREFERRED is only valid in requests and
// resolves per family to the family's own preference.
type Channel string

const (
	ChannelEmail     Channel = "EMAIL"
	ChannelSMS       Channel = "SMS"
	ChannelWhatsApp  Channel = "WHATSAPP"
	ChannelPreferred Channel = "PREFERRED"
)

// ParseChannel accepts the request enum (case-insensitive).
func ParseChannel(s string) (Channel, bool) {
	switch c := Channel(strings.ToUpper(strings.TrimSpace(s))); c {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelPreferred:
		return c, true
	}
	return "", false
}

// Deliverable reports whether c names a concrete transport.
func (c Channel) Deliverable() bool {
	return c == ChannelEmail || c == ChannelSMS || c == ChannelWhatsApp
}

// Language is one of the five languages guests can be addressed in.
type Language string

const (
	LanguageES Language = "ES"
	LanguageEN Language = "EN"
	LanguageFR Language = "FR"
	LanguageIT Language = "IT"
	LanguageDE Language = "DE"
)

// SupportedLanguages is ordered like languageTags.
var SupportedLanguages = []Language{LanguageES, LanguageEN, LanguageFR, LanguageIT, LanguageDE}

var languageTags = []language.Tag{language.Spanish, language.English, language.French, language.Italian, language.German}

var languageMatcher = language.NewMatcher(languageTags)

// ParseLanguage maps BCP 47-ish input ("es", "es-MX", "EN", "de_CH") onto a supported language.
func ParseLanguage(s string) (Language, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return "", false
	}
	return SupportedLanguages[idx], true
}

// LanguageOr parses s and falls back to def.
func LanguageOr(s string, def Language) Language {
	if l, ok := ParseLanguage(s); ok {
		return l
	}
	return def
}

type MessageType string

const (
	MessageInvitation   MessageType = "INVITATION"
	MessageReminder     MessageType = "REMINDER"
	MessageConfirmation MessageType = "CONFIRMATION"
)

var MessageTypes = []MessageType{MessageInvitation, MessageReminder, MessageConfirmation}

func ParseMessageType(s string) (MessageType, bool) {
	switch t := MessageType(strings.ToUpper(strings.TrimSpace(s))); t {
	case MessageInvitation, MessageReminder, MessageConfirmation:
		return t, true
	}
	return "", false
}

type EventType string

const (
	EventInvitationSent   EventType = "INVITATION_SENT"
	EventReminderSent     EventType = "REMINDER_SENT"
	EventConfirmationSent EventType = "CONFIRMATION_SENT"
	EventSendFailed       EventType = "SEND_FAILED"
	EventLinkOpened       EventType = "LINK_OPENED"
	EventRSVPSubmitted    EventType = "RSVP_SUBMITTED"
)

type GiftStatus string

const (
	GiftPending   GiftStatus = "PENDING"
	GiftReceived  GiftStatus = "RECEIVED"
	GiftConfirmed GiftStatus = "CONFIRMED"
)
