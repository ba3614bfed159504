package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wedding-backend/internal/domain"
)

var (
	ErrChannelUnavailable = errors.New("No transport configured for channel")
	ErrEmptyRecipient     = errors.New("Recipient is required")
)

// EmailMessage is one rendered email.
type EmailMessage struct {
	To       string
	Subject  string
	Body     string // plain text; providers wrap it in the HTML layout
	CTA      string
	CTAURL   string
	ImageURL string
	Language domain.Language
}

// EmailSender delivers EmailMessage and returns the provider message id ("" when none).
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) (string, error)
}

// Message is one SMS or WhatsApp text.
type Message struct {
	To       string
	Body     string
	Channel  domain.Channel
	MediaURL string
}

// MessageSender delivers SMS or WhatsApp messages.
type MessageSender interface {
	SendMessage(ctx context.Context, msg Message) (string, error)
}

// Outbound is a channel-agnostic rendered message.
type Outbound struct {
	Channel  domain.Channel
	To       string
	Subject  string
	Body     string
	CTA      string
	CTAURL   string
	ImageURL string
	Language domain.Language
}

// Router picks the transport for a concrete channel. Nil fields mean the channel is unavailable.
type Router struct {
	Email    EmailSender
	SMS      MessageSender
	WhatsApp MessageSender
}

// Send delivers out on its channel and returns the provider message id.
func (r *Router) Send(ctx context.Context, out Outbound) (string, error) {
	if out.To == "" {
		return "", ErrEmptyRecipient
	}
	switch out.Channel {
	case domain.ChannelEmail:
		if r.Email == nil {
			return "", fmt.Errorf("%w: %s", ErrChannelUnavailable, out.Channel)
		}
		return r.Email.SendEmail(ctx, EmailMessage{
			To:       out.To,
			Subject:  out.Subject,
			Body:     out.Body,
			CTA:      out.CTA,
			CTAURL:   out.CTAURL,
			ImageURL: out.ImageURL,
			Language: out.Language,
		})
	case domain.ChannelSMS, domain.ChannelWhatsApp:
		sender := r.SMS
		if out.Channel == domain.ChannelWhatsApp {
			sender = r.WhatsApp
		}
		if sender == nil {
			return "", fmt.Errorf("%w: %s", ErrChannelUnavailable, out.Channel)
		}
		body := out.Body
		if out.CTAURL != "" && !strings.Contains(body, out.CTAURL) {
			body += "\n\n" + out.CTA + ": " + out.CTAURL
		}
		return sender.SendMessage(ctx, Message{To: out.To, Body: body, Channel: out.Channel, MediaURL: out.ImageURL})
	}
	return "", fmt.Errorf("%w: %s", ErrChannelUnavailable, out.Channel)
}
