package notifications

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LogSender writes messages to the log instead of delivering them. Used when a provider is "log".
type LogSender struct{}

func (LogSender) SendEmail(ctx context.Context, msg EmailMessage) (string, error) {
	id := "log-" + uuid.NewString()
	log.Info().
		Str("message_id", id).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("language", string(msg.Language)).
		Msg("email not delivered: log transport")
	return id, nil
}

func (LogSender) SendMessage(ctx context.Context, msg Message) (string, error) {
	id := "log-" + uuid.NewString()
	log.Info().
		Str("message_id", id).
		Str("to", msg.To).
		Str("channel", string(msg.Channel)).
		Int("length", len(msg.Body)).
		Msg("message not delivered: log transport")
	return id, nil
}
