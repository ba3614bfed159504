package router

import (
	"context"

	healthsvc "wedding-backend/internal/application/health"
	"wedding-backend/internal/application/notifications"
	"wedding-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// buildTransport picks one sender per channel from config. Outside production, unknown or
// unconfigured providers fall back to the log sender. In production such a channel stays nil:
// sends on it fail with ErrChannelUnavailable instead of being recorded as delivered.
func buildTransport(app *fiber.App, cfg *config.Config, probes map[string]healthsvc.Probe) *notifications.Router {
	rt := &notifications.Router{}
	if cfg.Env != "production" {
		logSender := notifications.LogSender{}
		rt.Email, rt.SMS, rt.WhatsApp = logSender, logSender, logSender
	}

	switch cfg.EmailProvider {
	case "brevo":
		if cfg.SendinblueAPIKey != "" {
			rt.Email = &notifications.BrevoClient{APIKey: cfg.SendinblueAPIKey, MailFrom: cfg.MailFrom, SenderName: cfg.CommercialName}
		}
	case "sendgrid":
		if cfg.SendGridAPIKey != "" {
			rt.Email = &notifications.SendGridClient{APIKey: cfg.SendGridAPIKey, MailFrom: cfg.MailFrom, SenderName: cfg.CommercialName}
		}
	}

	var tw *notifications.TwilioClient
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		tw = notifications.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.TwilioWhatsAppFrom)
	}
	if cfg.SMSProvider == "twilio" && tw != nil {
		rt.SMS = tw
	}

	switch cfg.WhatsAppProvider {
	case "twilio":
		if tw != nil {
			rt.WhatsApp = tw
		}
	case "whatsmeow":
		wa, err := notifications.NewWhatsAppClient(context.Background(), cfg.WhatsAppDataDir)
		if err != nil {
			log.Error().Err(err).Msg("whatsapp: device store unavailable")
			break
		}
		go func() {
			if err := wa.Connect(context.Background()); err != nil {
				log.Error().Err(err).Msg("whatsapp: connect failed")
			}
		}()
		app.Hooks().OnShutdown(func() error {
			wa.Disconnect()
			return nil
		})
		probes["whatsapp"] = wa.Ping
		rt.WhatsApp = wa
	}

	for name, missing := range map[string]bool{"email": rt.Email == nil, "sms": rt.SMS == nil, "whatsapp": rt.WhatsApp == nil} {
		if missing {
			log.Warn().Str("channel", name).Msg("no transport configured; sends on this channel will fail")
		}
	}
	log.Info().
		Str("email", cfg.EmailProvider).
		Str("sms", cfg.SMSProvider).
		Str("whatsapp", cfg.WhatsAppProvider).
		Msg("transports configured")
	return rt
}
