package notifications

import (
	"context"
	"fmt"

	"wedding-backend/internal/domain"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// twilioMessagesAPI is the part of the twilio-go API service the sender uses.
type twilioMessagesAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioClient sends SMS and WhatsApp messages through the Twilio Messages API.
// Build it with NewTwilioClient; it is safe for concurrent use.
type TwilioClient struct {
	From         string // SMS sender number
	WhatsAppFrom string // WhatsApp-enabled sender number, without the whatsapp: prefix
	api          twilioMessagesAPI
}

func NewTwilioClient(accountSID, authToken, from, whatsAppFrom string) *TwilioClient {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioClient{From: from, WhatsAppFrom: whatsAppFrom, api: client.Api}
}

func (c *TwilioClient) SendMessage(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", ErrEmptyRecipient
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	from, to := c.From, msg.To
	if msg.Channel == domain.ChannelWhatsApp {
		from, to = "whatsapp:"+c.WhatsAppFrom, "whatsapp:"+msg.To
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetBody(msg.Body)
	if msg.MediaURL != "" && msg.Channel == domain.ChannelWhatsApp {
		params.SetMediaUrl([]string{msg.MediaURL})
	}

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send failed: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
