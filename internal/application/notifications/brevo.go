package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches the Brevo v3 transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoContact   `json:"sender"`
	To          []BrevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
}

type BrevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoSendResponse struct {
	MessageID string `json:"messageId"`
}

var defaultHTTPClient = &http.Client{Timeout: 15 * time.Second}

// BrevoClient sends email through Brevo (formerly Sendinblue), keyed by SENDINBLUE_API_KEY.
type BrevoClient struct {
	APIKey     string
	MailFrom   string
	SenderName string
	Endpoint   string // defaults to the public API
	Client     *http.Client
}

func (c *BrevoClient) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return brevoAPI
}

func (c *BrevoClient) SendEmail(ctx context.Context, msg EmailMessage) (string, error) {
	if msg.To == "" {
		return "", ErrEmptyRecipient
	}
	body := BrevoSendRequest{
		Sender:      BrevoContact{Email: c.MailFrom, Name: c.SenderName},
		To:          []BrevoContact{{Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: EmailLayout(c.SenderName, msg),
		TextContent: msg.Body,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	client := c.Client
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	var out brevoSendResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return out.MessageID, nil
}
