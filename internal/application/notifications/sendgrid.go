package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendgridHost = "https://api.sendgrid.com"

// SendGridClient sends email through the SendGrid v3 mail API.
type SendGridClient struct {
	APIKey     string
	MailFrom   string
	SenderName string
	Host       string // defaults to the public API
}

func (c *SendGridClient) SendEmail(ctx context.Context, msg EmailMessage) (string, error) {
	if msg.To == "" {
		return "", ErrEmptyRecipient
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(c.SenderName, c.MailFrom))
	m.Subject = msg.Subject
	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	m.AddPersonalizations(p)
	m.AddContent(
		mail.NewContent("text/plain", msg.Body),
		mail.NewContent("text/html", EmailLayout(c.SenderName, msg)),
	)

	host := c.Host
	if host == "" {
		host = sendgridHost
	}
	request := sendgrid.GetRequest(c.APIKey, "/v3/mail/send", host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(m)
	response, err := sendgrid.API(request)
	if err != nil {
		return "", err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("sendgrid send failed: status %d", response.StatusCode)
	}
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
