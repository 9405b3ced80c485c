package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"

	"github.com/yudistiraa/signup-api/pkg/mailer/templates"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain        string
	APIKey        string
	Sender        string
	AppName       string
	ActivationURL string // base URL the token is appended to
}

func NewMailgun(domain, apiKey, sender, appName, activationURL string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender, AppName: appName, ActivationURL: activationURL}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

// SendActivation renders the activation template and delivers it synchronously.
func (m *Mailgun) SendActivation(ctx context.Context, to, token string) error {
	data := templates.EmailData{
		Email:         to,
		Token:         token,
		AppName:       m.AppName,
		ActivationURL: m.ActivationURL,
	}
	subject, text, html, err := templates.Render(templates.Activation, data)
	if err != nil {
		return fmt.Errorf("render activation email: %w", err)
	}
	return m.Send(ctx, to, subject, text, html)
}

var _ Mailer = (*Mailgun)(nil)
