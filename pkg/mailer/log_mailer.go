package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogMailer logs activation emails instead of delivering them. Used when
// MAIL_SEND_ENABLED is off so the service stays usable in local
// development without Mailgun credentials.
type LogMailer struct {
	Logger *logrus.Logger
}

func (m *LogMailer) SendActivation(_ context.Context, to, token string) error {
	if m.Logger != nil {
		m.Logger.WithFields(logrus.Fields{"to": to, "token": token}).Info("mail sending disabled, activation email suppressed")
	}
	return nil
}

var _ Mailer = (*LogMailer)(nil)
