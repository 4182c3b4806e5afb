package handlers

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/config"
	templates "github.com/whosonpole/whos-on-pole-api/templates/html"
)

// Mailer sends moderation notices. Nil when sendgrid is not configured,
// in which case notices are skipped.
type Mailer struct {
	apiKey string
}

// NewMailer builds a mailer from the configured sendgrid key
func NewMailer(conf config.Config) *Mailer {
	if conf.SendgridAPIKey == "" {
		zap.S().Warn("sendgrid api key not configured, moderation emails will not be sent")
		return nil
	}
	return &Mailer{apiKey: conf.SendgridAPIKey}
}

// SendBanNotice emails the suspended user. Failures are logged and never
// fail the moderation action.
func (m *Mailer) SendBanNotice(email, username string, until time.Time) {
	if email == "" {
		return
	}

	subject := "Account Suspension Notice - Who's on Pole?"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account has been suspended until %s for violating the community guidelines.\n\nWhile suspended you cannot post, comment, predict grids, or chat. If you believe this was a mistake, reply to this email to appeal.",
		username, until.Format("January 2, 2006"),
	)
	plainText := fmt.Sprintf("Your account has been suspended until %s.", until.Format("January 2, 2006"))
	htmlContent := templates.RenderGenericEmail(subject, body)

	if err := m.send(email, username, subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send ban notice", "error", err, "email", email)
	}
}

func (m *Mailer) send(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("Who's on Pole?", "no-reply@whosonpole.app")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
