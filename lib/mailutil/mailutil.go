package mailutil

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("seafadmin.lib.mailutil")

var ErrNoRecipients = errors.New("no recipients")

type SmtpConfig struct {
	Server       string `json:"server" env:"SERVER"`
	Port         int    `json:"port" env:"PORT" validate:"omitempty,min=1,max=65535"`
	EmailAddress string `json:"email_address" env:"EMAIL_ADDRESS" validate:"omitempty,email"`
	Password     string `json:"password" env:"PASSWORD"`
}

func (c SmtpConfig) Configured() bool {
	return c.Server != "" && c.EmailAddress != ""
}

func (c SmtpConfig) addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}

// Compose builds an html mail with a plain text fallback.
func Compose(config SmtpConfig, to []string, subject, text, html string) *email.Email {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Seafile Admin <%s>", config.EmailAddress)
	mail.To = to
	mail.Subject = subject
	mail.Text = []byte(text)
	if html != "" {
		mail.HTML = []byte(html)
	}
	return mail
}

// Send delivers the mail, falling back to an unauthenticated session when
// the server does not offer AUTH.
func Send(ctx context.Context, config SmtpConfig, mail *email.Email) error {
	_, span := tracer.Start(ctx, "Send")
	defer span.End()

	if len(mail.To) == 0 {
		return ErrNoRecipients
	}

	err := mail.Send(
		config.addr(),
		smtp.PlainAuth("", config.EmailAddress, config.Password, config.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(config.addr(), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return fmt.Errorf("send mail to %v: %w", mail.To, err)
	}
	return nil
}
