package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
)

// Notifier delivers a verification code to an email address. Delivery
// failure must fail the surrounding operation, never pass silently.
type Notifier interface {
	SendCode(ctx context.Context, to, code string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpNotifier struct {
	cfg SMTPConfig
}

func NewSMTPNotifier(cfg SMTPConfig) Notifier {
	return &smtpNotifier{cfg: cfg}
}

func (s *smtpNotifier) SendCode(ctx context.Context, to, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verification code\r\n\r\nYour verification code is: %s. It expires in 10 minutes.\r\n",
		s.cfg.From, to, code,
	)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		return apperrors.WrapInternal(err, "SendCode")
	}
	return nil
}
