package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type gomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender creates an SMTP-backed sender.
func NewGomailSender(cfg SMTPConfig) Sender {
	return &gomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *gomailSender) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("missing recipient address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
