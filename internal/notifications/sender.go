package notifications

import (
	"context"
	"fmt"

	"github.com/fixnest/fixnest-backend/pkg/config"
	gomail "gopkg.in/gomail.v2"
)

// Message is one outbound plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers messages. The SMTP implementation is swapped for a fake in
// tests.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a gomail-backed sender from the SMTP config.
func NewSMTPSender(cfg config.SMTPConfig) (Sender, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("smtp is not configured")
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.FromAddress,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}
