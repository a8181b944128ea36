// Package mailer delivers the outbound mail the password-reset workflow
// depends on.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/journalkeep/core/internal/infrastructure/config"
	"github.com/journalkeep/core/internal/infrastructure/logger"
)

// Message is a structured outbound mail with both a plain-text and an HTML
// rendering of the same content.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends structured messages.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer sends mail over a plain SMTP transport.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *logger.Logger
}

// New creates an SMTP mailer for the configured transport.
func New(cfg config.SMTPConfig, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: log.WithComponent("mailer"),
	}
}

const boundary = "journalkeep-alt"

// Send delivers the message as multipart/alternative so clients pick
// whichever rendering they prefer.
func (m *SMTPMailer) Send(msg Message) error {
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.Text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	if err := smtp.SendMail(m.cfg.GetAddr(), auth, m.cfg.From, []string{msg.To}, []byte(b.String())); err != nil {
		m.logger.Errorw("Failed to send mail", "to", msg.To, "error", err)
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Infow("Mail sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
