package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/sjwaight/gu/internal/config"
)

// Mailer wraps SMTP configuration for sending author notifications, with
// optional file attachments (remittance PDFs).
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     cfg.EditorEmail,
	}
}

// Send delivers a plain-text email to the recipients. attachmentPath, when
// non-empty, is attached to the message. Failures are returned to the caller;
// the batch treats them as retry-next-run, the worker pool as DLQ candidates.
func (m *Mailer) Send(to []string, subject, body, attachmentPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)

	if attachmentPath != "" {
		if _, err := e.AttachFile(attachmentPath); err != nil {
			return fmt.Errorf("mailer: attach file: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
