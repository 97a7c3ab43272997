package mail

import (
	"fmt"
	"strings"

	"accounts/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional account mail over SMTP. A Mailer built without
// an SMTP host is a no-op, so callers never need to branch on configuration.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// New builds a Mailer from configuration.
func New(cfg config.Config) *Mailer {
	m := &Mailer{
		from:     cfg.EmailFrom,
		fromName: cfg.EmailFromName,
	}
	if strings.TrimSpace(cfg.SMTPHost) != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return m
}

// SendWelcome greets a newly registered user.
func (m *Mailer) SendWelcome(to, name string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome aboard! Your account is ready to use.</p>",
		firstName(name),
	)
	return m.send(to, "Welcome to the Accounts Family!", body)
}

// SendPasswordReset delivers the one-time reset code. This is the only place
// the plain code leaves the service in production.
func (m *Mailer) SendPasswordReset(to, name, code string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your password reset token is <b>%s</b>. It is valid for 10 minutes. If you did not request a reset, ignore this email.</p>",
		firstName(name), code,
	)
	return m.send(to, "Your password reset token (valid for 10 mins)", body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m == nil || m.dialer == nil {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
