package mailer

import (
	"fmt"
	"strconv"

	"github.com/conecta-social/conecta-server/backend/pkg/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends the transactional emails of the account lifecycle
type Mailer interface {
	SendConfirmation(to, name, token string) error
	SendPasswordReset(to, name, token string) error
	SendEmailChangeCode(to, name, code string) error
}

// SMTPMailer implements Mailer over a plain SMTP relay
type SMTPMailer struct {
	host        string
	port        int
	user        string
	pass        string
	frontendURL string
}

// NewSMTPMailer creates a new SMTPMailer from configuration
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}
	return &SMTPMailer{
		host:        cfg.SMTPHost,
		port:        port,
		user:        cfg.SMTPUser,
		pass:        cfg.SMTPPass,
		frontendURL: cfg.FrontendURL,
	}
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return dialer.DialAndSend(msg)
}

// SendConfirmation emails the account activation link. The token inside the
// link is short lived; an expired one is resolved by the resend endpoint.
func (m *SMTPMailer) SendConfirmation(to, name, token string) error {
	link := fmt.Sprintf("%s/confirm-email?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome! Confirm your email address to activate your account:</p>
		<p><a href="%s">Confirm my email</a></p>
		<p>This link expires in 5 minutes. If it has expired you can request a new one from the sign-in page.</p>
	`, name, link)
	return m.send(to, "Confirm your email", body)
}

// SendPasswordReset emails the password reset link
func (m *SMTPMailer) SendPasswordReset(to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your password:</p>
		<p><a href="%s">Reset my password</a></p>
		<p>This link expires in 5 minutes. If you did not ask for it, ignore this email.</p>
	`, name, link)
	return m.send(to, "Reset your password", body)
}

// SendEmailChangeCode emails the six-digit code confirming an email change
func (m *SMTPMailer) SendEmailChangeCode(to, name, code string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Use this code to confirm your new email address:</p>
		<p><strong>%s</strong></p>
		<p>If you did not ask to change your email, ignore this message.</p>
	`, name, code)
	return m.send(to, "Your email change code", body)
}
