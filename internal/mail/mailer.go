package mail

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"atelier/internal/config"
	"atelier/internal/model"
)

// Mailer sends transactional email over SMTP.
type Mailer interface {
	SendContactNotification(contact *model.Contact) error
	SendContactConfirmation(contact *model.Contact) error
}

type smtpMailer struct {
	dialer      *gomail.Dialer
	fromEmail   string
	fromName    string
	notifyEmail string
	logger      *zap.Logger
}

// NewMailer creates an SMTP-backed mailer from config.
func NewMailer(cfg *config.Config, logger *zap.Logger) Mailer {
	return &smtpMailer{
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		fromEmail:   cfg.FromEmail,
		fromName:    cfg.FromName,
		notifyEmail: cfg.NotifyEmail,
		logger:      logger,
	}
}

// SendContactNotification notifies the studio inbox about a new submission.
func (m *smtpMailer) SendContactNotification(contact *model.Contact) error {
	subject := fmt.Sprintf("New contact form submission from %s %s", contact.FirstName, contact.LastName)
	body := fmt.Sprintf(
		"Name: %s %s\nEmail: %s\nCompany: %s\n\nMessage:\n%s\n",
		contact.FirstName, contact.LastName, contact.Email, contact.Company, contact.Message,
	)
	return m.send(m.notifyEmail, subject, body)
}

// SendContactConfirmation acknowledges the submission to the sender.
func (m *smtpMailer) SendContactConfirmation(contact *model.Contact) error {
	subject := "Thank you for contacting us"
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for reaching out. We received your message and will get back to you shortly.\n\n%s\n",
		contact.FirstName, m.fromName,
	)
	return m.send(contact.Email, subject, body)
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("send mail failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	m.logger.Info("mail sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
