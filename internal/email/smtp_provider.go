package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"coachdeck_backend/internal/config"
	"coachdeck_backend/internal/logger"
)

// SMTPProvider - реализация Provider поверх gomail.
type SMTPProvider struct {
	cfg       *config.Config
	templates *TemplateManager
}

// NewSMTPProvider создает SMTP отправитель со встроенными шаблонами
func NewSMTPProvider(cfg *config.Config) (Provider, error) {
	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}
	return &SMTPProvider{cfg: cfg, templates: tm}, nil
}

// Send отправляет email
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	if !p.cfg.Email.Enabled {
		// В test/dev окружениях письма не отправляются, только логируются
		logger.Debug("email sending disabled, skipping", "to", email.To, "subject", email.Subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.Email.FromEmail, p.cfg.Email.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// SendTemplate отправляет email по шаблону
func (p *SMTPProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}
