package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"mindzy/internal/models"
)

type EmailService interface {
	SendTicket(email string, ev models.Event, co models.Checkout, pdfPath string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService returns nil when no SMTP host is configured.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	if smtpHost == "" {
		return nil
	}
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendTicket(email string, ev models.Event, co models.Checkout, pdfPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Tu entrada: "+ev.Titulo)

	body := fmt.Sprintf(`
		<h2>¡Entrada confirmada!</h2>
		<p><b>%s</b> · %s</p>
		<p>Total pagado: $%s</p>
		<p>Código de compra: <code>%s</code></p>
		<p>Adjuntamos tu entrada en PDF.</p>
	`, ev.Titulo, ev.Fecha, co.Amount.StringFixed(2), co.ID)

	m.SetBody("text/html", body)
	if pdfPath != "" {
		m.Attach(pdfPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}
	return nil
}
