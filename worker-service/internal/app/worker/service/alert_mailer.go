package service

import (
	"crypto/tls"
	"fmt"

	"bistrobot/worker-service/internal/app/worker/entity"

	mail "github.com/go-mail/mail/v2"
)

// SMTPAlertMailer отправляет владельцу ресторана уведомления
// о негативных отзывах через SMTP
type SMTPAlertMailer struct {
	dialer *mail.Dialer
	from   string
	to     string
}

// NewSMTPAlertMailer создает новый SMTP mailer
func NewSMTPAlertMailer(host string, port int, username, password, from, to string) *SMTPAlertMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.StartTLSPolicy = mail.MandatoryStartTLS
	dialer.TLSConfig = &tls.Config{ServerName: host}

	return &SMTPAlertMailer{
		dialer: dialer,
		from:   from,
		to:     to,
	}
}

// SendNegativeReviewAlert отправляет письмо о негативном отзыве
func (m *SMTPAlertMailer) SendNegativeReviewAlert(event *entity.ReviewEvent) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("Negative review on %s from %s", event.Platform, event.Customer))
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>A negative review needs your attention.</p>"+
			"<p><b>Platform:</b> %s<br><b>Customer:</b> %s<br><b>Rating:</b> %d/5</p>"+
			"<p>Open the dashboard to draft a reply.</p>",
		event.Platform, event.Customer, event.Rating,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	return nil
}
