package messenger

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailSender(host string, port int, username, password, senderEmail string) *EmailSender {
	return &EmailSender{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
	}
}

func (s *EmailSender) Send(to, subject, body string) error {
	if subject == "" {
		subject = "Notification"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
