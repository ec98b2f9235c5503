package mailing

import (
	"Billfold-Backend/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

type (
	// Mailer is constructed once at startup and injected into services that
	// send notification mail.
	Mailer interface {
		Send(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		host       string
		port       int
		senderName string
		email      string
		password   string
	}
)

func NewMailer() (Mailer, error) {
	port, err := strconv.Atoi(utils.GetConfig("SMTP_PORT"))
	if err != nil {
		return nil, err
	}

	return &smtpMailer{
		host:       utils.GetConfig("SMTP_HOST"),
		port:       port,
		senderName: utils.GetConfig("SMTP_SENDER_NAME"),
		email:      utils.GetConfig("SMTP_AUTH_EMAIL"),
		password:   utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}, nil
}

func (m *smtpMailer) Send(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.email)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.email, m.password)
	return dialer.DialAndSend(mailer)
}
