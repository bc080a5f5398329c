package email

import (
	"fmt"
	"net/smtp"
	"os"
)

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// Configured reports whether the SMTP env vars are set; without them the
// contact form degrades to a logged no-op.
func (e *EmailService) Configured() bool {
	return e.host != "" && e.from != ""
}

// SendContactRequest forwards a contact-form submission to the company
// mailbox configured in the site settings.
func (e *EmailService) SendContactRequest(to, name, phone, message string) error {
	subject := "New contact request"
	body := fmt.Sprintf("Name: %s\nPhone: %s\n\n%s\n", name, phone, message)

	msg := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.from, to, subject, body)

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	return smtp.SendMail(addr, auth, e.from, []string{to}, []byte(msg))
}
