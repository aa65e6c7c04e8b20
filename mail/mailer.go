package mail

import (
	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Filename string
	Path     string
}

// Sender is the outbound mail transport. The payment pipeline only
// depends on this interface so tests can swap in a fake.
type Sender interface {
	Send(to, subject, html string, attachments ...Attachment) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, html string, attachments ...Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	for _, a := range attachments {
		msg.Attach(a.Path, gomail.Rename(a.Filename))
	}
	return m.dialer.DialAndSend(msg)
}
