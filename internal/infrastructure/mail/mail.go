package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

func CreateSMTPMailer(host string, port int, username string, password string, sender string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to string, name string, employeeCode string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", "Welcome aboard")
	message.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour employee account has been created. Your employee code is %s.\nUse it together with your e-mail address to sign in.\n",
		name, employeeCode,
	))

	return m.send(ctx, message)
}

func (m *SMTPMailer) send(ctx context.Context, message *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return m.dialer.DialAndSend(message)
}
