package mailer

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	mail "gopkg.in/mail.v2"
)

type SMTPClient struct {
	dialer    *mail.Dialer
	fromEmail string
}

func NewSMTPClient(host string, port int, username, password, fromEmail string) (*SMTPClient, error) {
	if host == "" || fromEmail == "" {
		return nil, fmt.Errorf("smtp host and from email are required")
	}

	dialer := mail.NewDialer(host, port, username, password)

	return &SMTPClient{
		dialer:    dialer,
		fromEmail: fromEmail,
	}, nil
}

// Send renders the named embedded template (its "subject" and "body" blocks)
// and delivers the mail, retrying transient failures with a short backoff.
func (c *SMTPClient) Send(templateFile, username, email string, data any) (int, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return -1, fmt.Errorf("parse template: %w", err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return -1, fmt.Errorf("execute subject: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return -1, fmt.Errorf("execute body: %w", err)
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(c.fromEmail, FromName))
	msg.SetAddressHeader("To", email, username)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/html", body.String())

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.dialer.DialAndSend(msg); err != nil {
			lastErr = err
			time.Sleep(time.Second * time.Duration(attempt))
			continue
		}
		return attempt, nil
	}

	return -1, fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
