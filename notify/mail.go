package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
)

type SMTPConfig struct {
	From     string
	Password string
	Host     string
	Address  string
}

type Mailer struct {
	cfg      SMTPConfig
	sendMail func(ctx context.Context, to string, msg []byte) error
}

func NewMailer(cfg SMTPConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	m.sendMail = m.deliver
	return m
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return errors.New("no recipient address")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.sendMail(ctx, to, buildMessage(m.cfg.From, subject, body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// deliver speaks SMTP over a connection bound to ctx, so a server that stalls
// at any point of the exchange cannot outlive the caller's deadline.
func (m *Mailer) deliver(ctx context.Context, to string, msg []byte) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", m.cfg.Address)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	host := m.cfg.Host
	if host == "" {
		host, _, _ = net.SplitHostPort(m.cfg.Address)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if m.cfg.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", m.cfg.From, m.cfg.Password, host)); err != nil {
				return err
			}
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, subject, body string) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n%s",
		from,
		subject,
		body,
	))
}
