// Package notify dispatches signal alert emails.
package notify

import (
	"crypto/tls"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// Mailer sends HTML alert mail over implicit-TLS SMTP (port 465 style).
type Mailer struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// Send delivers a multipart/alternative message with a plain-text
// fallback and an HTML body.
func (m Mailer) Send(recipient, subject, textAlt, htmlBody string) error {
	if m.Host == "" || m.Sender == "" || recipient == "" {
		return fmt.Errorf("mailer: host, sender and recipient are required")
	}

	msg, err := buildMessage(m.Sender, recipient, subject, textAlt, htmlBody)
	if err != nil {
		return fmt.Errorf("mailer: build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.Host})
	if err != nil {
		return fmt.Errorf("mailer: dial %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("mailer: smtp handshake: %w", err)
	}
	defer c.Close()

	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("mailer: auth: %w", err)
	}
	if err := c.Mail(m.Sender); err != nil {
		return err
	}
	if err := c.Rcpt(recipient); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func buildMessage(sender, recipient, subject, textAlt, htmlBody string) ([]byte, error) {
	var b strings.Builder
	mw := multipart.NewWriter(&b)

	fmt.Fprintf(&b, "From: %s\r\n", sender)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())

	// Plain part first so HTML-capable clients prefer the richer one.
	pw, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := pw.Write([]byte(textAlt)); err != nil {
		return nil, err
	}

	hw, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := hw.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
