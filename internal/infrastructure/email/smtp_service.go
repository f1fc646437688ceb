package email

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/rs/zerolog/log"
)

// Sender delivers a single message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig is the relay configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type smtpSender struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender sends multipart/alternative mail through the relay. Auth is
// only used when a username is configured (local relays like MailHog).
func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(msg.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}

	body, err := s.build(msg)
	if err != nil {
		return fmt.Errorf("build email: %w", err)
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, s.cfg.From, []string{msg.To}, body); err != nil {
		log.Error().Err(err).Str("to", msg.To).Str("smtp_addr", addr).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

func (s *smtpSender) build(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	from := (&mail.Address{Name: s.cfg.FromName, Address: s.cfg.From}).String()
	headers := []string{
		"From: " + from,
		"To: " + msg.To,
		"Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject),
		"Date: " + time.Now().Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q", mw.Boundary()),
	}
	if msg.ReplyTo != "" {
		headers = append(headers, "Reply-To: "+msg.ReplyTo)
	}
	var head bytes.Buffer
	for _, h := range headers {
		head.WriteString(h + "\r\n")
	}
	head.WriteString("\r\n")

	parts := []struct{ contentType, body string }{{"text/plain; charset=UTF-8", msg.Text}}
	if msg.HTML != "" {
		parts = append(parts, struct{ contentType, body string }{"text/html; charset=UTF-8", msg.HTML})
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(p.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	return append(head.Bytes(), buf.Bytes()...), nil
}

// logSender is used when no SMTP relay is configured: the message is logged
// and reported as sent.
type logSender struct{}

func NewLogSender() Sender { return logSender{} }

func (logSender) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("[EMAIL] SMTP disabled, message not sent")
	return nil
}
