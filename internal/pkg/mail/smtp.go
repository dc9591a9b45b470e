package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var (
	// ErrSMTPAddrRequired is returned when host or port is missing.
	ErrSMTPAddrRequired = errors.New("mail: smtp host and port are required")
	// ErrNoRecipients is returned when To, Cc, and Bcc are all empty.
	ErrNoRecipients = errors.New("mail: no recipients")
	// ErrNoSender is returned when neither the message nor the config names a sender.
	ErrNoSender = errors.New("mail: no sender")
)

// SMTPConfig configures the SMTP sender.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Username authenticates against the server when set together with Password.
	Username string
	// Password is the SMTP password.
	Password string
	// From is the default sender used when Message.From is empty.
	From string
}

// SMTP delivers mail through a plain SMTP server.
type SMTP struct {
	addr        string
	defaultFrom string
	auth        smtp.Auth
}

// NewSMTP builds an SMTP sender from cfg.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPAddrRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		defaultFrom: cfg.From,
		auth:        auth,
	}, nil
}

// Send delivers msg over SMTP.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipients := make([]string, 0, len(msg.To)+len(msg.Cc)+len(msg.Bcc))
	recipients = append(recipients, msg.To...)
	recipients = append(recipients, msg.Cc...)
	recipients = append(recipients, msg.Bcc...)
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = s.defaultFrom
	}
	if from == "" {
		return ErrNoSender
	}

	body, contentType := renderBody(msg)

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(msg.To, ", "),
	}
	if len(msg.Cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(msg.Cc, ", "))
	}
	headers = append(headers,
		"Subject: "+msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: "+contentType,
	)

	raw := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	if err := ctx.Err(); err != nil {
		return err
	}

	return smtp.SendMail(s.addr, s.auth, from, recipients, []byte(raw))
}

// Close implements io.Closer. SMTP keeps no persistent connection.
func (s *SMTP) Close() error {
	return nil
}

func renderBody(msg Message) (body, contentType string) {
	if msg.HTMLBody == "" {
		return msg.TextBody, "text/plain; charset=UTF-8"
	}
	if msg.TextBody == "" {
		return msg.HTMLBody, "text/html; charset=UTF-8"
	}

	boundary := mimeBoundary()

	var sb strings.Builder
	sb.WriteString("This is a multipart message in MIME format.\r\n")
	fmt.Fprintf(&sb, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, msg.TextBody)
	fmt.Fprintf(&sb, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, msg.HTMLBody)
	fmt.Fprintf(&sb, "--%s--", boundary)

	return sb.String(), "multipart/alternative; boundary=" + boundary
}

func mimeBoundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "otpgate-boundary"
	}
	return "otpgate-" + hex.EncodeToString(b[:])
}
