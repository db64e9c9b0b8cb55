package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"time"

	"github.com/securevoice/securevoice/pkg/slogx"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string // defaults to Username
	FromName string
}

// SMTPMailer sends through an SMTP relay. Port 465 uses implicit TLS; other
// ports upgrade with STARTTLS when the server offers it.
//
// Without credentials the mailer runs in dev mode: messages are logged and
// dropped.
type SMTPMailer struct {
	cfg     SMTPConfig
	devMode bool
	timeout time.Duration
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.FromName == "" {
		cfg.FromName = "SecureVoice"
	}
	return &SMTPMailer{
		cfg:     cfg,
		devMode: cfg.Username == "" || cfg.Password == "",
		timeout: 15 * time.Second,
	}
}

// DevMode reports whether messages are dropped instead of delivered.
func (m *SMTPMailer) DevMode() bool { return m.devMode }

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	logger := slogx.FromContext(ctx)

	if m.devMode {
		logger.Info("email_suppressed",
			slog.String("to", slogx.Mask(msg.To)),
			slog.String("subject", msg.Subject),
		)
		return nil
	}

	if _, err := mail.ParseAddress(msg.To); err != nil {
		return fmt.Errorf("notify: invalid recipient: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	conn, err := m.dial(ctx)
	if err != nil {
		return fmt.Errorf("notify: dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("notify: smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("notify: starttls: %w", err)
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("notify: smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("notify: mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("notify: rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("notify: data: %w", err)
	}
	if _, err := w.Write(m.build(msg, time.Now())); err != nil {
		_ = w.Close()
		return fmt.Errorf("notify: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("notify: close body: %w", err)
	}

	logger.Info("email_sent",
		slog.String("to", slogx.Mask(msg.To)),
		slog.String("subject", msg.Subject),
	)
	return client.Quit()
}

func (m *SMTPMailer) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if m.cfg.Port == "465" {
		d := &tls.Dialer{Config: &tls.Config{ServerName: m.cfg.Host}}
		return d.DialContext(ctx, "tcp", addr)
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

// build renders the RFC 5322 message.
func (m *SMTPMailer) build(msg Message, now time.Time) []byte {
	from := mail.Address{Name: m.cfg.FromName, Address: m.cfg.From}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from.String())
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return b.Bytes()
}
