// Package notify delivers verification codes to account holders.
package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/model"
)

const (
	verificationSubject = "Verify Your Email Address"
	dialTimeout         = 10 * time.Second
	defaultAttempts     = 3
	defaultBackoff      = 500 * time.Millisecond
)

//go:embed templates/*.html
var templates embed.FS

var verificationTemplate = template.Must(template.ParseFS(templates, "templates/verification.html"))

var _ model.Notifier = (*Mailer)(nil)

// Sender transmits one prepared message.
type Sender interface {
	Send(ctx context.Context, from, to string, msg []byte) error
}

// MailerConfig configures the SMTP mailer.
type MailerConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	ImplicitTLS bool
	CodeTTL     time.Duration
	Attempts    uint64
	Backoff     time.Duration
}

// Mailer sends the HTML verification email over SMTP. Transient failures are
// retried with exponential backoff; permanent 5xx replies are not.
type Mailer struct {
	from     string
	codeTTL  time.Duration
	attempts uint64
	backoff  time.Duration
	sender   Sender
	logger   *logger.Logger
}

func NewMailer(cfg MailerConfig, logger *logger.Logger) *Mailer {
	return NewMailerWithSender(cfg, &SMTPSender{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Username:    cfg.Username,
		Password:    cfg.Password,
		ImplicitTLS: cfg.ImplicitTLS,
	}, logger)
}

func NewMailerWithSender(cfg MailerConfig, sender Sender, logger *logger.Logger) *Mailer {
	m := &Mailer{
		from:     cfg.From,
		codeTTL:  cfg.CodeTTL,
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
		sender:   sender,
		logger:   logger,
	}
	if m.codeTTL <= 0 {
		m.codeTTL = model.VerificationCodeDuration
	}
	if m.attempts == 0 {
		m.attempts = defaultAttempts
	}
	if m.backoff <= 0 {
		m.backoff = defaultBackoff
	}
	return m
}

func (m *Mailer) SendCode(ctx context.Context, identity, code string) error {
	msg, err := m.compose(identity, code)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrDeliveryFailed, err)
	}

	backoff := retry.WithMaxRetries(m.attempts-1, retry.NewExponential(m.backoff))
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := m.sender.Send(ctx, m.from, identity, msg)
		if err == nil {
			return nil
		}
		if permanent(err) {
			return err
		}
		m.logger.Warn("Mailer: send attempt failed",
			"attempt", attempt,
			"error", err.Error())
		return retry.RetryableError(err)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrDeliveryFailed, err)
	}

	m.logger.Debug("Mailer: verification code sent", "identity", identity)
	return nil
}

func (m *Mailer) compose(to, code string) ([]byte, error) {
	var body bytes.Buffer
	data := struct {
		Code      string
		ExpiresIn string
	}{
		Code:      code,
		ExpiresIn: humanizeMinutes(m.codeTTL),
	}
	if err := verificationTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render verification email: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", verificationSubject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}

func humanizeMinutes(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return strconv.Itoa(minutes) + " minutes"
}

func permanent(err error) bool {
	var protoErr *textproto.Error
	return errors.As(err, &protoErr) && protoErr.Code >= 500
}

// SMTPSender speaks SMTP either over implicit TLS (port 465) or plain TCP
// upgraded with STARTTLS when the server offers it.
type SMTPSender struct {
	Host        string
	Port        int
	Username    string
	Password    string
	ImplicitTLS bool
	TLSConfig   *tls.Config
}

func (s *SMTPSender) Send(ctx context.Context, from, to string, msg []byte) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}

	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to start smtp session: %w", err)
	}
	defer c.Close()

	if !s.ImplicitTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(s.tlsConfig()); err != nil {
				return fmt.Errorf("failed to start tls: %w", err)
			}
		}
	}

	if s.Username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", s.Username, s.Password, s.Host)); err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
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

func (s *SMTPSender) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	dialer := &net.Dialer{Timeout: dialTimeout}

	if s.ImplicitTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: s.tlsConfig()}
		return tlsDialer.DialContext(ctx, "tcp", addr)
	}
	return dialer.DialContext(ctx, "tcp", addr)
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	if s.TLSConfig != nil {
		return s.TLSConfig
	}
	return &tls.Config{ServerName: s.Host, MinVersion: tls.VersionTLS12}
}
