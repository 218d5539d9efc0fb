package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
)

// Mailer is the notification transport. One call is one delivery attempt.
type Mailer interface {
	SendEmail(ctx context.Context, from, to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

func LoadSMTPConfigFromEnv() SMTPConfig {
	return SMTPConfig{
		Host:     common.EnvString(common.EnvKeySmtpHost, ""),
		Port:     common.EnvInt(common.EnvKeySmtpPort, 587),
		Username: common.EnvString(common.EnvKeySmtpUsername, ""),
		Password: common.EnvString(common.EnvKeySmtpPassword, ""),
		Timeout:  common.EnvSeconds(common.EnvKeySmtpTimeoutSeconds, 10*time.Second),
	}
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(m.cfg.Timeout),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

func buildMessage(from, to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (m *SMTPMailer) SendEmail(ctx context.Context, from, to, subject, body string) error {
	msg, err := buildMessage(from, to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogMailer only writes the email to the log. Used when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) SendEmail(ctx context.Context, from, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	common.GetLoggerWith(common.LoggerNameMailer).Info("Email not sent, smtp disabled",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(body)),
	)
	return nil
}

// FromEnv picks the SMTP transport when configured, the log transport otherwise.
func FromEnv() Mailer {
	cfg := LoadSMTPConfigFromEnv()
	if !cfg.Enabled() {
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}
