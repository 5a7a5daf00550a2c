package alert

//go:generate go tool mockgen -source=notifier.go -destination=mock_notifier.go -package=alert

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var (
	// ErrNoRecipients is returned by NewSMTPNotifier when the recipient list
	// is empty.
	ErrNoRecipients = errors.New("alert: no recipients configured")

	// ErrNoSender is returned by NewSMTPNotifier without a From address.
	ErrNoSender = errors.New("alert: no sender address configured")
)

// Notifier delivers an alert to its recipients.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

// SMTPNotifier mails alerts. Port 465 uses implicit TLS, other ports
// upgrade with STARTTLS.
type SMTPNotifier struct {
	from string
	to   []string
	send func(...*gomail.Message) error
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.From == "" {
		return nil, ErrNoSender
	}
	var to []string
	for _, r := range cfg.Recipients {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == 465
	return &SMTPNotifier{
		from: cfg.From,
		to:   to,
		send: d.DialAndSend,
	}, nil
}

func (n *SMTPNotifier) message(a Alert) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to...)
	m.SetHeader("Subject", a.Subject)
	m.SetBody("text/plain", a.Body)
	return m
}

// Notify sends one message. It returns when ctx is done even if the relay
// is still holding the connection; that send is left to finish on its own.
func (n *SMTPNotifier) Notify(ctx context.Context, a Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := n.message(a)
	done := make(chan error, 1)
	go func() {
		done <- n.send(m)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("send alert %q: %w", a.Subject, ctx.Err())
	}
}

// LogNotifier writes alerts to the log. It stands in when no mail relay is
// configured.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, a Alert) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Warn("Alert", zap.String("subject", a.Subject), zap.String("body", a.Body))
	return nil
}
