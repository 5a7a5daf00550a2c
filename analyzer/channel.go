package analyzer

//go:generate go tool mockgen -source=channel.go -destination=mock_channel.go -package=analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// Exchanger sends a command to the analyzer and waits for its verdict.
type Exchanger interface {
	Exchange(ctx context.Context, cmd Command) Result
}

// Observer is notified of every finished exchange.
type Observer interface {
	ObserveExchange(command string, status Status, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveExchange(string, Status, time.Duration) {}

// Channel is the file based command/acknowledgment channel.
//
// Exchanges are serialized: the two files carry one handshake at a time.
type Channel struct {
	commandPath   string
	responsePath  string
	timeout       time.Duration
	pollInterval  time.Duration
	attempts      int
	clearResponse bool
	logger        *zap.Logger
	observer      Observer

	mu sync.Mutex
}

// Option is a function that modifies a Channel
type Option func(*Channel)

// WithTimeout bounds the wait for a complete response.
func WithTimeout(d time.Duration) Option {
	return func(c *Channel) { c.timeout = d }
}

// WithPollInterval sets how often the response file is re-read.
func WithPollInterval(d time.Duration) Option {
	return func(c *Channel) { c.pollInterval = d }
}

// WithAttempts sets how many times Exchange tries a command that timed out.
func WithAttempts(n int) Option {
	return func(c *Channel) { c.attempts = n }
}

// WithClearResponse controls whether the response file is truncated before
// each command so a previous acknowledgment cannot be read as the current one.
func WithClearResponse(clear bool) Option {
	return func(c *Channel) { c.clearResponse = clear }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Channel) { c.logger = l }
}

func WithObserver(o Observer) Option {
	return func(c *Channel) { c.observer = o }
}

// New creates a Channel over the given command and response files.
func New(commandPath, responsePath string, opts ...Option) *Channel {
	c := &Channel{
		commandPath:   commandPath,
		responsePath:  responsePath,
		timeout:       DefaultTimeout,
		pollInterval:  DefaultPollInterval,
		attempts:      1,
		clearResponse: true,
		logger:        zap.NewNop(),
		observer:      nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exchange implements Exchanger using the command's own token and minimum
// length, the configured timeout and the configured number of attempts.
func (c *Channel) Exchange(ctx context.Context, cmd Command) Result {
	return Retry(ctx, c.attempts, func(ctx context.Context) Result {
		return c.SendAndAwait(ctx, cmd, cmd.AckToken, cmd.MinLen, c.timeout)
	})
}

// SendAndAwait writes cmd to the command file, replacing its contents, then
// polls the response file until it holds at least minLen bytes or timeout
// elapses. Each poll re-reads the whole file, so the analyzer may rewrite
// it at any time.
func (c *Channel) SendAndAwait(ctx context.Context, cmd Command, ackToken string, minLen int, timeout time.Duration) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	res := c.sendAndAwait(ctx, cmd, ackToken, minLen, timeout)
	res.Command = cmd
	res.Attempts = 1
	res.Elapsed = time.Since(start)

	c.observer.ObserveExchange(cmd.Name, res.Status, res.Elapsed)

	fields := []zap.Field{
		zap.String("command", cmd.String()),
		zap.Stringer("status", res.Status),
		zap.Duration("elapsed", res.Elapsed),
	}
	switch res.Status {
	case Ack:
		c.logger.Debug("Analyzer acknowledged command", fields...)
	case Nack:
		c.logger.Warn("Analyzer rejected command", append(fields, zap.String("response", res.Response))...)
	default:
		c.logger.Warn("Analyzer exchange failed", append(fields, zap.Error(res.Err))...)
	}
	return res
}

func (c *Channel) sendAndAwait(ctx context.Context, cmd Command, ackToken string, minLen int, timeout time.Duration) Result {
	if c.clearResponse {
		if err := os.Truncate(c.responsePath, 0); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("Unable to clear response file", zap.String("path", c.responsePath), zap.Error(err))
		}
	}

	if err := c.writeCommand(cmd.String()); err != nil {
		return Result{Status: Failed, Err: err}
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		content, err := c.readResponse()
		if err != nil {
			return Result{Status: Failed, Err: err}
		}
		if complete, ok := Match(content, ackToken, minLen); complete {
			if ok {
				return Result{Status: Ack}
			}
			return Result{Status: Nack, Response: content}
		}

		select {
		case <-ctx.Done():
			return Result{Status: Failed, Err: ctx.Err()}
		case <-deadline.C:
			// last look before giving up
			content, err := c.readResponse()
			if err != nil {
				return Result{Status: Failed, Err: err}
			}
			if complete, ok := Match(content, ackToken, minLen); complete {
				if ok {
					return Result{Status: Ack}
				}
				return Result{Status: Nack, Response: content}
			}
			return Result{Status: Timeout}
		case <-ticker.C:
		}
	}
}

func (c *Channel) writeCommand(text string) error {
	f, err := os.OpenFile(c.commandPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open command file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("write command %q: %w", text, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("flush command file: %w", err)
	}
	return f.Close()
}

func (c *Channel) readResponse() (string, error) {
	data, err := os.ReadFile(c.responsePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read response file: %w", err)
	}
	return string(data), nil
}
