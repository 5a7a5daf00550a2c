package link

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Supervisor owns the single serial Link of the process and replaces it
// when it fails.
//
// The Link handle is swapped under a lock: during a teardown the Supervisor
// holds no Link at all, so callers see ErrNotConnected rather than a read on
// a half-closed handle.
type Supervisor struct {
	config Config

	mu     sync.RWMutex
	link   *Link
	closed bool
}

// NewSupervisor creates a Supervisor. Call Connect before use.
func NewSupervisor(config Config) (*Supervisor, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()
	return &Supervisor{config: config}, nil
}

// Connect dials until a Link is established, the attempt limit is reached
// or ctx is done.
func (s *Supervisor) Connect(ctx context.Context) error {
	logger := s.config.logger

	for attempt := 1; ; attempt++ {
		s.mu.RLock()
		closed := s.closed
		s.mu.RUnlock()
		if closed {
			return ErrClosed
		}

		transport, err := s.config.dialer.Dial(ctx)
		if err == nil && transport == nil {
			err = errors.New("dialer returned no transport")
		}
		if err == nil {
			s.mu.Lock()
			if s.closed {
				s.mu.Unlock()
				transport.Close()
				return ErrClosed
			}
			s.link = New(transport)
			s.mu.Unlock()
			logger.Info("Serial link established", zap.Int("attempt", attempt))
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.config.maxAttempts > 0 && attempt >= s.config.maxAttempts {
			return fmt.Errorf("connect after %d attempts: %w", attempt, err)
		}

		logger.Warn("Unable to set up serial connection, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", s.config.retryInterval),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.config.retryInterval):
		}
	}
}

// Reconnect tears the current Link down and dials a new one.
func (s *Supervisor) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	old := s.link
	s.link = nil
	s.mu.Unlock()

	if old != nil {
		cause := old.Err()
		if err := old.Close(); err != nil {
			s.config.logger.Debug("Closing failed link", zap.Error(err))
		}
		s.config.logger.Warn("Serial disconnected, reconnecting", zap.Error(cause))
	}

	if err := s.Connect(ctx); err != nil {
		return err
	}
	s.config.onReconnect()
	return nil
}

// WriteLine implements LineWriter on the current Link.
func (s *Supervisor) WriteLine(ctx context.Context, line string) error {
	l, err := s.current()
	if err != nil {
		return err
	}
	return l.WriteLine(ctx, line)
}

// ReadLine implements LineReader on the current Link.
func (s *Supervisor) ReadLine(ctx context.Context) (string, error) {
	l, err := s.current()
	if err != nil {
		return "", err
	}
	return l.ReadLine(ctx)
}

// Healthy reports whether a Link is established and up.
func (s *Supervisor) Healthy() bool {
	l, err := s.current()
	return err == nil && l.Err() == nil
}

// Close closes the current Link. The Supervisor cannot be reused.
func (s *Supervisor) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	l := s.link
	s.link = nil
	s.mu.Unlock()

	if l != nil {
		return l.Close()
	}
	return nil
}

func (s *Supervisor) current() (*Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.link == nil {
		return nil, ErrNotConnected
	}
	return s.link, nil
}
