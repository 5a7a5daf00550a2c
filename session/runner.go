package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aqusens.io/nora/asrslink/analyzer"
	"aqusens.io/nora/asrslink/link"
	"aqusens.io/nora/asrslink/wire"
)

const (
	DefaultCadence      = 15 * time.Second
	DefaultPumpSettle   = time.Second
	DefaultReplyTimeout = 5 * time.Second
)

// Config holds the timing of a session.
type Config struct {
	// BaseDir is where session directories are created.
	BaseDir string
	// Cadence separates temperature polls.
	Cadence time.Duration
	// PumpSettle is the pause after each priming pump action.
	PumpSettle time.Duration
	// ReplyTimeout bounds the wait for one temperature reply.
	ReplyTimeout time.Duration
	Clock        Clock
}

func (c *Config) setDefaults() {
	if c.Cadence <= 0 {
		c.Cadence = DefaultCadence
	}
	if c.PumpSettle < 0 {
		c.PumpSettle = 0
	}
	if c.ReplyTimeout <= 0 {
		c.ReplyTimeout = DefaultReplyTimeout
	}
	if c.Clock == nil {
		c.Clock = realClock{}
	}
}

// Dependencies are the collaborators shared by every session.
type Dependencies struct {
	Analyzer  analyzer.Exchanger
	Pump      Pump
	Serial    link.LineReadWriter
	Reporter  Reporter
	Telemetry TelemetryWriter
	Logger    *zap.Logger
	Observer  Observer
}

func (d *Dependencies) validate() error {
	switch {
	case d.Analyzer == nil:
		return fmt.Errorf("%w: analyzer", ErrMissingDependency)
	case d.Pump == nil:
		return fmt.Errorf("%w: pump", ErrMissingDependency)
	case d.Serial == nil:
		return fmt.Errorf("%w: serial", ErrMissingDependency)
	case d.Reporter == nil:
		return fmt.Errorf("%w: reporter", ErrMissingDependency)
	case d.Telemetry == nil:
		return fmt.Errorf("%w: telemetry", ErrMissingDependency)
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Observer == nil {
		d.Observer = nopObserver{}
	}
	return nil
}

// Runner runs at most one session at a time. A Run while another session is
// active is rejected with ErrSessionActive.
type Runner struct {
	cfg  Config
	deps Dependencies

	guard sync.Mutex

	mu     sync.Mutex
	active *Session
	last   *Outcome
}

func NewRunner(cfg Config, deps Dependencies) (*Runner, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &Runner{cfg: cfg, deps: deps}, nil
}

// Run executes a session of the given length in seconds and blocks until
// it is done or aborted.
func (r *Runner) Run(ctx context.Context, seconds int) (Outcome, error) {
	if seconds < 0 || int64(seconds) > wire.MaxDurationSeconds {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidDuration, seconds)
	}
	if !r.guard.TryLock() {
		return Outcome{}, ErrSessionActive
	}
	defer r.guard.Unlock()

	id := uuid.NewString()
	s := &Session{
		id:       id,
		duration: time.Duration(seconds) * time.Second,
		cfg:      r.cfg,
		deps:     r.deps,
		logger:   r.deps.Logger.With(zap.String("session_id", id)),
		state:    Idle,
	}

	r.mu.Lock()
	r.active = s
	r.mu.Unlock()

	out := s.run(ctx)

	r.mu.Lock()
	r.active = nil
	r.last = &out
	r.mu.Unlock()
	return out, nil
}

// Active returns a view of the running session, if any.
func (r *Runner) Active() (Snapshot, bool) {
	r.mu.Lock()
	s := r.active
	r.mu.Unlock()
	if s == nil {
		return Snapshot{}, false
	}
	return s.Snapshot(), true
}

// Last returns the outcome of the most recent finished session.
func (r *Runner) Last() (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return Outcome{}, false
	}
	return *r.last, true
}
