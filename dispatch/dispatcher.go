// Package dispatch demultiplexes sampler requests arriving on the serial
// link and interleaves them with operator console commands.
package dispatch

//go:generate go tool mockgen -source=dispatcher.go -destination=mock_dispatcher.go -package=dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"aqusens.io/nora/asrslink/alert"
	"aqusens.io/nora/asrslink/analyzer"
	"aqusens.io/nora/asrslink/link"
	"aqusens.io/nora/asrslink/session"
	"aqusens.io/nora/asrslink/wire"
)

const (
	DefaultPollTimeout     = 100 * time.Millisecond
	DefaultDurationTimeout = 2 * time.Second
)

// Link is the serial link as seen by the dispatcher.
type Link interface {
	link.LineReadWriter
	Reconnect(ctx context.Context) error
}

type Pump interface {
	Stop(ctx context.Context, suppressDone bool) analyzer.Result
	Start(ctx context.Context, suppressDone bool) analyzer.Result
}

// Sessions runs sample sessions, one at a time.
type Sessions interface {
	Run(ctx context.Context, seconds int) (session.Outcome, error)
}

type Tide interface {
	Level(ctx context.Context) string
}

type Reporter interface {
	Report(ctx context.Context, fault alert.Fault, detail string)
	ReportResult(ctx context.Context, res analyzer.Result) bool
}

// Queue yields tokenized operator command lines without blocking.
type Queue interface {
	Next() ([]string, bool)
}

// Observer is told about every request handled.
type Observer interface {
	ObserveRequest(kind string)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string) {}

// Config holds dispatcher timing.
type Config struct {
	// PollTimeout bounds a single serial read so the operator queue is
	// checked regularly.
	PollTimeout time.Duration
	// DurationTimeout is the window for the line following a sample
	// request.
	DurationTimeout time.Duration
	// Location is the zone the epoch reply is shifted into.
	Location *time.Location
	Now      func() time.Time
}

func (c *Config) setDefaults() {
	if c.PollTimeout <= 0 {
		c.PollTimeout = DefaultPollTimeout
	}
	if c.DurationTimeout <= 0 {
		c.DurationTimeout = DefaultDurationTimeout
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Dependencies are the dispatcher's collaborators. Queue and Operator may
// be nil when no console is attached.
type Dependencies struct {
	Serial   Link
	Pump     Pump
	Sessions Sessions
	Tide     Tide
	Reporter Reporter
	Queue    Queue
	Operator *Operator
	Logger   *zap.Logger
	Observer Observer
}

// Dispatcher is the serial read loop. It is single threaded: a sample
// session runs inside the loop and blocks further requests until it ends.
type Dispatcher struct {
	cfg  Config
	deps Dependencies
	log  *zap.Logger
}

func New(cfg Config, deps Dependencies) (*Dispatcher, error) {
	switch {
	case deps.Serial == nil:
		return nil, fmt.Errorf("%w: serial", ErrMissingDependency)
	case deps.Pump == nil:
		return nil, fmt.Errorf("%w: pump", ErrMissingDependency)
	case deps.Sessions == nil:
		return nil, fmt.Errorf("%w: sessions", ErrMissingDependency)
	case deps.Tide == nil:
		return nil, fmt.Errorf("%w: tide", ErrMissingDependency)
	case deps.Reporter == nil:
		return nil, fmt.Errorf("%w: reporter", ErrMissingDependency)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}
	cfg.setDefaults()
	return &Dispatcher{cfg: cfg, deps: deps, log: deps.Logger}, nil
}

// Run reads and handles requests until ctx is done. Serial failures lead to
// a reconnect, never to a return.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Info("Dispatcher started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := d.drainOperator(ctx); err != nil {
			if rerr := d.recoverLink(ctx, err); rerr != nil {
				return rerr
			}
			continue
		}

		line, err := d.readLine(ctx, d.cfg.PollTimeout)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				continue
			}
			if rerr := d.recoverLink(ctx, err); rerr != nil {
				return rerr
			}
			continue
		}

		if err := d.Handle(ctx, line); err != nil {
			if rerr := d.recoverLink(ctx, err); rerr != nil {
				return rerr
			}
		}
	}
}

// drainOperator runs at most one queued console command.
func (d *Dispatcher) drainOperator(ctx context.Context) error {
	if d.deps.Queue == nil || d.deps.Operator == nil {
		return nil
	}
	args, ok := d.deps.Queue.Next()
	if !ok {
		return nil
	}
	d.deps.Observer.ObserveRequest("operator")
	return d.deps.Operator.Handle(ctx, args)
}

// recoverLink handles a serial failure. It returns an error only when the
// loop has to stop.
func (d *Dispatcher) recoverLink(ctx context.Context, cause error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(cause, link.ErrClosed) {
		return cause
	}

	d.log.Warn("Serial link failed, reconnecting", zap.Error(cause))
	if err := d.deps.Serial.Reconnect(ctx); err != nil {
		if ctx.Err() != nil || errors.Is(err, link.ErrClosed) {
			return err
		}
		d.log.Error("Reconnect failed", zap.Error(err))
	}
	return nil
}

func (d *Dispatcher) readLine(ctx context.Context, timeout time.Duration) (string, error) {
	readCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.deps.Serial.ReadLine(readCtx)
}

// Handle dispatches a single request line. Only a serial failure is
// returned.
func (d *Dispatcher) Handle(ctx context.Context, line string) error {
	kind := wire.Classify(line)
	d.deps.Observer.ObserveRequest(kind.String())

	switch kind {
	case wire.TypeTide:
		level := d.deps.Tide.Level(ctx)
		d.log.Info("Tide level requested", zap.String("level", level))
		return d.deps.Serial.WriteLine(ctx, wire.TideReply(level))

	case wire.TypeSample:
		return d.sample(ctx)

	case wire.TypeStopPump:
		d.report(ctx, d.deps.Pump.Stop(ctx, false))
		return nil

	case wire.TypeStartPump:
		d.report(ctx, d.deps.Pump.Start(ctx, false))
		return nil

	case wire.TypeClock:
		epoch := PacificEpoch(d.cfg.Now(), d.cfg.Location)
		d.log.Info("Sending epoch time", zap.Int64("epoch", epoch))
		return d.deps.Serial.WriteLine(ctx, strconv.FormatInt(epoch, 10))

	case wire.TypeFault:
		fault := alert.FromPeer(line)
		d.log.Warn("Sampler reported fault", zap.String("code", line), zap.Stringer("fault", fault))
		d.deps.Reporter.Report(ctx, fault, line)
		return nil

	default:
		d.log.Warn("Received unknown command", zap.String("line", line))
		return nil
	}
}

func (d *Dispatcher) report(ctx context.Context, res analyzer.Result) {
	d.deps.Reporter.ReportResult(ctx, res)
}

// sample reads the duration line following a sample request and runs the
// session. A missing or malformed duration drops the request.
func (d *Dispatcher) sample(ctx context.Context) error {
	line, err := d.readLine(ctx, d.cfg.DurationTimeout)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			d.log.Warn("Expected sample time value after 'S' but none received")
			return nil
		}
		return err
	}
	seconds, ok := wire.ParseDuration(line)
	if !ok {
		d.log.Warn("Malformed sample time value", zap.String("line", line))
		return nil
	}

	out, err := d.deps.Sessions.Run(ctx, seconds)
	if err != nil {
		d.log.Warn("Sample request rejected", zap.Int("seconds", seconds), zap.Error(err))
		return nil
	}
	if errors.Is(out.Err, link.ErrLinkDown) || errors.Is(out.Err, link.ErrNotConnected) {
		return out.Err
	}
	return nil
}
