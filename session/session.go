// Package session runs a sample collection workflow: directory setup, pump
// priming, sample collection with periodic temperature polling, and the
// completion signal to the sampler.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"aqusens.io/nora/asrslink/alert"
	"aqusens.io/nora/asrslink/analyzer"
	"aqusens.io/nora/asrslink/telemetry"
	"aqusens.io/nora/asrslink/wire"
)

// DirectoryLayout names a session directory after its start time.
const DirectoryLayout = "060102_150405"

// Pump stops and starts the analyzer pump.
type Pump interface {
	Stop(ctx context.Context, suppressDone bool) analyzer.Result
	Start(ctx context.Context, suppressDone bool) analyzer.Result
}

// Reporter receives every fault raised during a session.
type Reporter interface {
	Report(ctx context.Context, fault alert.Fault, detail string)
	ReportResult(ctx context.Context, res analyzer.Result) bool
}

// TelemetryWriter stores the per-session temperature summary.
type TelemetryWriter interface {
	Append(s telemetry.Summary) error
}

// Observer is told about finished sessions and every temperature reading.
type Observer interface {
	ObserveSession(state string, elapsed time.Duration)
	ObserveTemperature(celsius float64)
}

type nopObserver struct{}

func (nopObserver) ObserveSession(string, time.Duration) {}
func (nopObserver) ObserveTemperature(float64)           {}

// Outcome describes a finished session.
type Outcome struct {
	ID        string
	Directory string
	State     State
	// FailedIn is the state the session aborted from.
	FailedIn State
	Readings  []telemetry.Reading
	// Summary is nil when no reading was collected.
	Summary *telemetry.Summary
	Err     error
	Started time.Time
	Elapsed time.Duration
}

// Session is one run of the workflow. It is used once and discarded.
type Session struct {
	id       string
	duration time.Duration
	cfg      Config
	deps     Dependencies
	logger   *zap.Logger

	mu        sync.Mutex
	state     State
	started   time.Time
	directory string
	readings  []telemetry.Reading
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.logger.Debug("Session state", zap.Stringer("state", st))
}

// Snapshot is a point in time view of a running session.
type Snapshot struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Directory string    `json:"directory"`
	Started   time.Time `json:"started"`
	Duration  string    `json:"duration"`
	Readings  int       `json:"readings"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.id,
		State:     s.state.String(),
		Directory: s.directory,
		Started:   s.started,
		Duration:  s.duration.String(),
		Readings:  len(s.readings),
	}
}

func (s *Session) run(ctx context.Context) Outcome {
	s.mu.Lock()
	s.started = s.cfg.Clock.Now()
	s.directory = filepath.Join(s.cfg.BaseDir, s.started.Format(DirectoryLayout))
	s.mu.Unlock()

	s.logger = s.logger.With(zap.String("directory", s.directory))
	s.logger.Info("Sample session started", zap.Duration("duration", s.duration))

	out := Outcome{ID: s.id, Directory: s.directory, Started: s.started}
	failedIn, err := s.sequence(ctx)

	out.Readings = s.readings
	if err != nil {
		out.State = Aborted
		out.FailedIn = failedIn
		out.Err = err
	} else {
		out.State = Done
	}
	if sum, err := telemetry.Aggregate(s.readings); err == nil {
		out.Summary = &sum
	}
	s.setState(out.State)

	// the sampler waits on this marker whichever way the session ended
	if err := s.deps.Serial.WriteLine(ctx, wire.Done); err != nil {
		s.logger.Error("Failed to signal session completion", zap.Error(err))
	}

	out.Elapsed = s.cfg.Clock.Now().Sub(s.started)
	s.deps.Observer.ObserveSession(out.State.String(), out.Elapsed)
	if out.Err != nil {
		s.logger.Warn("Sample session aborted",
			zap.Stringer("failed_in", out.FailedIn),
			zap.Duration("elapsed", out.Elapsed),
			zap.Error(out.Err))
	} else {
		s.logger.Info("Sample session complete",
			zap.Int("readings", len(out.Readings)),
			zap.Duration("elapsed", out.Elapsed))
	}
	return out
}

// sequence walks the workflow and returns the state it failed in.
func (s *Session) sequence(ctx context.Context) (State, error) {
	s.setState(DirectorySetup)
	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		err = fmt.Errorf("create session directory: %w", err)
		s.deps.Reporter.Report(ctx, alert.Unknown, err.Error())
		return DirectorySetup, err
	}
	if err := s.exchange(ctx, analyzer.SaveToDirectory(s.directory)); err != nil {
		return DirectorySetup, err
	}

	s.setState(PumpPriming)
	if err := s.check(ctx, s.deps.Pump.Stop(ctx, true)); err != nil {
		return PumpPriming, err
	}
	if err := s.wait(ctx, s.cfg.PumpSettle); err != nil {
		return PumpPriming, err
	}
	if err := s.check(ctx, s.deps.Pump.Start(ctx, true)); err != nil {
		return PumpPriming, err
	}
	if err := s.wait(ctx, s.cfg.PumpSettle); err != nil {
		return PumpPriming, err
	}

	s.setState(CollectionActive)
	deadline := s.cfg.Clock.Now().Add(s.duration)
	if err := s.exchange(ctx, analyzer.StartSampleCollection(1)); err != nil {
		return CollectionActive, err
	}
	if err := s.collect(ctx, deadline); err != nil {
		s.halt(ctx, err)
		return CollectionActive, err
	}

	s.setState(CollectionWinding)
	s.record(ctx)
	if err := s.exchange(ctx, analyzer.StopSampleCollection()); err != nil {
		return CollectionWinding, err
	}
	return Done, nil
}

// halt reports a polling failure and stops the analyzer collecting. The
// stop is sent even when ctx is cancelled so the analyzer is not left
// recording; its outcome is only logged.
func (s *Session) halt(ctx context.Context, cause error) {
	if ctx.Err() == nil {
		s.deps.Reporter.Report(ctx, alert.Unknown, cause.Error())
	}
	res := s.deps.Analyzer.Exchange(context.WithoutCancel(ctx), analyzer.StopSampleCollection())
	if !res.OK() {
		s.logger.Warn("Failed to stop sample collection",
			zap.Stringer("status", res.Status),
			zap.Error(res.Err))
	}
}

func (s *Session) exchange(ctx context.Context, cmd analyzer.Command) error {
	return s.check(ctx, s.deps.Analyzer.Exchange(ctx, cmd))
}

func (s *Session) check(ctx context.Context, res analyzer.Result) error {
	if res.OK() {
		return nil
	}
	s.deps.Reporter.ReportResult(ctx, res)
	if res.Err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrAnalyzer, res.Command, res.Status, res.Err)
	}
	return fmt.Errorf("%w: %s %s", ErrAnalyzer, res.Command, res.Status)
}

// Polls returns how many temperature readings a session of d requests.
func Polls(d, cadence time.Duration) int {
	if cadence <= 0 {
		return 0
	}
	return max(int(d/cadence)-1, 0)
}

// collect polls the sampler for temperatures once per cadence until the
// poll budget is spent or the deadline passes.
func (s *Session) collect(ctx context.Context, deadline time.Time) error {
	polls := Polls(s.duration, s.cfg.Cadence)
	s.logger.Info("Collecting temperatures", zap.Int("polls", polls))

	for i := 0; i < polls; i++ {
		begin := s.cfg.Clock.Now()
		if !begin.Before(deadline) {
			break
		}

		if err := s.poll(ctx, min(s.cfg.ReplyTimeout, deadline.Sub(begin))); err != nil {
			return err
		}

		now := s.cfg.Clock.Now()
		rest := min(s.cfg.Cadence-now.Sub(begin), deadline.Sub(now))
		if err := s.wait(ctx, rest); err != nil {
			return err
		}
	}
	return nil
}

// poll requests one temperature and waits up to timeout for the reply. Only
// a serial failure or cancellation is returned; a missing or malformed reply
// skips the reading.
func (s *Session) poll(ctx context.Context, timeout time.Duration) error {
	if err := s.deps.Serial.WriteLine(ctx, wire.TempPoll); err != nil {
		return fmt.Errorf("request temperature: %w", err)
	}

	readCtx, cancel := context.WithTimeout(ctx, timeout)
	line, err := s.deps.Serial.ReadLine(readCtx)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("No temperature reply", zap.Duration("timeout", timeout))
			return nil
		}
		return fmt.Errorf("read temperature: %w", err)
	}

	celsius, ok := parseCelsius(line)
	if !ok {
		s.logger.Warn("Skipping malformed temperature", zap.String("reply", line))
		return nil
	}

	s.mu.Lock()
	s.readings = append(s.readings, telemetry.Reading{Time: s.cfg.Clock.Now(), Celsius: celsius})
	s.mu.Unlock()
	s.deps.Observer.ObserveTemperature(celsius)
	return nil
}

// parseCelsius accepts a finite decimal temperature. ParseFloat alone would
// also take NaN, Inf and hex floats.
func parseCelsius(line string) (float64, bool) {
	if strings.ContainsAny(line, "xX") {
		return 0, false
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// record appends the session summary to the temperature log. A session that
// polled but got no reading is reported.
func (s *Session) record(ctx context.Context) {
	sum, err := telemetry.Aggregate(s.readings)
	if err != nil {
		if Polls(s.duration, s.cfg.Cadence) == 0 {
			s.logger.Info("Session too short for temperature readings")
			return
		}
		s.logger.Warn("No temperatures collected", zap.Error(err))
		s.deps.Reporter.Report(ctx, alert.Unknown, "no temperature readings collected")
		return
	}
	if err := s.deps.Telemetry.Append(sum); err != nil {
		s.logger.Error("Failed to write temperature summary", zap.Error(err))
		return
	}
	s.logger.Info("Temperature summary written",
		zap.Float64("min", sum.Min),
		zap.Float64("max", sum.Max),
		zap.Float64("mean", sum.Mean))
}

func (s *Session) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.cfg.Clock.After(d):
		return nil
	}
}
