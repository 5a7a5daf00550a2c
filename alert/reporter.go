package alert

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"aqusens.io/nora/asrslink/analyzer"
)

const defaultSendTimeout = 30 * time.Second

// Observer is told about every delivery attempt.
type Observer interface {
	ObserveNotification(fault string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveNotification(string, error) {}

// Reporter classifies faults and hands them to a Notifier without making the
// caller wait for delivery. Delivery errors are logged and dropped.
type Reporter struct {
	notifier    Notifier
	logger      *zap.Logger
	observer    Observer
	sendTimeout time.Duration

	wg sync.WaitGroup
}

type ReporterOption func(*Reporter)

func WithObserver(o Observer) ReporterOption {
	return func(r *Reporter) { r.observer = o }
}

// WithSendTimeout bounds a single delivery.
func WithSendTimeout(d time.Duration) ReporterOption {
	return func(r *Reporter) { r.sendTimeout = d }
}

func NewReporter(n Notifier, logger *zap.Logger, opts ...ReporterOption) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reporter{
		notifier:    n,
		logger:      logger,
		observer:    nopObserver{},
		sendTimeout: defaultSendTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report classifies fault and starts its delivery in the background.
func (r *Reporter) Report(ctx context.Context, fault Fault, detail string) {
	a := Classify(fault, detail)
	r.logger.Warn("Reporting fault",
		zap.Stringer("fault", fault),
		zap.String("subject", a.Subject))

	// delivery outlives the caller's context but not the send timeout
	sendCtx, cancel := contextWithoutCancel(ctx, r.sendTimeout)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		err := r.notifier.Notify(sendCtx, a)
		r.observer.ObserveNotification(fault.String(), err)
		if err != nil {
			r.logger.Error("Notification failed",
				zap.String("subject", a.Subject),
				zap.Error(err))
		}
	}()
}

// ReportResult reports a non-acknowledged analyzer exchange. It reports
// nothing for an Ack and returns whether a report was made.
func (r *Reporter) ReportResult(ctx context.Context, res analyzer.Result) bool {
	fault, detail, ok := FromResult(res)
	if !ok {
		return false
	}
	if res.Status == analyzer.Failed {
		r.logger.Error("Analyzer channel failed",
			zap.String("command", res.Command.String()),
			zap.Error(res.Err))
	}
	r.Report(ctx, fault, detail)
	return true
}

// Wait blocks until every started delivery has finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

func contextWithoutCancel(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
