package analyzer

import (
	"context"
	"time"
)

// Status is the outcome of one exchange with the analyzer.
type Status int

const (
	// Ack means the analyzer confirmed the command.
	Ack Status = iota
	// Nack means a complete response arrived that does not confirm it.
	Nack
	// Timeout means no complete response arrived in time.
	Timeout
	// Failed means the command or response file could not be accessed, or
	// the exchange was cancelled.
	Failed
)

func (s Status) String() string {
	switch s {
	case Ack:
		return "ack"
	case Nack:
		return "nack"
	case Timeout:
		return "timeout"
	default:
		return "failed"
	}
}

// Result describes a finished exchange. Only Ack lets a caller proceed;
// every other status has to be reported.
type Result struct {
	Status  Status
	Command Command
	// Response holds the raw response file content for a Nack.
	Response string
	// Err is set for Failed.
	Err      error
	Attempts int
	Elapsed  time.Duration
}

// OK reports whether the analyzer acknowledged the command.
func (r Result) OK() bool {
	return r.Status == Ack
}

// Retry runs fn up to attempts times, retrying only while it times out.
// A Nack is the analyzer's definitive answer and is returned immediately.
func Retry(ctx context.Context, attempts int, fn func(context.Context) Result) Result {
	if attempts < 1 {
		attempts = 1
	}
	var res Result
	for attempt := 1; attempt <= attempts; attempt++ {
		res = fn(ctx)
		res.Attempts = attempt
		if res.Status != Timeout || ctx.Err() != nil {
			return res
		}
	}
	return res
}
