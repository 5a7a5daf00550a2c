package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"aqusens.io/nora/asrslink/link"
	"aqusens.io/nora/asrslink/wire"
)

// OperatorKind is a console command.
type OperatorKind int

const (
	OpHelp OperatorKind = iota
	OpStatus
	OpSetInterval
	OpStartSampling
	OpStopSampling
	OpRunSample
	OpReadTemps
)

var operatorNames = map[string]OperatorKind{
	"help":           OpHelp,
	"status":         OpStatus,
	"set-interval":   OpSetInterval,
	"start-sampling": OpStartSampling,
	"stop-sampling":  OpStopSampling,
	"run-sample":     OpRunSample,
	"read-temps":     OpReadTemps,
}

func (k OperatorKind) String() string {
	for name, kind := range operatorNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// OperatorCommand is a parsed console command line.
type OperatorCommand struct {
	Kind    OperatorKind
	Hours   int
	Minutes int
}

// ParseOperator parses a whitespace tokenized console line.
func ParseOperator(args []string) (OperatorCommand, error) {
	if len(args) == 0 {
		return OperatorCommand{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	kind, ok := operatorNames[args[0]]
	if !ok {
		return OperatorCommand{}, fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	cmd := OperatorCommand{Kind: kind}
	if kind != OpSetInterval {
		return cmd, nil
	}

	if len(args) != 3 {
		return OperatorCommand{}, fmt.Errorf("%w: set-interval takes <hours> <minutes>", ErrUsage)
	}
	hours, err := strconv.Atoi(args[1])
	if err != nil || hours < 0 {
		return OperatorCommand{}, fmt.Errorf("%w: hours %q", ErrUsage, args[1])
	}
	minutes, err := strconv.Atoi(args[2])
	if err != nil || minutes < 0 {
		return OperatorCommand{}, fmt.Errorf("%w: minutes %q", ErrUsage, args[2])
	}
	cmd.Hours, cmd.Minutes = hours, minutes
	return cmd, nil
}

const helpText = `Known commands:
  status                              - View the current status of NORA
  set-interval <hours> <minutes>      - Set the sampling interval (hours and minutes)
  start-sampling                      - Enable interval sampling
  stop-sampling                       - Disable interval sampling
  run-sample                          - Start a sample manually
  read-temps                          - Returns the temperatures of all system RTDs
  help                                - See this help message again
`

// Operator answers console commands by querying the sampler firmware.
type Operator struct {
	serial       link.LineReadWriter
	out          io.Writer
	cache        *StatusCache
	replyTimeout time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

func NewOperator(serial link.LineReadWriter, out io.Writer, cache *StatusCache, replyTimeout time.Duration, logger *zap.Logger) *Operator {
	if cache == nil {
		cache = &StatusCache{}
	}
	if replyTimeout <= 0 {
		replyTimeout = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Operator{
		serial:       serial,
		out:          out,
		cache:        cache,
		replyTimeout: replyTimeout,
		now:          time.Now,
		logger:       logger,
	}
}

func (o *Operator) printf(format string, args ...any) {
	fmt.Fprintf(o.out, format, args...)
}

// Handle runs one console line. Parse errors and malformed replies are
// printed; only a serial link failure is returned.
func (o *Operator) Handle(ctx context.Context, args []string) error {
	cmd, err := ParseOperator(args)
	switch {
	case errors.Is(err, ErrUnknownCommand):
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		o.printf("ERR: UNKNOWN COMMAND %s\nType \"help\" to view all commands\n", name)
		return nil
	case errors.Is(err, ErrUsage):
		o.printf("ERR: Invalid set-interval usage!\n  Usage: set-interval <hours> <minutes>\n")
		return nil
	}

	o.logger.Debug("Operator command", zap.Stringer("command", cmd.Kind))

	switch cmd.Kind {
	case OpHelp:
		o.printf("%s", helpText)
		return nil
	case OpStatus:
		return o.status(ctx)
	case OpSetInterval:
		return o.setInterval(ctx, cmd.Hours, cmd.Minutes)
	case OpStartSampling:
		o.printf("Starting interval sampling...\n")
		return o.toggle(ctx, wire.QueryStartSampling, "ERR: Recv err ack -> %s\n")
	case OpStopSampling:
		o.printf("Stopping interval sampling...\n")
		return o.toggle(ctx, wire.QueryStopSampling, "ERR: Recv unknown ack -> %s\n")
	case OpRunSample:
		return o.runSample(ctx)
	case OpReadTemps:
		return o.readTemps(ctx)
	}
	return nil
}

// query writes q and reads one reply line. ok is false when no reply
// arrived in time, which has already been printed.
func (o *Operator) query(ctx context.Context, q string) (reply string, ok bool, err error) {
	if err := o.serial.WriteLine(ctx, q); err != nil {
		return "", false, fmt.Errorf("send %s: %w", q, err)
	}

	readCtx, cancel := context.WithTimeout(ctx, o.replyTimeout)
	defer cancel()
	reply, err = o.serial.ReadLine(readCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			o.printf("ERR: No reply from NORA\n")
			return "", false, nil
		}
		return "", false, fmt.Errorf("read reply to %s: %w", q, err)
	}
	return reply, true, nil
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func (o *Operator) status(ctx context.Context) error {
	reply, ok, err := o.query(ctx, wire.QueryStatus)
	if !ok {
		return err
	}

	st, err := wire.ParseStatus(reply)
	if err != nil {
		o.logger.Warn("Malformed status reply", zap.String("reply", reply), zap.Error(err))
		o.printf("ERR: Recv unknown reply -> %s\n", reply)
		return nil
	}
	o.cache.Store(st, o.now())

	state := "disabled"
	if st.Enabled {
		state = "enabled"
	}
	o.printf("NORA has interval sampling %s, sampling every %s and %s.\n",
		state, plural(st.Hours, "hour"), plural(st.Minutes, "minute"))
	return nil
}

func (o *Operator) setInterval(ctx context.Context, hours, minutes int) error {
	o.cache.Invalidate()
	reply, ok, err := o.query(ctx, wire.SetInterval(hours, minutes))
	if !ok {
		return err
	}

	switch {
	case reply == "":
		o.printf("ERR: Recv unknown reply -> %s\n", reply)
	case strings.HasPrefix(reply, wire.NotSampling):
		o.printf("WARNING: NORA is not currently interval sampling!\n")
	case strings.HasPrefix(reply, wire.AckRejected):
		o.printf("ERR: Recv err ack -> %s, retry command\n", reply)
	default:
		o.printf("Sampling interval set to %s and %s\n", plural(hours, "hour"), plural(minutes, "minute"))
	}
	return nil
}

func (o *Operator) toggle(ctx context.Context, q, failure string) error {
	o.cache.Invalidate()
	reply, ok, err := o.query(ctx, q)
	if !ok {
		return err
	}
	if reply == wire.AckOK {
		o.printf("Success\n")
		return nil
	}
	o.printf(failure, reply)
	return nil
}

func (o *Operator) runSample(ctx context.Context) error {
	reply, ok, err := o.query(ctx, wire.QueryRunSample)
	if !ok {
		return err
	}
	switch reply {
	case wire.AckOK:
		o.printf("Sample event started successfully!\n")
	case wire.AckRejected:
		o.printf("ERR: NORA is not currently in standby mode, cannot start sample!\n")
	default:
		o.printf("ERR: Recv unknown reply -> %s\n", reply)
	}
	return nil
}

func (o *Operator) readTemps(ctx context.Context) error {
	reply, ok, err := o.query(ctx, wire.QueryTemps)
	if !ok {
		return err
	}

	temps, err := wire.ParseTemps(reply)
	if err != nil {
		o.logger.Warn("Malformed temperature reply", zap.String("reply", reply), zap.Error(err))
		o.printf("ERR: Recv unknown reply -> %s\n", reply)
		return nil
	}
	o.printf("RTD 1 (Sampler Tube):            %v C\n", temps.SampleTube)
	o.printf("RTD 2 (Flushwater):              %v C\n", temps.Flushwater)
	o.printf("RTD 3 (NORA Internal Air Temp):  %v C\n", temps.InternAir)
	return nil
}
