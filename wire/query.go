package wire

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Operator queries understood by the firmware.
const (
	QueryStatus        = "Q1"
	QueryStartSampling = "Q2"
	QueryStopSampling  = "Q3"
	QueryRunSample     = "Q4"
	QueryTemps         = "Q5"

	// AckOK is the reply to a query the firmware accepted.
	AckOK = "0"
	// AckRejected is the leading byte of a refused query.
	AckRejected = "1"
	// NotSampling is the reply to set-interval while interval sampling is off.
	NotSampling = "S0"
)

var (
	// ErrMalformedReply is returned when a firmware reply does not follow
	// the grammar of the query it answers.
	ErrMalformedReply = errors.New("malformed reply")

	// ErrEmptyReply is returned when the firmware answered with an empty line.
	ErrEmptyReply = errors.New("empty reply")
)

var (
	statusPattern = regexp.MustCompile(`^([01])H(\d+)M(\d+)`)
	tempsPattern  = regexp.MustCompile(`^0R1(-?[0-9.]+)R2(-?[0-9.]+)R3(-?[0-9.]+)`)
)

// SetInterval encodes the set-interval query for the given period.
func SetInterval(hours, minutes int) string {
	return fmt.Sprintf("%sH%dM%d", QueryStatus, hours, minutes)
}

// Status is the interval sampling state reported by the firmware.
type Status struct {
	Enabled bool
	Hours   int
	Minutes int
}

// ParseStatus parses a `{0|1}H<hours>M<minutes>` status reply.
func ParseStatus(reply string) (Status, error) {
	if reply == "" {
		return Status{}, ErrEmptyReply
	}
	m := statusPattern.FindStringSubmatch(reply)
	if m == nil {
		return Status{}, fmt.Errorf("%w: status %q", ErrMalformedReply, reply)
	}
	hours, err := strconv.Atoi(m[2])
	if err != nil {
		return Status{}, fmt.Errorf("%w: hours %q", ErrMalformedReply, m[2])
	}
	minutes, err := strconv.Atoi(m[3])
	if err != nil {
		return Status{}, fmt.Errorf("%w: minutes %q", ErrMalformedReply, m[3])
	}
	return Status{Enabled: m[1] == "1", Hours: hours, Minutes: minutes}, nil
}

// Temps holds the three RTD readings in degrees Celsius.
type Temps struct {
	SampleTube float64 // RTD 1
	Flushwater float64 // RTD 2
	InternAir  float64 // RTD 3
}

// ParseTemps parses a `0R1<f>R2<f>R3<f>` temperature reply.
func ParseTemps(reply string) (Temps, error) {
	if reply == "" {
		return Temps{}, ErrEmptyReply
	}
	m := tempsPattern.FindStringSubmatch(reply)
	if m == nil {
		return Temps{}, fmt.Errorf("%w: temperatures %q", ErrMalformedReply, reply)
	}
	var vals [3]float64
	for i := range vals {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Temps{}, fmt.Errorf("%w: RTD %d %q", ErrMalformedReply, i+1, m[i+1])
		}
		vals[i] = v
	}
	return Temps{SampleTube: vals[0], Flushwater: vals[1], InternAir: vals[2]}, nil
}
