// Package telemetry aggregates session temperature readings and appends
// them to the temperature log.
package telemetry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// TimestampLayout formats the Timestamp column.
const TimestampLayout = "06-01-02_15:04:05"

// Header is written once, when the log is first found empty.
var Header = []string{"Timestamp", "Min Temp(C)", "Max Temp(C)", "Avg Temp(C)"}

// ErrNoReadings is returned when a session collected no temperatures.
var ErrNoReadings = errors.New("telemetry: no temperature readings")

// Reading is a single temperature sample in degrees Celsius.
type Reading struct {
	Time    time.Time
	Celsius float64
}

// Summary is the per-session aggregate stored as one CSV row.
type Summary struct {
	Time time.Time
	Min  float64
	Max  float64
	Mean float64
}

// Aggregate summarizes readings, stamped with the last reading's time.
func Aggregate(readings []Reading) (Summary, error) {
	if len(readings) == 0 {
		return Summary{}, ErrNoReadings
	}

	s := Summary{
		Time: readings[len(readings)-1].Time,
		Min:  readings[0].Celsius,
		Max:  readings[0].Celsius,
	}
	var sum float64
	for _, r := range readings {
		s.Min = min(s.Min, r.Celsius)
		s.Max = max(s.Max, r.Celsius)
		sum += r.Celsius
	}
	s.Mean = sum / float64(len(readings))
	return s, nil
}

// Record renders s as a CSV record.
func (s Summary) Record() []string {
	return []string{
		s.Time.Format(TimestampLayout),
		strconv.FormatFloat(s.Min, 'f', -1, 64),
		strconv.FormatFloat(s.Max, 'f', -1, 64),
		strconv.FormatFloat(s.Mean, 'f', -1, 64),
	}
}

// CSVWriter appends summaries to a file that is never rewritten.
type CSVWriter struct {
	path string
	mu   sync.Mutex
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

func (w *CSVWriter) Path() string {
	return w.path
}

// Append writes s, preceded by the header if the file is empty.
func (w *CSVWriter) Append(s Summary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open temperature log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat temperature log: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := cw.Write(s.Record()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush temperature log: %w", err)
	}
	return f.Sync()
}
