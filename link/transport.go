package link

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=link

import (
	"context"
	"fmt"
	"io"
	"path"
	"runtime"
	"time"

	"go.bug.st/serial"
)

// Transport represents an established, bidirectional byte stream to the
// NORA sampler.
//
// A Transport is assumed to be already connected and ready for use. Typical
// implementations are the serial port itself or in-memory fakes used for
// testing.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to the sampler.
//
// Dialer abstracts how the connection is created and is used by the
// Supervisor every time the link has to be (re)established.
type Dialer interface {
	// Dial creates and returns a connected Transport. It may perform
	// blocking operations and should respect cancellation and deadlines
	// provided by the context.
	Dial(ctx context.Context) (Transport, error)
}

const (
	defaultBaudRate    = 115200
	defaultReadTimeout = 100 * time.Millisecond
)

// SerialDialer opens the sampler over a serial port using go.bug.st/serial.
type SerialDialer struct {
	// PortName is the device path, e.g. "/dev/ttyACM0" or "COM3". When empty
	// the first port matching Patterns is used.
	PortName string
	// Mode defaults to 115200 8N1.
	Mode *serial.Mode
	// ReadTimeout bounds a single Read so the reader loop can observe Close.
	ReadTimeout time.Duration
	// Settle is waited after opening; the board resets when the port opens.
	Settle time.Duration
	// Patterns overrides DefaultPatterns for autodetection.
	Patterns []string
}

// Dial implements Dialer.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := d.PortName
	if name == "" {
		patterns := d.Patterns
		if len(patterns) == 0 {
			patterns = DefaultPatterns()
		}
		var err error
		if name, err = DetectPort(patterns); err != nil {
			return nil, err
		}
	}

	mode := d.Mode
	if mode == nil {
		mode = &serial.Mode{
			BaudRate: defaultBaudRate,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}

	timeout := d.ReadTimeout
	if timeout <= 0 {
		timeout = defaultReadTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}

	if d.Settle > 0 {
		select {
		case <-ctx.Done():
			port.Close()
			return nil, ctx.Err()
		case <-time.After(d.Settle):
		}
	}

	// flush anything the board printed while booting
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset input buffer on %s: %w", name, err)
	}

	return port, nil
}

// DefaultPatterns returns the device name patterns the sampler shows up as
// on the running operating system.
func DefaultPatterns() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"COM3"}
	case "darwin":
		return []string{"/dev/tty.usb*", "/dev/cu.usb*"}
	default:
		return []string{"/dev/ttyACM*"}
	}
}

// DetectPort returns the first enumerated serial port matching one of the
// patterns, tried in order.
func DetectPort(patterns []string) (string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoPort, err)
	}
	for _, pattern := range patterns {
		for _, p := range ports {
			if ok, _ := path.Match(pattern, p); ok {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no match for %v", ErrNoPort, patterns)
}
