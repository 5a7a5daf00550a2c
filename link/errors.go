package link

import "errors"

var (
	// ErrNoDialer is returned when a Supervisor is configured without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the sampler.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNilContext is returned by SerialDialer when called with a nil context.
	ErrNilContext = errors.New("link: context is nil")

	// ErrNoPort is returned when autodetection finds no serial port matching
	// the configured patterns.
	ErrNoPort = errors.New("link: no serial port found")

	// ErrNotConnected is returned by the Supervisor while no Link is
	// established, for example between a teardown and the next successful
	// dial.
	ErrNotConnected = errors.New("link not connected")

	// ErrLinkDown is returned once the reader loop has stopped because the
	// transport failed. The Link cannot be reused; callers are expected to
	// reconnect.
	ErrLinkDown = errors.New("link down")

	// ErrClosed is returned when an operation is attempted on a Link or
	// Supervisor that has been closed.
	ErrClosed = errors.New("link closed")
)
