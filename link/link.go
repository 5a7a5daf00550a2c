package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"aqusens.io/nora/asrslink/wire"
)

const (
	// linesBufSize is the capacity of the channel carrying framed lines from
	// the reader loop to ReadLine.
	linesBufSize = 32

	// maxLineSize bounds a single line; the peer never sends more than a
	// few bytes per request.
	maxLineSize = 1024
)

// Link is a line-oriented connection to the sampler over a Transport.
//
// A single background goroutine owns all reads from the transport and frames
// them into lines. Writes are serialized. Once the transport fails the Link
// is down for good and every further call returns ErrLinkDown.
type Link struct {
	transport Transport

	lines   chan string
	closeCh chan struct{}
	doneCh  chan struct{}

	writeMu sync.Mutex

	mu     sync.Mutex
	closed bool
	err    error
}

// New wraps an established Transport and starts its reader loop.
func New(t Transport) *Link {
	l := &Link{
		transport: t,
		lines:     make(chan string, linesBufSize),
		closeCh:   make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	go l.readLoop()
	return l
}

// WriteLine implements LineWriter.
func (l *Link) WriteLine(ctx context.Context, line string) error {
	if err := l.state(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	framed := strings.TrimRight(line, wire.CR+wire.LF) + wire.LF

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	buf := []byte(framed)
	for len(buf) > 0 {
		n, err := l.transport.Write(buf)
		if err != nil {
			l.fail(err)
			return fmt.Errorf("%w: write %q: %v", ErrLinkDown, line, err)
		}
		if n == 0 {
			l.fail(io.ErrShortWrite)
			return fmt.Errorf("%w: write %q: %v", ErrLinkDown, line, io.ErrShortWrite)
		}
		buf = buf[n:]
	}
	return nil
}

// ReadLine implements LineReader. Empty lines are skipped.
func (l *Link) ReadLine(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-l.lines:
			if !ok {
				if err := l.state(); err != nil {
					return "", err
				}
				return "", ErrLinkDown
			}
			if line == "" {
				continue
			}
			return line, nil
		}
	}
}

// Err reports why the link went down, or nil while it is healthy.
func (l *Link) Err() error {
	return l.state()
}

// Close stops the reader loop and closes the transport. It is safe to call
// multiple times.
func (l *Link) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.closeCh)
	l.mu.Unlock()

	// Closing the transport unblocks an in-flight Read.
	err := l.transport.Close()
	<-l.doneCh
	return err
}

func (l *Link) state() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.closed:
		return ErrClosed
	case l.err != nil:
		return fmt.Errorf("%w: %v", ErrLinkDown, l.err)
	}
	return nil
}

func (l *Link) fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err == nil {
		l.err = err
	}
}

// readLoop continuously reads from the transport and emits complete lines.
func (l *Link) readLoop() {
	defer close(l.doneCh)
	defer close(l.lines)

	buf := make([]byte, 256)
	var pending []byte

	for {
		select {
		case <-l.closeCh:
			return
		default:
		}

		n, err := l.transport.Read(buf)
		if err != nil {
			var to interface{ Timeout() bool }
			if errors.As(err, &to) && to.Timeout() {
				continue
			}
			select {
			case <-l.closeCh:
			default:
				l.fail(err)
			}
			return
		}
		if n == 0 {
			// go.bug.st/serial reports a read timeout as (0, nil)
			continue
		}

		pending = append(pending, buf[:n]...)
		for {
			advance, token, _ := wire.Splitter(pending, false)
			if advance == 0 {
				break
			}
			line := strings.TrimSpace(string(token))
			pending = pending[advance:]

			select {
			case l.lines <- line:
			case <-l.closeCh:
				return
			}
		}

		if len(pending) > maxLineSize {
			// drop noise and keep reading
			pending = pending[:0]
		}
	}
}
