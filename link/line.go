package link

//go:generate go tool mockgen -source=line.go -destination=mock_line.go -package=link

import "context"

// LineWriter sends one protocol line to the peer.
type LineWriter interface {
	// WriteLine writes line followed by the LF terminator.
	WriteLine(ctx context.Context, line string) error
}

// LineReader receives protocol lines from the peer.
type LineReader interface {
	// ReadLine blocks until a complete line arrives or ctx is done. The
	// returned line has its terminator removed.
	ReadLine(ctx context.Context) (string, error)
}

// LineReadWriter is the line-oriented view of the serial link shared by the
// dispatcher, the pump controller and the sample session.
type LineReadWriter interface {
	LineReader
	LineWriter
}
