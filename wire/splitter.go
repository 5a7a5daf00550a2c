package wire

import (
	"bufio"
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxDurationSeconds is the longest sample duration that still fits in a
// time.Duration.
const MaxDurationSeconds = int64(math.MaxInt64 / int64(time.Second))

// Splitter tokenizes the peer's byte stream. It uses the signature of
// bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// Lines are terminated by LF; a CR preceding the LF is dropped so a peer
// printing CRLF frames the same way. Empty lines are returned as empty
// tokens and left to the caller to skip.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[0:i], []byte(CR)), nil
	}

	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte(CR)), nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

// Classify identifies the request carried by a single trimmed line.
func Classify(line string) RequestType {
	switch line {
	case ReqTide:
		return TypeTide
	case ReqSample:
		return TypeSample
	case ReqStop:
		return TypeStopPump
	case ReqStart:
		return TypeStartPump
	case ReqClock:
		return TypeClock
	}

	if len(line) == 2 && line[0] == ReqFault {
		return TypeFault
	}
	return TypeUnknown
}

// ParseDuration parses the follow-up line of a sample request. Only plain
// ASCII decimal digits up to MaxDurationSeconds are accepted.
func ParseDuration(line string) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil || n > MaxDurationSeconds || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// TideReply formats the answer to a tide query.
func TideReply(level string) string {
	return TidePrefix + level
}
