// Package wire holds the line protocol spoken with the NORA sampler
// firmware over the serial link: single character request codes from the
// peer, the replies sent back to it and the Q-prefixed operator queries.
package wire

const (
	// Terminal Control
	LF = "\n"
	CR = "\r"

	// Request codes (peer -> topside)
	ReqTide   = "T"
	ReqSample = "S"
	ReqStop   = "F"
	ReqStart  = "P"
	ReqClock  = "C"
	ReqFault  = 'E'

	// Replies (topside -> peer)
	Done        = "D"
	TempPoll    = "T"
	TidePrefix  = "W"
	TideFailure = "-1000"

	// Fault reports (peer -> topside), ReqFault followed by the code
	FaultMotor    = "EM"
	FaultTube     = "ET"
	FaultWater    = "EW"
	FaultEstop    = "EE"
	FaultNack     = "EA"
	FaultAckTimer = "EF"
)

type RequestType int

const (
	TypeUnknown RequestType = iota // not part of the known set
	TypeTide                       // T
	TypeSample                     // S, duration follows on the next line
	TypeStopPump                   // F
	TypeStartPump                  // P
	TypeClock                      // C
	TypeFault                      // E?
)

func (t RequestType) String() string {
	switch t {
	case TypeTide:
		return "tide"
	case TypeSample:
		return "sample"
	case TypeStopPump:
		return "stop-pump"
	case TypeStartPump:
		return "start-pump"
	case TypeClock:
		return "clock"
	case TypeFault:
		return "fault"
	default:
		return "unknown"
	}
}
