// Package alert classifies protocol and device faults and delivers them as
// operator notifications.
package alert

import (
	"aqusens.io/nora/asrslink/analyzer"
	"aqusens.io/nora/asrslink/wire"
)

// Fault is a classified error condition.
type Fault int

const (
	Unknown Fault = iota
	MotorError
	TubeTimeout
	WaterNotDetected
	EstopPressed
	AnalyzerNack
	AnalyzerAckTimeout
)

func (f Fault) String() string {
	switch f {
	case MotorError:
		return "motor_error"
	case TubeTimeout:
		return "tube_timeout"
	case WaterNotDetected:
		return "water_not_detected"
	case EstopPressed:
		return "estop_pressed"
	case AnalyzerNack:
		return "analyzer_nack"
	case AnalyzerAckTimeout:
		return "analyzer_ack_timeout"
	default:
		return "unknown"
	}
}

// FromPeer maps a two character fault report from the sampler.
func FromPeer(code string) Fault {
	switch code {
	case wire.FaultMotor:
		return MotorError
	case wire.FaultTube:
		return TubeTimeout
	case wire.FaultWater:
		return WaterNotDetected
	case wire.FaultEstop:
		return EstopPressed
	case wire.FaultNack:
		return AnalyzerNack
	case wire.FaultAckTimer:
		return AnalyzerAckTimeout
	default:
		return Unknown
	}
}

// FromResult maps a non-acknowledged analyzer exchange to its fault and the
// detail worth carrying into the notification. ok is false for an Ack.
func FromResult(res analyzer.Result) (fault Fault, detail string, ok bool) {
	switch res.Status {
	case analyzer.Ack:
		return Unknown, "", false
	case analyzer.Nack:
		return AnalyzerNack, res.Response, true
	case analyzer.Timeout:
		return AnalyzerAckTimeout, res.Command.String(), true
	default:
		detail = res.Command.String()
		if res.Err != nil {
			detail += ": " + res.Err.Error()
		}
		return Unknown, detail, true
	}
}

// Alert is a notification ready to send.
type Alert struct {
	Subject string
	Body    string
}

// Classify returns the notification for fault. detail is only embedded for
// AnalyzerNack, whose subject carries the raw analyzer response.
func Classify(fault Fault, detail string) Alert {
	switch fault {
	case EstopPressed:
		return Alert{Subject: "ESTOP_ERR", Body: "ESTOP ERR"}
	case MotorError:
		return Alert{Subject: "MOTOR_ERR", Body: "MOTOR ERR"}
	case WaterNotDetected:
		return Alert{Subject: "WATER_NOT_DETECTED_ERR", Body: "SAMPLE WATER NOT DETECTED ERR"}
	case TubeTimeout:
		return Alert{Subject: "TUBE TIMEOUT ERR", Body: "TUBE TIMEOUT ERR"}
	case AnalyzerNack:
		if detail == "" {
			return Alert{Subject: "AQUSENS NACK RECEIVED FOR UNKNOWN COMMAND", Body: "AQUSENS NACK RECEIVED"}
		}
		return Alert{Subject: "AQUSENS NACK RECEIVED: " + detail, Body: "AQUSENS NACK RECEIVED"}
	case AnalyzerAckTimeout:
		return Alert{Subject: "AQUSENS ACK TIMEOUT", Body: "AQUSENS ACK TIMEOUT"}
	default:
		return Alert{Subject: "UNKNOWN ERR", Body: "UNKNOWN ERR"}
	}
}
