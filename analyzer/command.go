// Package analyzer talks to the bench analyzer's control process. The
// process watches a command file and answers by rewriting a response file;
// Channel turns that pair of files into an acknowledged request/response
// exchange with a bounded wait.
package analyzer

import (
	"strconv"
	"strings"
)

// SuccessPrefix is the first byte of every positive acknowledgment.
const SuccessPrefix = '0'

// Command is a single directive for the analyzer together with the
// acknowledgment that confirms it.
type Command struct {
	// Name is the directive, e.g. "StartPump".
	Name string
	// Arg is placed between the parentheses, possibly empty.
	Arg string
	// AckToken is the lowercase token expected after SuccessPrefix.
	AckToken string
	// MinLen is the response length at which the reply is inspected.
	MinLen int
}

// String returns the literal text written to the command file.
func (c Command) String() string {
	return c.Name + "(" + c.Arg + ")"
}

func SaveToDirectory(dir string) Command {
	return Command{Name: "SaveToDirectory", Arg: dir, AckToken: "savetodirectory", MinLen: 16}
}

func StartPump() Command {
	return Command{Name: "StartPump", AckToken: "startpump", MinLen: 10}
}

func StopPump() Command {
	return Command{Name: "StopPump", AckToken: "stoppump", MinLen: 9}
}

func StartSampleCollection(frame int) Command {
	return Command{Name: "StartSampleCollection", Arg: strconv.Itoa(frame), AckToken: "startsamplecollection", MinLen: 22}
}

func StopSampleCollection() Command {
	return Command{Name: "StopSampleCollection", AckToken: "stopsamplecollection", MinLen: 21}
}

// Match inspects a response. complete reports whether the content is long
// enough to be judged; ok reports whether it acknowledges ackToken.
func Match(content, ackToken string, minLen int) (complete, ok bool) {
	if len(content) < minLen {
		return false, false
	}
	if len(content) < 1+len(ackToken) || content[0] != SuccessPrefix {
		return true, false
	}
	return true, strings.EqualFold(content[1:1+len(ackToken)], ackToken)
}
