// Package console is the operator's interactive front end. Command lines are
// tokenized by the shell and handed to the dispatcher through a Queue.
package console

// DefaultQueueSize is how many command lines may wait for the dispatcher.
const DefaultQueueSize = 16

// Queue passes tokenized command lines from the shell to the dispatcher.
// Neither side ever blocks on the other.
type Queue struct {
	ch chan []string
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan []string, size)}
}

// Submit enqueues a copy of args. It returns false for an empty line or a
// full queue, in which case the line is dropped.
func (q *Queue) Submit(args []string) bool {
	if len(args) == 0 {
		return false
	}
	line := append([]string(nil), args...)
	select {
	case q.ch <- line:
		return true
	default:
		return false
	}
}

// Next returns the oldest waiting line, if any.
func (q *Queue) Next() ([]string, bool) {
	select {
	case line := <-q.ch:
		return line, true
	default:
		return nil, false
	}
}

// Len returns the number of waiting lines.
func (q *Queue) Len() int {
	return len(q.ch)
}
