package session

import "errors"

var (
	// ErrSessionActive is returned by Runner.Run while another session is
	// in progress. The request is rejected, not queued.
	ErrSessionActive = errors.New("session: a sample session is already active")

	// ErrInvalidDuration is returned for a negative sample duration or one
	// too long to represent.
	ErrInvalidDuration = errors.New("session: invalid sample duration")

	// ErrMissingDependency is returned by NewRunner when a collaborator is
	// nil.
	ErrMissingDependency = errors.New("session: missing dependency")

	// ErrAnalyzer wraps the reason a session was aborted by the analyzer
	// channel.
	ErrAnalyzer = errors.New("session: analyzer did not acknowledge")
)
