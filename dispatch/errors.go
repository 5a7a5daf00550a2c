package dispatch

import "errors"

var (
	// ErrMissingDependency is returned by New when a collaborator is nil.
	ErrMissingDependency = errors.New("dispatch: missing dependency")

	// ErrUnknownCommand is returned by ParseOperator for a command outside
	// the console grammar.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned by ParseOperator when a known command has the
	// wrong arguments.
	ErrUsage = errors.New("invalid usage")
)
