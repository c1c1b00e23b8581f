package propagation

import "errors"

var (
	// ErrUnknownProtocol is returned by BuildProtocol for unregistered names.
	ErrUnknownProtocol = errors.New("unknown protocol")

	// ErrInvalidParameter is returned when a mechanism or protocol parameter
	// is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrAlreadyRun is returned when a Simulator is run a second time.
	ErrAlreadyRun = errors.New("simulator already run")

	// ErrUnknownUser is returned when an information piece names a creator
	// that is not a vertex of the graph.
	ErrUnknownUser = errors.New("unknown user")

	// ErrDuplicateInformation is returned when two pieces share an id.
	ErrDuplicateInformation = errors.New("duplicate information piece")
)
