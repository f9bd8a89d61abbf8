package connection

import "errors"

var (
	// ErrInvalidRecord means the store handed back a malformed record: a
	// self-referencing pair or a missing id. It signals bad data, not bad input.
	ErrInvalidRecord = errors.New("invalid connection record")

	// ErrSelfRequest means a user tried to send a connection request to themselves.
	ErrSelfRequest = errors.New("cannot send a connection request to yourself")

	// ErrDuplicateRequest means an active (pending or accepted) record already
	// exists for the pair, in either direction.
	ErrDuplicateRequest = errors.New("an active connection already exists for this pair")

	// ErrNotAuthorized means the acting user is not the party allowed to perform
	// the transition (only the receiver accepts/declines, only the requester cancels).
	ErrNotAuthorized = errors.New("not authorized for this connection transition")

	// ErrInvalidState means the record's observed status does not permit the
	// requested transition.
	ErrInvalidState = errors.New("connection is not in a state that permits this transition")

	// ErrPreconditionFailed means a conditional write lost a race: the record's
	// status changed between read and write. The caller should re-resolve.
	ErrPreconditionFailed = errors.New("connection status changed since it was read")

	// ErrNotFound means the record does not exist.
	ErrNotFound = errors.New("connection not found")
)
