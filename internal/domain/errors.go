package domain

import "errors"

// Error taxonomy. Repositories catch everything at their boundary and return
// one of these (wrapped); nothing propagates as a panic and the local cache is
// always left at the last known good state.
var (
	// ErrGateway marks a network or service failure on any table operation.
	ErrGateway = errors.New("gateway request failed")
	// ErrValidation marks a form payload that never reached the gateway.
	ErrValidation = errors.New("validation failed")
	// ErrAuth marks bad credentials or a missing session.
	ErrAuth = errors.New("authentication failed")
	// ErrTimeout marks a bounded wait that elapsed; callers fail closed.
	ErrTimeout = errors.New("timed out")
	// ErrNotFound marks a record absent from its table.
	ErrNotFound = errors.New("not found")
)
