package domain

import "errors"

// Error taxonomy (sentinels), wrapped with fmt.Errorf("op=...: %w", err) at
// every boundary.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnknownSource   = errors.New("unknown source")
	ErrConnector       = errors.New("connector error")
	ErrTransport       = errors.New("transport error")
	ErrInternal        = errors.New("internal error")
)
