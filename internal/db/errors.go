package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrInvalidQuery  = errors.New("db: invalid query")
	ErrUnknownDriver = errors.New("db: unknown driver")
)

// Op constants name the operation that failed, for error context.
const (
	OpPing   = "PING"
	OpSelect = "SELECT"
	OpSearch = "FT.SEARCH"
)

// Error wraps an underlying error with the operation and table for diagnostics.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	if e.Table == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Table + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
