// internal/adapters/db/errors.go
package db

import (
	"errors"
	"fmt"
)

// ErrPoolExhausted is returned when a connection could not be acquired from
// the pool within the configured wait.
var ErrPoolExhausted = errors.New("connection pool exhausted")

// QueryError wraps a driver error from a failed call, keeping the call target
// for logs. The raw driver message must never reach HTTP clients; handlers
// respond with a generic message instead.
type QueryError struct {
	Target string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q failed: %v", e.Target, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
