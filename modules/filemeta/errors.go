package filemeta

import (
	"errors"
	"fmt"
)

// ErrDuplicateLink is returned when an insert collides with an existing
// public link. The unique index on public_link is the only source of it.
var ErrDuplicateLink = errors.New("public link already exists")

// PersistenceError wraps a failure of the underlying store or connection.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
