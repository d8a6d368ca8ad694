package sql

import (
	"errors"
	"fmt"
)

// ErrUnknownColumn is matched by every ColumnResolutionError.
var ErrUnknownColumn = errors.New("sql: unknown column")

// ColumnResolutionError is returned by the coercion service when a key
// cannot be resolved to a column of the target table.
type ColumnResolutionError struct {
	Table  string // Target table name.
	Key    any    // The key as given by the caller.
	Role   Role   // The role the key was resolved for.
	Reason string
}

// Error returns the error string.
func (e *ColumnResolutionError) Error() string {
	return fmt.Sprintf("sql: cannot resolve %s key %v on table %q: %s", e.Role, e.Key, e.Table, e.Reason)
}

// Is reports whether the target error matches ColumnResolutionError.
// This allows errors.Is(err, ErrUnknownColumn) to return true.
func (e *ColumnResolutionError) Is(err error) bool {
	return err == ErrUnknownColumn
}

// IsColumnResolutionError returns true if the error is a ColumnResolutionError.
func IsColumnResolutionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ColumnResolutionError
	return errors.As(err, &e)
}
