package sqlite

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAssignmentSet is returned when a DO UPDATE action is
	// configured with an empty SET mapping, or with a key assigned twice.
	ErrInvalidAssignmentSet = errors.New("sqlite: set parameter must be a non-empty mapping")

	// ErrRender is matched by the errors of the compiler.
	ErrRender = errors.New("sqlite: cannot render statement")
)

// AssignmentError describes an invalid entry of an UpdateSet.
type AssignmentError struct {
	Index   int    // Position of the entry in the set.
	Column  string // Resolved column name.
	Message string
}

// Error returns the error string.
func (e *AssignmentError) Error() string {
	return fmt.Sprintf("sqlite: set parameter entry %d (%q): %s", e.Index, e.Column, e.Message)
}

// Is reports whether the target error matches AssignmentError.
// This allows errors.Is(err, ErrInvalidAssignmentSet) to return true.
func (e *AssignmentError) Is(err error) bool {
	return err == ErrInvalidAssignmentSet
}

// IsInvalidAssignmentSet returns true if the error is caused by an
// invalid SET mapping.
func IsInvalidAssignmentSet(err error) bool {
	return errors.Is(err, ErrInvalidAssignmentSet)
}
