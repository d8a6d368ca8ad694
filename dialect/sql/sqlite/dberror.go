package sqlite

import (
	"errors"
	"strings"
)

// Extended result codes of SQLite constraint violations.
// See https://www.sqlite.org/rescode.html.
const (
	codeConstraintPrimaryKey = 1555 // SQLITE_CONSTRAINT_PRIMARYKEY
	codeConstraintUnique     = 2067 // SQLITE_CONSTRAINT_UNIQUE
)

// errorCoder is implemented by driver errors carrying the SQLite result
// code, such as *modernc.org/sqlite.Error.
type errorCoder interface {
	Code() int
}

// IsUniqueConstraintError reports if the error resulted from executing an
// INSERT that violated a PRIMARY KEY or UNIQUE constraint, that is, a
// conflict no ON CONFLICT clause handled.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[errorCoder](err); ok {
		switch e.Code() {
		case codeConstraintPrimaryKey, codeConstraintUnique:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsConflictTargetError reports if the database rejected the statement
// because its ON CONFLICT target matches no PRIMARY KEY or UNIQUE index.
// schema.(*Table).ValidateConflictTarget reports the same condition
// before the statement is sent.
func IsConflictTargetError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "ON CONFLICT clause does not match any PRIMARY KEY or UNIQUE constraint")
}

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}
