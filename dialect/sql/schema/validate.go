package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNoConflictConstraint is matched by the error returned from
// ValidateConflictTarget when no constraint can serve the target.
var ErrNoConflictConstraint = errors.New("schema: ON CONFLICT clause does not match any PRIMARY KEY or UNIQUE constraint")

// ValidationError represents a schema validation error.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Err is the sentinel the error matches, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// Unwrap returns the sentinel error, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateTable validates a single table definition.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}

	if len(t.PrimaryKey) == 0 {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   t.Name,
			Message: "table has no primary key",
		})
	}

	colNames := make(map[string]bool)
	for _, c := range t.Columns {
		if colNames[c.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		colNames[c.Name] = true
	}

	for _, c := range t.PrimaryKey {
		if !colNames[c.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "primary key references non-existent column",
			})
		}
	}

	idxNames := make(map[string]bool)
	for _, idx := range t.Indexes {
		if idxNames[idx.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: fmt.Sprintf("duplicate index name: %s", idx.Name),
			})
		}
		idxNames[idx.Name] = true

		for _, col := range idx.Columns {
			if col != nil && !colNames[col.Name] {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("index %q references non-existent column %q", idx.Name, col.Name),
				})
			}
		}
	}

	return result
}

// ValidateConflictTarget reports whether an inferred ON CONFLICT target
// made of the given columns can be served by the table. SQLite accepts
// a target only if its columns are exactly those of the PRIMARY KEY or
// of a UNIQUE index, in any order. An empty target always matches, as
// the database then considers every constraint.
//
// Set partial to true when the target carries an index predicate; only
// then are partial unique indexes considered.
func (t *Table) ValidateConflictTarget(partial bool, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	for _, name := range columns {
		if _, ok := t.Column(name); !ok {
			return &ValidationError{Table: t.Name, Column: name, Message: "conflict target references non-existent column"}
		}
	}
	want := slices.Clone(columns)
	slices.Sort(want)
	want = slices.Compact(want)
	if len(t.PrimaryKey) > 0 && sameColumns(want, t.PrimaryKey) {
		return nil
	}
	for _, idx := range t.Indexes {
		if !idx.Unique || (idx.Partial && !partial) {
			continue
		}
		if sameColumns(want, idx.Columns) {
			return nil
		}
	}
	return &ValidationError{
		Table:   t.Name,
		Message: fmt.Sprintf("no PRIMARY KEY or UNIQUE index on (%s)", strings.Join(columns, ", ")),
		Err:     ErrNoConflictConstraint,
	}
}

// sameColumns reports whether the sorted, deduplicated names match
// the given columns as a set.
func sameColumns(names []string, columns []*Column) bool {
	have := make([]string, len(columns))
	for i, c := range columns {
		have[i] = c.Name
	}
	slices.Sort(have)
	have = slices.Compact(have)
	return slices.Equal(names, have)
}
