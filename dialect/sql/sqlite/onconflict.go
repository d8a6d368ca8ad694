package sqlite

import (
	"fmt"
	"slices"

	"github.com/syssam/upsert/dialect/sql"
)

// Kind is the dispatch key of a conflict clause.
type Kind string

// Conflict clause kinds.
const (
	KindDoNothing Kind = "on_conflict_do_nothing"
	KindDoUpdate  Kind = "on_conflict_do_update"
)

// ConflictTarget identifies the row an insert conflicts with. At most
// one mode is active: either ConstraintTarget is set, or
// InferredTargetElements is (with an optional InferredTargetWhere).
// A zero ConflictTarget leaves the choice of constraint to the database.
type ConflictTarget struct {
	// ConstraintTarget is the name of a unique constraint. No public
	// constructor sets it; SQLite has no ON CONSTRAINT form.
	ConstraintTarget string
	// InferredTargetElements are the index columns or expressions:
	// strings, *sql.Column or any sql.Querier.
	InferredTargetElements []any
	// InferredTargetWhere narrows the match to a partial index.
	InferredTargetWhere sql.Querier
}

// IsZero reports whether no target mode is set.
func (t ConflictTarget) IsZero() bool {
	return t.ConstraintTarget == "" && len(t.InferredTargetElements) == 0 && t.InferredTargetWhere == nil
}

// ColumnNames returns the names of the target elements that are plain
// column names or column handles. Expression elements are skipped.
func (t ConflictTarget) ColumnNames() []string {
	names := make([]string, 0, len(t.InferredTargetElements))
	for _, e := range t.InferredTargetElements {
		switch e := e.(type) {
		case string:
			names = append(names, e)
		case *sql.Column:
			names = append(names, e.Name())
		}
	}
	return names
}

func (t ConflictTarget) clone() ConflictTarget {
	t.InferredTargetElements = slices.Clone(t.InferredTargetElements)
	return t
}

func newConflictTarget(cfg targetConfig) ConflictTarget {
	if len(cfg.elements) == 0 {
		return ConflictTarget{}
	}
	return ConflictTarget{
		InferredTargetElements: slices.Clone(cfg.elements),
		InferredTargetWhere:    cfg.where,
	}
}

// Clause is a conflict action attached to an InsertBuilder. The set of
// implementations is closed: *OnConflictDoNothing and *OnConflictDoUpdate.
type Clause interface {
	// Kind returns the dispatch key of the clause.
	Kind() Kind
	// Target returns a copy of the conflict target.
	Target() ConflictTarget

	clause()
}

// OnConflictDoNothing is the `ON CONFLICT ... DO NOTHING` action.
type OnConflictDoNothing struct {
	target ConflictTarget
}

// NewOnConflictDoNothing returns a DO NOTHING action for the given target.
func NewOnConflictDoNothing(opts ...TargetOption) *OnConflictDoNothing {
	var cfg targetConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OnConflictDoNothing{target: newConflictTarget(cfg)}
}

// Kind implements the Clause interface.
func (*OnConflictDoNothing) Kind() Kind { return KindDoNothing }

// Target implements the Clause interface.
func (c *OnConflictDoNothing) Target() ConflictTarget { return c.target.clone() }

func (*OnConflictDoNothing) clause() {}

// SetValue is a resolved assignment of a DO UPDATE action.
type SetValue struct {
	Column *sql.Column
	Value  any
}

// OnConflictDoUpdate is the `ON CONFLICT ... DO UPDATE SET` action.
type OnConflictDoUpdate struct {
	target ConflictTarget
	values []SetValue
	where  sql.Querier
}

// NewOnConflictDoUpdate returns a DO UPDATE action. Every key of set is
// resolved against t; the action is returned only if set is non-empty
// and every key resolves to a distinct column.
func NewOnConflictDoUpdate(t *sql.Table, set UpdateSet, opts ...UpdateOption) (*OnConflictDoUpdate, error) {
	var cfg updateConfig
	for _, opt := range opts {
		opt.applyUpdate(&cfg)
	}
	if len(set) == 0 {
		return nil, ErrInvalidAssignmentSet
	}
	values := make([]SetValue, 0, len(set))
	seen := make(map[string]int, len(set))
	for i, a := range set {
		c, err := sql.ExpectColumn(t, a.Key, sql.DMLColumnRole)
		if err != nil {
			return nil, err
		}
		if j, ok := seen[c.Name()]; ok {
			return nil, &AssignmentError{Index: i, Column: c.Name(), Message: fmt.Sprintf("column already assigned at position %d", j)}
		}
		seen[c.Name()] = i
		values = append(values, SetValue{Column: c, Value: a.Value})
	}
	return &OnConflictDoUpdate{
		target: newConflictTarget(cfg.target),
		values: values,
		where:  cfg.where,
	}, nil
}

// Kind implements the Clause interface.
func (*OnConflictDoUpdate) Kind() Kind { return KindDoUpdate }

// Target implements the Clause interface.
func (c *OnConflictDoUpdate) Target() ConflictTarget { return c.target.clone() }

// UpdateValuesToSet returns the assignments in the order they were given.
func (c *OnConflictDoUpdate) UpdateValuesToSet() []SetValue { return slices.Clone(c.values) }

// UpdateWhere returns the predicate restricting which conflicting rows
// are updated, or nil.
func (c *OnConflictDoUpdate) UpdateWhere() sql.Querier { return c.where }

func (*OnConflictDoUpdate) clause() {}

var (
	_ Clause = (*OnConflictDoNothing)(nil)
	_ Clause = (*OnConflictDoUpdate)(nil)
)
