package sql

import "fmt"

// Role names the position a coerced key is used in.
type Role int

// Roles understood by ExpectColumn.
const (
	// DMLColumnRole is the left-hand side of an INSERT column list or
	// an UPDATE SET assignment.
	DMLColumnRole Role = iota + 1
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case DMLColumnRole:
		return "DML column"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ColumnNamer is implemented by column handles that are not *Column,
// such as the schema package columns.
type ColumnNamer interface {
	ColumnName() string
}

// ExpectColumn resolves key against the columns of t and returns the
// canonical column handle. Accepted key shapes:
//
//   - string: a column name of t.
//   - *Column: a column of t, or of an alias of t.
//   - ColumnNamer: anything that names a column of t.
//
// The returned column always belongs to t itself.
func ExpectColumn(t *Table, key any, role Role) (*Column, error) {
	if t == nil {
		return nil, &ColumnResolutionError{Key: key, Role: role, Reason: "no target table"}
	}
	var name string
	switch k := key.(type) {
	case string:
		name = k
	case *Column:
		if k == nil {
			return nil, &ColumnResolutionError{Table: t.name, Key: key, Role: role, Reason: "nil column"}
		}
		if k.table != nil && k.table.Base() != t.Base() {
			return nil, &ColumnResolutionError{
				Table:  t.name,
				Key:    k.name,
				Role:   role,
				Reason: fmt.Sprintf("column belongs to table %q", k.table.name),
			}
		}
		name = k.name
	case ColumnNamer:
		name = k.ColumnName()
	default:
		return nil, &ColumnResolutionError{Table: t.name, Key: key, Role: role, Reason: fmt.Sprintf("unsupported key type %T", key)}
	}
	c, ok := t.columns.Get(name)
	if !ok {
		return nil, &ColumnResolutionError{Table: t.name, Key: name, Role: role, Reason: "no such column"}
	}
	return c, nil
}
