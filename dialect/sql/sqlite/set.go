package sqlite

import "slices"

// Assignment is one entry of an UpdateSet. Key is a column name, a
// *sql.Column of the target table or a sql.ColumnNamer. Value is a
// literal, bound as an argument, or a sql.Querier rendered inline.
type Assignment struct {
	Key   any
	Value any
}

// Set returns an Assignment of value to the column named by key.
func Set(key, value any) Assignment {
	return Assignment{Key: key, Value: value}
}

// UpdateSet is the ordered SET mapping of a DO UPDATE action. The SQL
// renders the assignments in the order they appear.
//
//	sqlite.UpdateSet{
//		sqlite.Set("count", users.C("count").Add(1)),
//		sqlite.Set(users.C("name"), "a8m"),
//	}
type UpdateSet []Assignment

// Set returns a copy of s with one more assignment.
func (s UpdateSet) Set(key, value any) UpdateSet {
	return append(slices.Clip(s), Assignment{Key: key, Value: value})
}
