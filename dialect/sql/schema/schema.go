// Package schema describes table metadata: columns, primary keys and
// unique indexes. Tables are declared by hand or converted from an
// atlas schema, and turned into *sql.Table handles for the statement
// builders.
package schema

import (
	"github.com/syssam/upsert/dialect/sql"
)

// Table describes a table.
type Table struct {
	Name       string
	Schema     string
	Columns    []*Column
	PrimaryKey []*Column
	Indexes    []*Index
}

// NewTable returns a new table with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// AddColumns adds the given columns to the table.
func (t *Table) AddColumns(columns ...*Column) *Table {
	t.Columns = append(t.Columns, columns...)
	return t
}

// SetPrimaryKey sets the primary key of the table.
func (t *Table) SetPrimaryKey(columns ...*Column) *Table {
	t.PrimaryKey = columns
	return t
}

// AddIndex adds a new index to the table.
func (t *Table) AddIndex(name string, unique bool, columns []string) *Table {
	idx := &Index{Name: name, Unique: unique}
	for _, name := range columns {
		c, ok := t.Column(name)
		if !ok {
			c = &Column{Name: name}
		}
		idx.Columns = append(idx.Columns, c)
	}
	t.Indexes = append(t.Indexes, idx)
	return t
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Index returns the index with the given name.
func (t *Table) Index(name string) (*Index, bool) {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return nil, false
}

// SQL returns the statement-builder handle of the table. Column order
// follows the table definition.
func (t *Table) SQL() *sql.Table {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	st := sql.NewTable(t.Name, names...)
	if t.Schema != "" {
		st = st.InSchema(t.Schema)
	}
	return st
}

// Column describes a table column.
type Column struct {
	Name     string
	Type     string // Database type, as declared.
	Nullable bool
	Unique   bool
	Default  any
}

// ColumnName implements sql.ColumnNamer, so schema columns can be used
// as keys wherever the builders expect a column.
func (c *Column) ColumnName() string { return c.Name }

// Index describes a table index.
type Index struct {
	Name    string
	Unique  bool
	Columns []*Column
	// Partial is set for indexes with a WHERE clause. Partial indexes
	// only serve conflict targets that repeat the index predicate.
	Partial bool
}
