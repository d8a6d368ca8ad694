package sql

import (
	"errors"
	"fmt"
	"slices"
)

// InsertBuilder is a builder for the standard `INSERT INTO` statement.
// Every setter returns a new builder; the receiver is never modified,
// so a builder can be kept as a template and extended from several
// places at once.
type InsertBuilder struct {
	dialect   string
	table     *Table
	columns   []string
	values    [][]any
	defaults  bool
	returning []string
}

// Insert creates a builder for the `INSERT INTO` statement.
//
//	Insert(users).
//		Columns("name", "age").
//		Values("a8m", 10).
//		Values("foo", 20)
//
// Note: Insert inserts all values in one batch.
func Insert(t *Table) *InsertBuilder {
	return &InsertBuilder{table: t}
}

func (i *InsertBuilder) clone() *InsertBuilder {
	c := *i
	return &c
}

// Table returns the target table.
func (i *InsertBuilder) Table() *Table { return i.table }

// Columns returns a builder that inserts into the given columns.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	c := i.clone()
	c.columns = append(slices.Clip(i.columns), columns...)
	return c
}

// Values returns a builder with one more row of values.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	c := i.clone()
	c.values = append(slices.Clip(i.values), slices.Clone(values))
	return c
}

// Default returns a builder that inserts a row of default values.
func (i *InsertBuilder) Default() *InsertBuilder {
	c := i.clone()
	c.defaults = true
	return c
}

// Returning returns a builder with a `RETURNING` clause.
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	c := i.clone()
	c.returning = append(slices.Clip(i.returning), columns...)
	return c
}

// InsertColumns returns the columns of the statement.
func (i *InsertBuilder) InsertColumns() []string { return slices.Clone(i.columns) }

// Rows returns the number of value rows.
func (i *InsertBuilder) Rows() int { return len(i.values) }

// DefaultValues reports whether the statement inserts a row of
// default values.
func (i *InsertBuilder) DefaultValues() bool { return i.defaults && len(i.columns) == 0 }

// ReturningColumns returns the columns of the RETURNING clause.
func (i *InsertBuilder) ReturningColumns() []string { return slices.Clone(i.returning) }

// AppendInsert writes the statement up to, and including, the VALUES
// list. Dialect extensions write their clauses after it and finish
// with AppendReturning.
func (i *InsertBuilder) AppendInsert(b *Builder) {
	if i.table == nil {
		b.AddError(errors.New("sql: insert: missing table"))
		return
	}
	b.WriteString("INSERT INTO ")
	i.table.AppendSQL(b)
	for _, name := range i.columns {
		if _, err := ExpectColumn(i.table, name, DMLColumnRole); err != nil {
			b.AddError(err)
		}
	}
	switch {
	case i.defaults && len(i.columns) == 0:
		b.WriteString(" DEFAULT VALUES")
	case len(i.columns) == 0:
		b.AddError(fmt.Errorf("sql: insert into %q: no columns and no default values", i.table.name))
	case len(i.values) == 0:
		b.AddError(fmt.Errorf("sql: insert into %q: no values", i.table.name))
	default:
		b.Pad().Wrap(func(b *Builder) {
			b.IdentComma(i.columns...)
		})
		b.WriteString(" VALUES ")
		for j, v := range i.values {
			if j > 0 {
				b.Comma()
			}
			if len(v) != len(i.columns) {
				b.AddError(fmt.Errorf("sql: insert into %q: row %d has %d values, want %d", i.table.name, j, len(v), len(i.columns)))
			}
			b.Wrap(func(b *Builder) {
				b.Args(v...)
			})
		}
	}
}

// AppendReturning writes the RETURNING clause, if any.
func (i *InsertBuilder) AppendReturning(b *Builder) {
	if len(i.returning) == 0 {
		return
	}
	b.WriteString(" RETURNING ")
	b.IdentComma(i.returning...)
}

// AppendSQL implements the Appender interface.
func (i *InsertBuilder) AppendSQL(b *Builder) {
	i.AppendInsert(b)
	i.AppendReturning(b)
}

// Query returns query representation of an `INSERT INTO` statement.
// Errors are reported by QueryErr.
func (i *InsertBuilder) Query() (string, []any) {
	query, args, _ := i.QueryErr()
	return query, args
}

// QueryErr is like Query, but also returns the errors encountered
// while rendering the statement.
func (i *InsertBuilder) QueryErr() (string, []any, error) {
	b := &Builder{dialect: i.dialect}
	i.AppendSQL(b)
	if err := b.Err(); err != nil {
		return "", nil, err
	}
	query, args := b.Query()
	return query, args, nil
}
