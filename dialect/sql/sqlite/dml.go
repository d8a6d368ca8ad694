package sqlite

import (
	"sync"

	"github.com/syssam/upsert/dialect"
	"github.com/syssam/upsert/dialect/sql"
)

// ExcludedName is the name SQLite gives to the row proposed for insertion
// inside an ON CONFLICT DO UPDATE clause.
const ExcludedName = "excluded"

// InsertBuilder is the SQLite INSERT statement. It extends the standard
// INSERT with an optional ON CONFLICT clause.
//
// All configuration methods are generative: they return a new builder
// and leave the receiver untouched, so a builder can be stored as a
// template and shared between goroutines. Create builders with Insert.
type InsertBuilder struct {
	base       *sql.InsertBuilder
	postValues Clause
	excluded   *lazyColumns
}

// lazyColumns holds the excluded namespace of one builder instance.
type lazyColumns struct {
	once sync.Once
	cols *sql.ColumnCollection
}

// Insert returns a SQLite INSERT statement bound to the given table.
//
//	users := sql.NewTable("users", "id", "name", "count")
//	ins, err := sqlite.Insert(users).
//		Columns("id", "name", "count").
//		Values(1, "a8m", 1).
//		OnConflictDoUpdate(
//			sqlite.UpdateSet{sqlite.Set("count", users.C("count").Add(1))},
//			sqlite.IndexElements("id"),
//		)
func Insert(t *sql.Table) *InsertBuilder {
	return &InsertBuilder{
		base:     sql.Dialect(dialect.SQLite).Insert(t),
		excluded: &lazyColumns{},
	}
}

// clone returns a shallow copy of the builder that shares the table
// but owns its conflict clause and excluded namespace.
func (i *InsertBuilder) clone() *InsertBuilder {
	c := *i
	c.excluded = &lazyColumns{}
	return &c
}

// Table returns the target table.
func (i *InsertBuilder) Table() *sql.Table { return i.base.Table() }

// Base returns the standard INSERT the builder extends.
func (i *InsertBuilder) Base() *sql.InsertBuilder { return i.base }

// Columns returns a builder that inserts into the given columns.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	c := i.clone()
	c.base = i.base.Columns(columns...)
	return c
}

// Values returns a builder with one more row of values.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	c := i.clone()
	c.base = i.base.Values(values...)
	return c
}

// Default returns a builder that inserts a row of default values.
func (i *InsertBuilder) Default() *InsertBuilder {
	c := i.clone()
	c.base = i.base.Default()
	return c
}

// Returning returns a builder with a RETURNING clause.
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	c := i.clone()
	c.base = i.base.Returning(columns...)
	return c
}

// OnConflict returns the conflict clause attached to the builder, or nil.
func (i *InsertBuilder) OnConflict() Clause { return i.postValues }

// OnConflictDoNothing returns a builder with an `ON CONFLICT DO NOTHING`
// clause, replacing any clause set before.
//
//	sqlite.Insert(users).
//		Columns("id", "name").
//		Values(1, "a8m").
//		OnConflictDoNothing(sqlite.IndexElements("id"))
func (i *InsertBuilder) OnConflictDoNothing(target ...TargetOption) *InsertBuilder {
	c := i.clone()
	c.postValues = NewOnConflictDoNothing(target...)
	return c
}

// OnConflictDoUpdate returns a builder with an `ON CONFLICT DO UPDATE SET`
// clause, replacing any clause set before. Every key of set is resolved
// against the target table. On error, no builder is returned and the
// receiver stays usable.
//
//	sqlite.Insert(users).
//		Columns("id", "name").
//		Values(1, "a8m").
//		OnConflictDoUpdate(
//			sqlite.UpdateSet{sqlite.Set("name", ins.Excluded().C("name"))},
//			sqlite.IndexElements("id"),
//			sqlite.Where(sql.NEQ(users.C("name"), "admin")),
//		)
func (i *InsertBuilder) OnConflictDoUpdate(set UpdateSet, opts ...UpdateOption) (*InsertBuilder, error) {
	clause, err := NewOnConflictDoUpdate(i.Table(), set, opts...)
	if err != nil {
		return nil, err
	}
	c := i.clone()
	c.postValues = clause
	return c, nil
}

// Excluded returns the columns of the `excluded` row, the row that would
// have been inserted. Use them in DO UPDATE assignments and predicates
// to refer to the proposed values:
//
//	sqlite.Set("name", ins.Excluded().C("name")) // `name` = `excluded`.`name`
//
// The namespace is computed on first access and cached for the life of
// the builder. It is safe to call from multiple goroutines.
func (i *InsertBuilder) Excluded() *sql.ColumnCollection {
	i.excluded.once.Do(func() {
		i.excluded.cols = sql.Alias(i.Table(), ExcludedName).Columns()
	})
	return i.excluded.cols
}

// Query compiles the statement with the default compiler.
func (i *InsertBuilder) Query() (string, []any, error) {
	return defaultCompiler.Compile(i)
}
