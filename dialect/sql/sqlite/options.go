package sqlite

import "github.com/syssam/upsert/dialect/sql"

// TargetOption configures the conflict target of an ON CONFLICT clause.
// Target options are accepted by both OnConflictDoNothing and
// OnConflictDoUpdate.
type TargetOption func(*targetConfig)

type targetConfig struct {
	elements []any
	where    sql.Querier
}

// IndexElements sets the columns or expressions used to infer the
// target index or unique constraint. Elements are strings, *sql.Column
// handles or any sql.Querier, and are kept in the given order. Without
// elements the database picks the constraint, and IndexWhere is ignored.
//
//	sqlite.IndexElements("id")
//	sqlite.IndexElements(users.C("email"), sql.Raw("lower(`name`)"))
func IndexElements(elems ...any) TargetOption {
	return func(c *targetConfig) {
		c.elements = append(c.elements, elems...)
	}
}

// IndexWhere sets the predicate used to infer a partial index.
//
//	sqlite.IndexWhere(sql.NotNull("deleted_at"))
func IndexWhere(p sql.Querier) TargetOption {
	return func(c *targetConfig) {
		c.where = p
	}
}

// UpdateOption configures a DO UPDATE action. Every TargetOption is
// also an UpdateOption.
type UpdateOption interface {
	applyUpdate(*updateConfig)
}

type updateConfig struct {
	target targetConfig
	where  sql.Querier
}

func (o TargetOption) applyUpdate(c *updateConfig) { o(&c.target) }

type updateOptionFunc func(*updateConfig)

func (f updateOptionFunc) applyUpdate(c *updateConfig) { f(c) }

// Where restricts which conflicting rows are updated. Rows that do not
// match are left as they are, the same as DO NOTHING for those rows.
//
//	sqlite.Where(sql.LT(users.C("version"), ins.Excluded().C("version")))
func Where(p sql.Querier) UpdateOption {
	return updateOptionFunc(func(c *updateConfig) {
		c.where = p
	})
}
