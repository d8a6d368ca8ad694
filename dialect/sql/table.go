package sql

// Table describes a relation and the set of columns it exposes.
// A Table is immutable once created; methods that change it return
// a new Table.
type Table struct {
	name    string
	schema  string
	alias   string
	base    *Table // set on aliases, points to the aliased table.
	columns *ColumnCollection
}

// NewTable returns a Table with the given name and column names.
// Column order is preserved.
//
//	users := sql.NewTable("users", "id", "name", "count")
func NewTable(name string, columns ...string) *Table {
	t := &Table{name: name}
	t.columns = newColumnCollection(t, columns)
	return t
}

// InSchema returns a copy of the table qualified by the given schema name.
func (t *Table) InSchema(name string) *Table {
	c := &Table{name: t.name, schema: name, alias: t.alias, base: t.base}
	c.columns = newColumnCollection(c, t.columns.Names())
	return c
}

// Alias returns a named alias of the table. The alias exposes the same
// column names, bound to the alias name instead of the table name.
//
//	excluded := sql.Alias(users, "excluded")
//	excluded.C("count") // `excluded`.`count`
func Alias(t *Table, name string) *Table {
	if t == nil {
		return nil
	}
	a := &Table{name: t.name, schema: t.schema, alias: name, base: t.Base()}
	a.columns = newColumnCollection(a, t.columns.Names())
	return a
}

// Name returns the name of the underlying relation.
func (t *Table) Name() string { return t.name }

// SchemaName returns the schema qualifier of the table, if any.
func (t *Table) SchemaName() string { return t.schema }

// AliasName returns the alias of the table, or an empty string.
func (t *Table) AliasName() string { return t.alias }

// Base returns the table an alias was derived from, or the table itself.
func (t *Table) Base() *Table {
	if t.base != nil {
		return t.base
	}
	return t
}

// RefName returns the name used to reference the table columns:
// the alias if set, the table name otherwise.
func (t *Table) RefName() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// C returns the column with the given name, or nil if the table
// has no such column.
func (t *Table) C(name string) *Column {
	if t == nil {
		return nil
	}
	return t.columns.C(name)
}

// Columns returns the column collection of the table.
func (t *Table) Columns() *ColumnCollection {
	if t == nil {
		return &ColumnCollection{}
	}
	return t.columns
}

// AppendSQL writes the (schema-qualified) table name.
func (t *Table) AppendSQL(b *Builder) {
	if t.schema != "" {
		b.Ident(t.schema).WriteByte('.')
	}
	b.Ident(t.name)
	if t.alias != "" {
		b.WriteString(" AS ").Ident(t.alias)
	}
}

// Query implements the Querier interface.
func (t *Table) Query() (string, []any) {
	return render(t)
}

// ColumnCollection is an ordered, read-only set of columns keyed by name.
type ColumnCollection struct {
	cols  []*Column
	index map[string]int
}

func newColumnCollection(t *Table, names []string) *ColumnCollection {
	c := &ColumnCollection{index: make(map[string]int, len(names))}
	for _, name := range names {
		if _, ok := c.index[name]; ok {
			continue
		}
		c.index[name] = len(c.cols)
		c.cols = append(c.cols, &Column{table: t, name: name})
	}
	return c
}

// C returns the column with the given name, or nil.
func (c *ColumnCollection) C(name string) *Column {
	col, _ := c.Get(name)
	return col
}

// Get returns the column with the given name and reports whether it exists.
func (c *ColumnCollection) Get(name string) (*Column, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.cols[i], true
}

// Len returns the number of columns.
func (c *ColumnCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.cols)
}

// Names returns the column names in declaration order.
func (c *ColumnCollection) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.cols))
	for i, col := range c.cols {
		names[i] = col.name
	}
	return names
}

// All returns the columns in declaration order.
func (c *ColumnCollection) All() []*Column {
	if c == nil {
		return nil
	}
	return append([]*Column(nil), c.cols...)
}

// Column is a handle to a column of a Table.
type Column struct {
	table *Table
	name  string
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Table returns the table (or alias) the column belongs to.
func (c *Column) Table() *Table { return c.table }

// AppendSQL writes the column, qualified by its table reference name
// unless the builder is in bare mode.
func (c *Column) AppendSQL(b *Builder) {
	if !b.bare && c.table != nil {
		b.Ident(c.table.RefName()).WriteByte('.')
	}
	b.Ident(c.name)
}

// Query implements the Querier interface.
func (c *Column) Query() (string, []any) {
	return render(c)
}

// Add returns the expression `c + v`.
func (c *Column) Add(v any) *BinaryExpr { return Add(c, v) }

// Sub returns the expression `c - v`.
func (c *Column) Sub(v any) *BinaryExpr { return Sub(c, v) }

// Mul returns the expression `c * v`.
func (c *Column) Mul(v any) *BinaryExpr { return Mul(c, v) }

// Div returns the expression `c / v`.
func (c *Column) Div(v any) *BinaryExpr { return Div(c, v) }

// Concat returns the expression `c || v`.
func (c *Column) Concat(v any) *BinaryExpr { return Concat(c, v) }
