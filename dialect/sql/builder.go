package sql

import (
	"errors"
	"strconv"
	"strings"

	"github.com/syssam/upsert/dialect"
)

// Querier wraps the basic Query method that is implemented
// by the different builders and nodes in this package.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Appender is implemented by nodes that write themselves into a Builder.
// Nodes rendered through Appender follow the quoting and placeholder
// style of the enclosing Builder. Plain Queriers are embedded verbatim.
type Appender interface {
	AppendSQL(*Builder)
}

// Builder is the base query builder for the sql dsl.
type Builder struct {
	sb      *strings.Builder // underlying builder.
	dialect string           // configured dialect.
	args    []any            // query parameters.
	total   int              // total number of parameters in query tree.
	errs    []error          // errors that occurred during query construction.
	bare    bool             // render columns without their table qualifier.
}

// DialectBuilder prefixes all root builders with the Dialect setter.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{name}
}

// Builder returns an empty Builder configured with the dialect.
func (d *DialectBuilder) Builder() *Builder {
	return &Builder{dialect: d.dialect}
}

// Insert creates an InsertBuilder for the configured dialect.
//
//	Dialect(dialect.Postgres).
//		Insert(users).Columns("age").Values(1)
func (d *DialectBuilder) Insert(t *Table) *InsertBuilder {
	i := Insert(t)
	i.dialect = d.dialect
	return i
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

// Quote quotes the given identifier with the characters based
// on the configured dialect. It defaults to "`".
func (b *Builder) Quote(ident string) string {
	quote := "`"
	if b.postgres() {
		quote = `"`
	}
	return quote + strings.ReplaceAll(ident, quote, quote+quote) + quote
}

// Ident appends the given string as an identifier. Dotted names
// such as "users.id" are quoted part by part, and "*" is left as is.
func (b *Builder) Ident(s string) *Builder {
	switch {
	case s == "":
	case s == "*":
		b.WriteString(s)
	case strings.Contains(s, "."):
		for i, part := range strings.Split(s, ".") {
			if i > 0 {
				b.WriteByte('.')
			}
			if part == "*" {
				b.WriteString(part)
				continue
			}
			b.WriteString(b.Quote(part))
		}
	default:
		b.WriteString(b.Quote(s))
	}
	return b
}

// IdentComma calls Ident on all arguments and adds a comma between them.
func (b *Builder) IdentComma(s ...string) *Builder {
	for i := range s {
		if i > 0 {
			b.Comma()
		}
		b.Ident(s[i])
	}
	return b
}

// WriteString writes the given string to the builder.
func (b *Builder) WriteString(s string) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteString(s)
	return b
}

// WriteByte writes the given byte to the builder.
func (b *Builder) WriteByte(c byte) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteByte(c)
	return b
}

// Comma adds a comma to the query.
func (b *Builder) Comma() *Builder {
	return b.WriteString(", ")
}

// Pad adds a space to the query.
func (b *Builder) Pad() *Builder {
	return b.WriteByte(' ')
}

// Arg appends an input argument to the builder. Queriers are joined
// into the query instead of being bound as parameters.
func (b *Builder) Arg(a any) *Builder {
	switch a := a.(type) {
	case Appender:
		a.AppendSQL(b)
		return b
	case Querier:
		return b.Join(a)
	}
	b.total++
	b.args = append(b.args, a)
	if b.postgres() {
		return b.WriteString("$" + strconv.Itoa(b.total))
	}
	return b.WriteByte('?')
}

// Args appends a list of arguments to the builder.
func (b *Builder) Args(a ...any) *Builder {
	for i := range a {
		if i > 0 {
			b.Comma()
		}
		b.Arg(a[i])
	}
	return b
}

// Join joins a list of Queriers to the builder.
func (b *Builder) Join(qs ...Querier) *Builder {
	return b.join(qs, "")
}

// JoinComma joins a list of Queriers and adds a comma between them.
func (b *Builder) JoinComma(qs ...Querier) *Builder {
	return b.join(qs, ", ")
}

func (b *Builder) join(qs []Querier, sep string) *Builder {
	for i, q := range qs {
		if i > 0 {
			b.WriteString(sep)
		}
		if a, ok := q.(Appender); ok {
			a.AppendSQL(b)
			continue
		}
		query, args := q.Query()
		b.WriteString(query)
		b.args = append(b.args, args...)
		b.total += len(args)
	}
	return b
}

// Wrap gets a callback, and wraps its result with parentheses.
func (b *Builder) Wrap(f func(*Builder)) *Builder {
	b.WriteByte('(')
	f(b)
	return b.WriteByte(')')
}

// Bare calls f with column qualifiers turned off. Columns written by f
// render as `name` instead of `table`.`name`.
func (b *Builder) Bare(f func(*Builder)) *Builder {
	prev := b.bare
	b.bare = true
	f(b)
	b.bare = prev
	return b
}

// AddError appends an error to the builder errors.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns a concatenated error of all errors encountered during
// the query-building, or were added manually by calling AddError.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// String returns the accumulated string.
func (b *Builder) String() string {
	if b.sb == nil {
		return ""
	}
	return b.sb.String()
}

// Query implements the Querier interface.
func (b *Builder) Query() (string, []any) {
	return b.String(), b.args
}

func (b *Builder) postgres() bool {
	return b.dialect == dialect.Postgres
}

// Raw returns a raw SQL query that is placed as-is in the query.
func Raw(s string) Querier {
	return &raw{s: s}
}

type raw struct{ s string }

func (r *raw) Query() (string, []any) { return r.s, nil }

// ExprP creates a node from a raw SQL fragment and its arguments.
// Each "?" in the fragment is replaced by the placeholder of the
// enclosing builder.
//
//	ExprP("json_extract(`data`, ?)", "$.name")
func ExprP(text string, args ...any) Querier {
	return &exprP{text: text, args: args}
}

type exprP struct {
	text string
	args []any
}

func (e *exprP) AppendSQL(b *Builder) {
	text, args := e.text, e.args
	for len(args) > 0 {
		i := strings.IndexByte(text, '?')
		if i < 0 {
			break
		}
		b.WriteString(text[:i])
		b.Arg(args[0])
		text, args = text[i+1:], args[1:]
	}
	b.WriteString(text)
}

func (e *exprP) Query() (string, []any) {
	return render(e)
}

// render renders an Appender with the default dialect.
func render(a Appender) (string, []any) {
	b := &Builder{}
	a.AppendSQL(b)
	return b.Query()
}
