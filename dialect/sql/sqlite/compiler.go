package sqlite

import (
	"fmt"
	"log/slog"

	"github.com/syssam/upsert/dialect"
	"github.com/syssam/upsert/dialect/sql"
)

// Compiler renders SQLite INSERT statements, including their
// ON CONFLICT clause, into SQL text and arguments.
type Compiler struct {
	logger *slog.Logger
}

// CompilerOption configures the Compiler.
type CompilerOption func(*Compiler)

// WithLogger sets the logger used to report compiled statements.
// Statements are logged at debug level.
func WithLogger(l *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.logger = l
	}
}

// NewCompiler returns a new Compiler.
//
//	c := sqlite.NewCompiler(sqlite.WithLogger(slog.New(h)))
//	query, args, err := c.Compile(ins)
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCompiler = NewCompiler()

func (c *Compiler) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// Compile renders the statement. It never modifies the builder, and
// compiling the same builder twice yields the same text and arguments.
func (c *Compiler) Compile(i *InsertBuilder) (string, []any, error) {
	if i == nil || i.base == nil {
		return "", nil, fmt.Errorf("%w: nil insert builder", ErrRender)
	}
	b := sql.Dialect(dialect.SQLite).Builder()
	i.base.AppendInsert(b)
	if cl := i.postValues; cl != nil {
		if i.base.DefaultValues() {
			b.AddError(fmt.Errorf("%w: ON CONFLICT cannot follow DEFAULT VALUES", ErrRender))
		}
		c.visit(b, cl)
	}
	i.base.AppendReturning(b)
	if err := b.Err(); err != nil {
		return "", nil, err
	}
	query, args := b.Query()
	c.log().Debug("sqlite: compiled insert",
		"table", i.Table().Name(),
		"conflict", kindOf(i.postValues),
		"query", query,
		"args", len(args),
	)
	return query, args, nil
}

func kindOf(cl Clause) string {
	if cl == nil {
		return "none"
	}
	return string(cl.Kind())
}

// visit dispatches on the clause kind.
func (c *Compiler) visit(b *sql.Builder, cl Clause) {
	switch k := cl.Kind(); k {
	case KindDoNothing:
		n, ok := cl.(*OnConflictDoNothing)
		if !ok {
			b.AddError(fmt.Errorf("%w: clause %T reports kind %q", ErrRender, cl, k))
			return
		}
		c.visitOnConflictDoNothing(b, n)
	case KindDoUpdate:
		u, ok := cl.(*OnConflictDoUpdate)
		if !ok {
			b.AddError(fmt.Errorf("%w: clause %T reports kind %q", ErrRender, cl, k))
			return
		}
		c.visitOnConflictDoUpdate(b, u)
	default:
		b.AddError(fmt.Errorf("%w: unknown conflict clause kind %q", ErrRender, k))
	}
}

// ON CONFLICT [(elements) [WHERE pred]] DO NOTHING
func (c *Compiler) visitOnConflictDoNothing(b *sql.Builder, n *OnConflictDoNothing) {
	c.visitTarget(b, n.target)
	b.WriteString(" DO NOTHING")
}

// ON CONFLICT [(elements) [WHERE pred]] DO UPDATE SET col = value, ... [WHERE pred]
func (c *Compiler) visitOnConflictDoUpdate(b *sql.Builder, u *OnConflictDoUpdate) {
	c.visitTarget(b, u.target)
	b.WriteString(" DO UPDATE SET ")
	for j, sv := range u.values {
		if j > 0 {
			b.Comma()
		}
		b.Ident(sv.Column.Name()).WriteString(" = ")
		b.Arg(sv.Value)
	}
	if u.where != nil {
		b.WriteString(" WHERE ")
		b.Join(u.where)
	}
}

func (c *Compiler) visitTarget(b *sql.Builder, t ConflictTarget) {
	b.WriteString(" ON CONFLICT")
	if t.ConstraintTarget != "" {
		b.AddError(fmt.Errorf("%w: SQLite does not support ON CONFLICT ON CONSTRAINT (%q)", ErrRender, t.ConstraintTarget))
		return
	}
	if len(t.InferredTargetElements) == 0 {
		return
	}
	b.Pad().Wrap(func(b *sql.Builder) {
		for j, e := range t.InferredTargetElements {
			if j > 0 {
				b.Comma()
			}
			c.visitIndexElement(b, e)
		}
	})
	if t.InferredTargetWhere != nil {
		b.WriteString(" WHERE ")
		b.Bare(func(b *sql.Builder) {
			b.Join(t.InferredTargetWhere)
		})
	}
}

func (c *Compiler) visitIndexElement(b *sql.Builder, e any) {
	switch e := e.(type) {
	case string:
		b.Ident(e)
	case *sql.Column:
		b.Ident(e.Name())
	case sql.Querier:
		b.Bare(func(b *sql.Builder) {
			b.Join(e)
		})
	default:
		b.AddError(fmt.Errorf("%w: unsupported index element type %T", ErrRender, e))
	}
}
