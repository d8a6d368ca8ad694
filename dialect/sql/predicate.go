package sql

// Predicate is a WHERE-clause expression. Predicates compose with
// And, Or and Not, and render through the Builder they are joined to,
// so their arguments follow the quoting and placeholder rules of the
// enclosing statement.
type Predicate struct {
	fns []func(*Builder)
}

// P creates a new predicate from the given builder functions.
//
//	P(func(b *Builder) {
//		b.Ident("name").WriteString(" LIKE ").Arg("a8m%")
//	})
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// AppendSQL implements the Appender interface.
func (p *Predicate) AppendSQL(b *Builder) {
	for _, f := range p.fns {
		f(b)
	}
}

// Query implements the Querier interface.
func (p *Predicate) Query() (string, []any) {
	return render(p)
}

// EQ returns a "=" predicate.
//
//	EQ("name", "a8m")
//	EQ(users.C("count"), excluded.C("count"))
func EQ(col, value any) *Predicate { return binaryP(col, " = ", value) }

// NEQ returns a "<>" predicate.
func NEQ(col, value any) *Predicate { return binaryP(col, " <> ", value) }

// GT returns a ">" predicate.
func GT(col, value any) *Predicate { return binaryP(col, " > ", value) }

// GTE returns a ">=" predicate.
func GTE(col, value any) *Predicate { return binaryP(col, " >= ", value) }

// LT returns a "<" predicate.
func LT(col, value any) *Predicate { return binaryP(col, " < ", value) }

// LTE returns a "<=" predicate.
func LTE(col, value any) *Predicate { return binaryP(col, " <= ", value) }

// IsNull returns an "IS NULL" predicate.
func IsNull(col any) *Predicate {
	return P(func(b *Builder) {
		writeOperand(b, col)
		b.WriteString(" IS NULL")
	})
}

// NotNull returns an "IS NOT NULL" predicate.
func NotNull(col any) *Predicate {
	return P(func(b *Builder) {
		writeOperand(b, col)
		b.WriteString(" IS NOT NULL")
	})
}

// In returns an "IN" predicate. An empty list renders as FALSE.
func In(col any, values ...any) *Predicate {
	return P(func(b *Builder) {
		if len(values) == 0 {
			b.WriteString("FALSE")
			return
		}
		writeOperand(b, col)
		b.WriteString(" IN ").Wrap(func(b *Builder) {
			b.Args(values...)
		})
	})
}

// NotIn returns a "NOT IN" predicate. An empty list renders as TRUE.
func NotIn(col any, values ...any) *Predicate {
	return P(func(b *Builder) {
		if len(values) == 0 {
			b.WriteString("TRUE")
			return
		}
		writeOperand(b, col)
		b.WriteString(" NOT IN ").Wrap(func(b *Builder) {
			b.Args(values...)
		})
	})
}

// And combines all given predicates with AND between them.
func And(preds ...*Predicate) *Predicate {
	return joinP(" AND ", preds)
}

// Or combines all given predicates with OR between them.
func Or(preds ...*Predicate) *Predicate {
	return joinP(" OR ", preds)
}

// Not wraps the given predicate with NOT.
func Not(pred *Predicate) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("NOT ").Wrap(pred.AppendSQL)
	})
}

func binaryP(col any, op string, value any) *Predicate {
	return P(func(b *Builder) {
		writeOperand(b, col)
		b.WriteString(op)
		b.Arg(value)
	})
}

func joinP(op string, preds []*Predicate) *Predicate {
	return P(func(b *Builder) {
		for i, p := range preds {
			if i > 0 {
				b.WriteString(op)
			}
			if len(preds) > 1 {
				b.Wrap(p.AppendSQL)
				continue
			}
			p.AppendSQL(b)
		}
	})
}

// writeOperand writes the column side of a predicate. Strings are
// treated as identifiers, nodes are rendered inline and everything
// else is bound as an argument.
func writeOperand(b *Builder, v any) {
	if s, ok := v.(string); ok {
		b.Ident(s)
		return
	}
	b.Arg(v)
}
