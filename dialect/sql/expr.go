package sql

// Op represents a binary operator.
type Op string

// Binary operators supported by BinaryExpr.
const (
	OpAdd    Op = "+"
	OpSub    Op = "-"
	OpMul    Op = "*"
	OpDiv    Op = "/"
	OpConcat Op = "||"
)

// BinaryExpr is an arithmetic or string expression over two operands.
// Operands that are Queriers are rendered inline; any other value is
// bound as an argument.
type BinaryExpr struct {
	Op  Op
	LHS any
	RHS any
}

// Add returns the expression `lhs + rhs`.
//
//	sql.Add(users.C("count"), 1) // `users`.`count` + ?
func Add(lhs, rhs any) *BinaryExpr { return &BinaryExpr{Op: OpAdd, LHS: lhs, RHS: rhs} }

// Sub returns the expression `lhs - rhs`.
func Sub(lhs, rhs any) *BinaryExpr { return &BinaryExpr{Op: OpSub, LHS: lhs, RHS: rhs} }

// Mul returns the expression `lhs * rhs`.
func Mul(lhs, rhs any) *BinaryExpr { return &BinaryExpr{Op: OpMul, LHS: lhs, RHS: rhs} }

// Div returns the expression `lhs / rhs`.
func Div(lhs, rhs any) *BinaryExpr { return &BinaryExpr{Op: OpDiv, LHS: lhs, RHS: rhs} }

// Concat returns the expression `lhs || rhs`.
func Concat(lhs, rhs any) *BinaryExpr { return &BinaryExpr{Op: OpConcat, LHS: lhs, RHS: rhs} }

// Add returns the expression `e + v`.
func (e *BinaryExpr) Add(v any) *BinaryExpr { return Add(e, v) }

// Sub returns the expression `e - v`.
func (e *BinaryExpr) Sub(v any) *BinaryExpr { return Sub(e, v) }

// Mul returns the expression `e * v`.
func (e *BinaryExpr) Mul(v any) *BinaryExpr { return Mul(e, v) }

// Div returns the expression `e / v`.
func (e *BinaryExpr) Div(v any) *BinaryExpr { return Div(e, v) }

// AppendSQL implements the Appender interface. Nested binary
// expressions are wrapped with parentheses.
func (e *BinaryExpr) AppendSQL(b *Builder) {
	e.operand(b, e.LHS)
	b.Pad().WriteString(string(e.Op)).Pad()
	e.operand(b, e.RHS)
}

func (e *BinaryExpr) operand(b *Builder, v any) {
	if x, ok := v.(*BinaryExpr); ok {
		b.Wrap(x.AppendSQL)
		return
	}
	b.Arg(v)
}

// Query implements the Querier interface.
func (e *BinaryExpr) Query() (string, []any) {
	return render(e)
}
