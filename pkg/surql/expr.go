package surql

// Binary is a binary expression, l op r.
type Binary struct {
	L  Value
	Op Operator
	R  Value
}

// SQL renders the expression. Children that bind looser than this node are
// parenthesised so the text parses back into the same tree.
func (b Binary) SQL() string {
	prec := b.Op.Precedence()
	return operand(b.L, prec, false) + " " + b.Op.SQL() + " " + operand(b.R, prec, true)
}

// Unary is a prefix expression such as !active or -score.
type Unary struct {
	Op Operator
	V  Value
}

// SQL renders the prefix expression.
func (u Unary) SQL() string {
	if _, ok := u.V.(Binary); ok {
		return u.Op.SQL() + "(" + u.V.SQL() + ")"
	}
	return u.Op.SQL() + u.V.SQL()
}

func operand(v Value, parent int, right bool) string {
	b, ok := v.(Binary)
	if !ok {
		return v.SQL()
	}
	p := b.Op.Precedence()
	if p < parent || (right && p == parent) {
		return "(" + b.SQL() + ")"
	}
	return b.SQL()
}

// Subquery wraps a value or a statement in parentheses.
type Subquery struct {
	Value     Value
	Statement Statement
}

// SQL renders the subquery.
func (s Subquery) SQL() string {
	if s.Statement != nil {
		return "(" + s.Statement.SQL() + ")"
	}
	if s.Value == nil {
		return "(NULL)"
	}
	return "(" + s.Value.SQL() + ")"
}

// Paren wraps a value in parentheses.
func Paren(v Value) Subquery {
	return Subquery{Value: v}
}
