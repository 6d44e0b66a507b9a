package surql

import (
	"fmt"
)

// CondKind identifies the shape of a Condition token.
type CondKind int

const (
	// CondNull is the zero token; it renders as NULL in value position.
	CondNull CondKind = iota
	// CondValue is a bare value.
	CondValue
	// CondValOpVal is a comparison, l op r.
	CondValOpVal
	// CondOperatorValue is a prefix expression, op v.
	CondOperatorValue
	// CondOperator is an operator joining two neighbouring values.
	CondOperator
	// CondSubCond is a nested condition rendered in parentheses.
	CondSubCond
	// CondSubquery is a SELECT rendered in parentheses.
	CondSubquery
)

// Condition is one token of a condition stream. Build streams with Cmp, Op,
// Val, UnaryOf, Group and Sub, or let Conds convert plain Go values.
type Condition struct {
	Kind  CondKind
	L     Value
	Op    Operator
	R     Value
	Group *Cond
	Query *SelectStatement

	err error
}

// Cond is a WHERE condition: a single value, usually an expression tree.
type Cond struct {
	Value Value
}

// SQL renders the condition.
func (c Cond) SQL() string {
	if c.Value == nil {
		return "NULL"
	}
	return c.Value.SQL()
}

// IsNull reports whether the condition is empty.
func (c Cond) IsNull() bool {
	return c.Value == nil || isNull(c.Value)
}

// Cmp builds a comparison token. String operands go through ParseValue;
// statements become subqueries; anything else goes through Convert.
func Cmp(l any, op Operator, r any) Condition {
	lv, lerr := operandValue(l)
	rv, rerr := operandValue(r)
	c := Condition{Kind: CondValOpVal, L: lv, Op: op, R: rv}
	if lerr != nil {
		c.err = lerr
	} else if rerr != nil {
		c.err = rerr
	}
	return c
}

// UnaryOf builds a prefix token such as !active.
func UnaryOf(op Operator, v any) Condition {
	val, err := operandValue(v)
	return Condition{Kind: CondOperatorValue, Op: op, R: val, err: err}
}

// Not is shorthand for UnaryOf(OpNot, v).
func Not(v any) Condition {
	return UnaryOf(OpNot, v)
}

// Op builds an operator token.
func Op(op Operator) Condition {
	return Condition{Kind: CondOperator, Op: op}
}

// Val builds a bare value token.
func Val(v any) Condition {
	val, err := operandValue(v)
	return Condition{Kind: CondValue, L: val, err: err}
}

// Group builds a token holding a nested condition.
func Group(c Cond) Condition {
	return Condition{Kind: CondSubCond, Group: &c}
}

// Sub builds a token holding a SELECT subquery.
func Sub(s SelectStatement) Condition {
	return Condition{Kind: CondSubquery, Query: &s}
}

func operandValue(v any) (Value, error) {
	switch x := v.(type) {
	case string:
		return ParseValue(x), nil
	case Condition:
		return x.Value(), x.err
	case Cond:
		return Paren(x.Value), nil
	case SelectStatement:
		return Subquery{Statement: x}, nil
	case *SelectStatement:
		return Subquery{Statement: *x}, nil
	case Statement:
		return Subquery{Statement: x}, nil
	}
	return Convert(v)
}

// Value returns the token in value position. Operator and null tokens yield NULL.
func (c Condition) Value() Value {
	switch c.Kind {
	case CondValue:
		if c.L == nil {
			return Null{}
		}
		return c.L
	case CondValOpVal:
		return Binary{L: orNull(c.L), Op: c.Op, R: orNull(c.R)}
	case CondOperatorValue:
		return Unary{Op: c.Op, V: orNull(c.R)}
	case CondSubCond:
		if c.Group == nil {
			return Paren(Null{})
		}
		return Paren(c.Group.Value)
	case CondSubquery:
		if c.Query == nil {
			return Paren(Null{})
		}
		return Subquery{Statement: *c.Query}
	default:
		return Null{}
	}
}

// IsValue reports whether the token can stand in value position.
func (c Condition) IsValue() bool {
	switch c.Kind {
	case CondValue, CondValOpVal, CondOperatorValue, CondSubCond, CondSubquery:
		return true
	}
	return false
}

// IsOperator reports whether the token is an operator.
func (c Condition) IsOperator() bool {
	return c.Kind == CondOperator
}

// Err returns the conversion error recorded while building the token.
func (c Condition) Err() error {
	return c.err
}

func orNull(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}

// BuildCond assembles a token stream into a condition tree.
//
// An empty stream yields a NULL condition and a single value token yields
// that value. Otherwise the stream must alternate value, operator, value,
// ... and folds left: a OP1 b OP2 c becomes ((a OP1 b) OP2 c).
func BuildCond(tokens ...Condition) (Cond, error) {
	if len(tokens) == 0 {
		return Cond{Value: Null{}}, nil
	}
	for i, t := range tokens {
		if t.err != nil {
			return Cond{}, fmt.Errorf("token %d: %w", i, t.err)
		}
	}
	if len(tokens)%2 == 0 {
		return Cond{}, fmt.Errorf("%w: %d tokens, expected value (operator value)*", ErrMalformedCondition, len(tokens))
	}
	if !tokens[0].IsValue() {
		return Cond{}, fmt.Errorf("%w: token 0 is not a value", ErrMalformedCondition)
	}

	expr := tokens[0].Value()
	for i := 1; i < len(tokens); i += 2 {
		op, v := tokens[i], tokens[i+1]
		if !op.IsOperator() {
			return Cond{}, fmt.Errorf("%w: token %d is not an operator", ErrMalformedCondition, i)
		}
		if !v.IsValue() {
			return Cond{}, fmt.Errorf("%w: token %d is not a value", ErrMalformedCondition, i+1)
		}
		expr = Binary{L: expr, Op: op.Op, R: v.Value()}
	}
	return Cond{Value: expr}, nil
}

// ToCondition converts a Go value into a condition token.
//
//	Condition        -> itself
//	Operator         -> operator token
//	string           -> value token via ParseValue
//	Cond             -> nested condition token
//	SelectStatement  -> subquery token
//	anything else    -> value token via Convert
func ToCondition(v any) (Condition, error) {
	switch x := v.(type) {
	case Condition:
		return x, x.err
	case Operator:
		return Op(x), nil
	case Cond:
		return Group(x), nil
	case *Cond:
		if x == nil {
			return Condition{}, fmt.Errorf("%w: nil condition", ErrMalformedCondition)
		}
		return Group(*x), nil
	case SelectStatement:
		return Sub(x), nil
	case *SelectStatement:
		return Sub(*x), nil
	}
	c := Val(v)
	return c, c.err
}

// Conds converts each token with ToCondition and assembles them with
// BuildCond.
//
//	surql.Conds("active", surql.OpAnd, surql.Cmp("age", surql.OpMoreThan, "$age"))
//	// active AND age > $age
func Conds(tokens ...any) (Cond, error) {
	conds := make([]Condition, len(tokens))
	for i, t := range tokens {
		c, err := ToCondition(t)
		if err != nil {
			return Cond{}, fmt.Errorf("token %d: %w", i, err)
		}
		conds[i] = c
	}
	return BuildCond(conds...)
}

// ToCond converts a single Go value into a condition.
//
//	Cond, *Cond      -> itself
//	[]Condition      -> BuildCond
//	[]any            -> Conds
//	Condition        -> its value
//	string           -> ParseValue
//	anything else    -> Convert
func ToCond(v any) (Cond, error) {
	switch x := v.(type) {
	case Cond:
		return x, nil
	case *Cond:
		if x == nil {
			return Cond{Value: Null{}}, nil
		}
		return *x, nil
	case []Condition:
		return BuildCond(x...)
	case []any:
		return Conds(x...)
	case Condition:
		if x.err != nil {
			return Cond{}, x.err
		}
		if !x.IsValue() {
			return Cond{}, fmt.Errorf("%w: operator without operands", ErrMalformedCondition)
		}
		return Cond{Value: x.Value()}, nil
	case Operator:
		return Cond{}, fmt.Errorf("%w: operator without operands", ErrMalformedCondition)
	}
	val, err := operandValue(v)
	if err != nil {
		return Cond{}, err
	}
	return Cond{Value: val}, nil
}
