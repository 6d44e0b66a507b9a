package surql

import (
	"fmt"
	"strconv"
	"strings"
)

// OpKind identifies a SurrealQL operator.
type OpKind int

const (
	KindNeg OpKind = iota
	KindNot
	KindOr
	KindAnd
	KindTco
	KindNco
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindRem
	KindPow
	KindInc
	KindDec
	KindExt
	KindEqual
	KindExact
	KindNotEqual
	KindAllEqual
	KindAnyEqual
	KindLike
	KindNotLike
	KindAllLike
	KindAnyLike
	KindMatches
	KindLessThan
	KindLessThanOrEqual
	KindMoreThan
	KindMoreThanOrEqual
	KindContain
	KindNotContain
	KindContainAll
	KindContainAny
	KindContainNone
	KindInside
	KindNotInside
	KindAllInside
	KindAnyInside
	KindNoneInside
	KindOutside
	KindIntersects
	KindKnn
)

// Operator is a SurrealQL operator. Matches carries an optional full-text
// reference and Knn carries the neighbour count.
type Operator struct {
	Kind OpKind
	// Ref is the @ref@ reference for Matches; nil renders @@.
	Ref *int
	// K is the neighbour count for Knn.
	K int
}

// Predefined operators.
var (
	OpNeg             = Operator{Kind: KindNeg}
	OpNot             = Operator{Kind: KindNot}
	OpOr              = Operator{Kind: KindOr}
	OpAnd             = Operator{Kind: KindAnd}
	OpTco             = Operator{Kind: KindTco}
	OpNco             = Operator{Kind: KindNco}
	OpAdd             = Operator{Kind: KindAdd}
	OpSub             = Operator{Kind: KindSub}
	OpMul             = Operator{Kind: KindMul}
	OpDiv             = Operator{Kind: KindDiv}
	OpRem             = Operator{Kind: KindRem}
	OpPow             = Operator{Kind: KindPow}
	OpInc             = Operator{Kind: KindInc}
	OpDec             = Operator{Kind: KindDec}
	OpExt             = Operator{Kind: KindExt}
	OpEqual           = Operator{Kind: KindEqual}
	OpExact           = Operator{Kind: KindExact}
	OpNotEqual        = Operator{Kind: KindNotEqual}
	OpAllEqual        = Operator{Kind: KindAllEqual}
	OpAnyEqual        = Operator{Kind: KindAnyEqual}
	OpLike            = Operator{Kind: KindLike}
	OpNotLike         = Operator{Kind: KindNotLike}
	OpAllLike         = Operator{Kind: KindAllLike}
	OpAnyLike         = Operator{Kind: KindAnyLike}
	OpLessThan        = Operator{Kind: KindLessThan}
	OpLessThanOrEqual = Operator{Kind: KindLessThanOrEqual}
	OpMoreThan        = Operator{Kind: KindMoreThan}
	OpMoreThanOrEqual = Operator{Kind: KindMoreThanOrEqual}
	OpContain         = Operator{Kind: KindContain}
	OpNotContain      = Operator{Kind: KindNotContain}
	OpContainAll      = Operator{Kind: KindContainAll}
	OpContainAny      = Operator{Kind: KindContainAny}
	OpContainNone     = Operator{Kind: KindContainNone}
	OpInside          = Operator{Kind: KindInside}
	OpNotInside       = Operator{Kind: KindNotInside}
	OpAllInside       = Operator{Kind: KindAllInside}
	OpAnyInside       = Operator{Kind: KindAnyInside}
	OpNoneInside      = Operator{Kind: KindNoneInside}
	OpOutside         = Operator{Kind: KindOutside}
	OpIntersects      = Operator{Kind: KindIntersects}
)

// Matches returns the full-text match operator. With no reference it
// renders @@, with one it renders @ref@.
func Matches(ref ...int) Operator {
	op := Operator{Kind: KindMatches}
	if len(ref) > 0 {
		r := ref[0]
		op.Ref = &r
	}
	return op
}

// Knn returns the k-nearest-neighbour operator <k>.
func Knn(k int) Operator {
	return Operator{Kind: KindKnn, K: k}
}

var opSymbols = map[OpKind]string{
	KindNeg:             "-",
	KindNot:             "!",
	KindOr:              "OR",
	KindAnd:             "AND",
	KindTco:             "?:",
	KindNco:             "??",
	KindAdd:             "+",
	KindSub:             "-",
	KindMul:             "*",
	KindDiv:             "/",
	KindRem:             "%",
	KindPow:             "**",
	KindInc:             "+=",
	KindDec:             "-=",
	KindExt:             "+?=",
	KindEqual:           "=",
	KindExact:           "==",
	KindNotEqual:        "!=",
	KindAllEqual:        "*=",
	KindAnyEqual:        "?=",
	KindLike:            "~",
	KindNotLike:         "!~",
	KindAllLike:         "*~",
	KindAnyLike:         "?~",
	KindLessThan:        "<",
	KindLessThanOrEqual: "<=",
	KindMoreThan:        ">",
	KindMoreThanOrEqual: ">=",
	KindContain:         "CONTAINS",
	KindNotContain:      "CONTAINSNOT",
	KindContainAll:      "CONTAINSALL",
	KindContainAny:      "CONTAINSANY",
	KindContainNone:     "CONTAINSNONE",
	KindInside:          "INSIDE",
	KindNotInside:       "NOTINSIDE",
	KindAllInside:       "ALLINSIDE",
	KindAnyInside:       "ANYINSIDE",
	KindNoneInside:      "NONEINSIDE",
	KindOutside:         "OUTSIDE",
	KindIntersects:      "INTERSECTS",
}

// SQL renders the operator symbol.
func (o Operator) SQL() string {
	switch o.Kind {
	case KindMatches:
		if o.Ref == nil {
			return "@@"
		}
		return "@" + strconv.Itoa(*o.Ref) + "@"
	case KindKnn:
		return "<" + strconv.Itoa(o.K) + ">"
	}
	return opSymbols[o.Kind]
}

// String implements fmt.Stringer.
func (o Operator) String() string {
	return o.SQL()
}

// Equal reports whether two operators are the same, including references.
func (o Operator) Equal(other Operator) bool {
	if o.Kind != other.Kind || o.K != other.K {
		return false
	}
	if o.Ref == nil || other.Ref == nil {
		return o.Ref == nil && other.Ref == nil
	}
	return *o.Ref == *other.Ref
}

// IsUnary reports whether the operator can prefix a single value.
func (o Operator) IsUnary() bool {
	return o.Kind == KindNeg || o.Kind == KindNot
}

// Precedence returns the binding strength of the operator; higher binds tighter.
func (o Operator) Precedence() int {
	switch o.Kind {
	case KindInc, KindDec, KindExt:
		return 0
	case KindOr, KindTco, KindNco:
		return 1
	case KindAnd:
		return 2
	case KindAdd, KindSub:
		return 4
	case KindMul, KindDiv, KindRem:
		return 5
	case KindPow:
		return 6
	case KindNeg, KindNot:
		return 7
	default:
		return 3
	}
}

var opBySymbol = map[string]Operator{
	"--":  OpNeg,
	"!":   OpNot,
	"||":  OpOr,
	"&&":  OpAnd,
	"?":   OpTco,
	"?:":  OpTco,
	"??":  OpNco,
	"+":   OpAdd,
	"-":   OpSub,
	"*":   OpMul,
	"×":   OpMul,
	"/":   OpDiv,
	"÷":   OpDiv,
	"%":   OpRem,
	"**":  OpPow,
	"+=":  OpInc,
	"-=":  OpDec,
	"+?=": OpExt,
	"=":   OpEqual,
	"==":  OpExact,
	"!=":  OpNotEqual,
	"*=":  OpAllEqual,
	"?=":  OpAnyEqual,
	"~":   OpLike,
	"!~":  OpNotLike,
	"*~":  OpAllLike,
	"?~":  OpAnyLike,
	"<":   OpLessThan,
	"<=":  OpLessThanOrEqual,
	">":   OpMoreThan,
	">=":  OpMoreThanOrEqual,
	"∋":   OpContain,
	"∌":   OpNotContain,
	"⊇":   OpContainAll,
	"⊃":   OpContainAny,
	"⊅":   OpContainNone,
	"∈":   OpInside,
	"∉":   OpNotInside,
	"⊆":   OpAllInside,
	"⊂":   OpAnyInside,
	"⊄":   OpNoneInside,
}

// opByName maps normalised names (lower case, no spaces or underscores) to
// operators. It covers both the operator names and the SurrealQL keywords.
var opByName = map[string]Operator{
	"neg":             OpNeg,
	"not":             OpNot,
	"or":              OpOr,
	"and":             OpAnd,
	"tco":             OpTco,
	"nco":             OpNco,
	"add":             OpAdd,
	"sub":             OpSub,
	"mul":             OpMul,
	"div":             OpDiv,
	"rem":             OpRem,
	"pow":             OpPow,
	"inc":             OpInc,
	"dec":             OpDec,
	"ext":             OpExt,
	"equal":           OpEqual,
	"is":              OpEqual,
	"exact":           OpExact,
	"notequal":        OpNotEqual,
	"isnot":           OpNotEqual,
	"allequal":        OpAllEqual,
	"anyequal":        OpAnyEqual,
	"like":            OpLike,
	"notlike":         OpNotLike,
	"alllike":         OpAllLike,
	"anylike":         OpAnyLike,
	"matches":         Matches(),
	"lessthan":        OpLessThan,
	"lessthanorequal": OpLessThanOrEqual,
	"morethan":        OpMoreThan,
	"morethanorequal": OpMoreThanOrEqual,
	"contain":         OpContain,
	"contains":        OpContain,
	"notcontain":      OpNotContain,
	"containsnot":     OpNotContain,
	"containall":      OpContainAll,
	"containsall":     OpContainAll,
	"containany":      OpContainAny,
	"containsany":     OpContainAny,
	"containnone":     OpContainNone,
	"containsnone":    OpContainNone,
	"inside":          OpInside,
	"in":              OpInside,
	"notinside":       OpNotInside,
	"notin":           OpNotInside,
	"allinside":       OpAllInside,
	"anyinside":       OpAnyInside,
	"noneinside":      OpNoneInside,
	"outside":         OpOutside,
	"intersects":      OpIntersects,
}

// ParseOperator resolves an operator from its symbol (&&, !=, @2@, <3>, ∋),
// its SurrealQL keyword (AND, CONTAINS, NOT IN) or its name in any case
// (And, NotEqual, not_equal). "--" is negation, "-" is subtraction.
func ParseOperator(token string) (Operator, error) {
	s := strings.TrimSpace(token)
	if op, ok := opBySymbol[s]; ok {
		return op, nil
	}
	if n, ok := wrappedInt(s, "@", "@"); ok {
		return Matches(n), nil
	}
	if s == "@@" {
		return Matches(), nil
	}
	if n, ok := wrappedInt(s, "<", ">"); ok {
		return Knn(n), nil
	}
	name := strings.ToLower(strings.NewReplacer("_", "", " ", "", "-", "").Replace(s))
	if op, ok := opByName[name]; ok {
		return op, nil
	}
	return Operator{}, fmt.Errorf("%w: %q", ErrUnknownOperator, token)
}

// MustOperator is like ParseOperator but panics on unknown tokens.
// Intended for operator literals in code.
func MustOperator(token string) Operator {
	op, err := ParseOperator(token)
	if err != nil {
		panic(err)
	}
	return op
}

func wrappedInt(s, open, closing string) (int, bool) {
	if len(s) <= len(open)+len(closing) || !strings.HasPrefix(s, open) || !strings.HasSuffix(s, closing) {
		return 0, false
	}
	n, err := strconv.Atoi(s[len(open) : len(s)-len(closing)])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
