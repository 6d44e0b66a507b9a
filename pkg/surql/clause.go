package surql

import "strings"

// Field is one projection of a SELECT or RETURN clause.
type Field struct {
	All   bool
	Expr  Value
	Alias Idiom
}

// AllField returns the * projection.
func AllField() Field {
	return Field{All: true}
}

// FieldOf projects an idiom given as text, optionally aliased.
func FieldOf(expr string, alias ...string) Field {
	if expr == "*" {
		return AllField()
	}
	f := Field{Expr: ParseIdiom(expr)}
	if len(alias) > 0 && alias[0] != "" {
		f.Alias = ParseIdiom(alias[0])
	}
	return f
}

// SQL renders the projection.
func (f Field) SQL() string {
	if f.All || f.Expr == nil {
		return "*"
	}
	if len(f.Alias) > 0 {
		return f.Expr.SQL() + " AS " + f.Alias.SQL()
	}
	return f.Expr.SQL()
}

// Fields is a projection list. An empty list renders as *.
type Fields []Field

// SQL renders the projection list.
func (fs Fields) SQL() string {
	if len(fs) == 0 {
		return "*"
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.SQL()
	}
	return strings.Join(parts, ", ")
}

// Direction is an ORDER BY direction. The zero value is ascending.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Order is one ORDER BY term.
type Order struct {
	Idiom     Idiom
	Random    bool
	Collate   bool
	Numeric   bool
	Direction Direction
}

// SQL renders the term.
func (o Order) SQL() string {
	if o.Random {
		return "rand()"
	}
	return Clauses(
		o.Idiom.SQL(),
		Optf(o.Collate, "COLLATE"),
		Optf(o.Numeric, "NUMERIC"),
		o.directionSQL(),
	)
}

func (o Order) directionSQL() string {
	if o.Direction == Desc {
		return "DESC"
	}
	return "ASC"
}

// With is the index hint of a SELECT.
type With struct {
	NoIndex bool
	Indexes []string
}

// SQL renders the WITH clause. A With without index names renders NOINDEX;
// builders reject an empty INDEX list before it gets here.
func (w With) SQL() string {
	if w.NoIndex || len(w.Indexes) == 0 {
		return "WITH NOINDEX"
	}
	names := make([]string, len(w.Indexes))
	for i, n := range w.Indexes {
		names[i] = EscapeIdent(n)
	}
	return "WITH INDEX " + strings.Join(names, ", ")
}

// OutputKind selects what a write statement returns.
type OutputKind int

const (
	OutputNone OutputKind = iota
	OutputNull
	OutputDiff
	OutputBefore
	OutputAfter
	OutputFields
)

// Output is the RETURN clause of a write statement.
type Output struct {
	Kind   OutputKind
	Fields Fields
}

// SQL renders the RETURN clause.
func (o Output) SQL() string {
	switch o.Kind {
	case OutputNull:
		return "RETURN NULL"
	case OutputDiff:
		return "RETURN DIFF"
	case OutputBefore:
		return "RETURN BEFORE"
	case OutputAfter:
		return "RETURN AFTER"
	case OutputFields:
		return "RETURN " + o.Fields.SQL()
	default:
		return "RETURN NONE"
	}
}

// SetExpr is one assignment of a SET clause, idiom op value.
type SetExpr struct {
	Idiom Idiom
	Op    Operator
	Value Value
}

// SQL renders the assignment.
func (s SetExpr) SQL() string {
	return s.Idiom.SQL() + " " + s.Op.SQL() + " " + orNull(s.Value).SQL()
}

// DataKind selects the data clause of a write statement.
type DataKind int

const (
	DataSet DataKind = iota
	DataUnset
	DataContent
	DataMerge
	DataPatch
	DataReplace
)

// Data is the data clause of a write statement.
type Data struct {
	Kind   DataKind
	Sets   []SetExpr
	Unsets []Idiom
	Value  Value
}

// SQL renders the data clause.
func (d Data) SQL() string {
	switch d.Kind {
	case DataSet:
		parts := make([]string, len(d.Sets))
		for i, s := range d.Sets {
			parts[i] = s.SQL()
		}
		return "SET " + strings.Join(parts, ", ")
	case DataUnset:
		return "UNSET " + joinIdioms(d.Unsets)
	case DataContent:
		return "CONTENT " + orNull(d.Value).SQL()
	case DataMerge:
		return "MERGE " + orNull(d.Value).SQL()
	case DataPatch:
		return "PATCH " + orNull(d.Value).SQL()
	case DataReplace:
		return "REPLACE " + orNull(d.Value).SQL()
	}
	return ""
}
