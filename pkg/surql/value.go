package surql

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Value is the interface that all SurrealQL expression types implement.
type Value interface {
	SQL() string
}

// Param represents a bound variable reference (e.g., $name).
type Param string

// SQL renders the parameter.
func (p Param) SQL() string {
	return "$" + strings.TrimPrefix(string(p), "$")
}

// Name returns the parameter name without the leading $.
func (p Param) Name() string {
	return strings.TrimPrefix(string(p), "$")
}

// Table represents a table name.
type Table string

// SQL renders the table name, escaping it when it is not a plain identifier.
func (t Table) SQL() string {
	return EscapeIdent(string(t))
}

// Thing is a record identifier, table:id.
// ID may be a string, an integer, an Array, an Object or any other Value.
type Thing struct {
	Table string
	ID    any
}

// SQL renders the record id.
func (t Thing) SQL() string {
	return EscapeIdent(t.Table) + ":" + thingIDSQL(t.ID)
}

func thingIDSQL(id any) string {
	switch v := id.(type) {
	case string:
		if IsIdent(v) {
			return v
		}
		return "⟨" + strings.ReplaceAll(v, "⟩", `\⟩`) + "⟩"
	case Strand:
		return thingIDSQL(string(v))
	case Value:
		return v.SQL()
	default:
		return ValueOf(v).SQL()
	}
}

// Strand represents a string literal (single-quoted).
type Strand string

// SQL renders the literal with single quotes.
func (s Strand) SQL() string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(string(s))
	return "'" + escaped + "'"
}

// Raw is an escape hatch for arbitrary SurrealQL.
type Raw string

// SQL renders the raw SurrealQL as-is.
func (r Raw) SQL() string {
	return string(r)
}

// Int represents an integer literal.
type Int int64

// SQL renders the integer.
func (i Int) SQL() string {
	return strconv.FormatInt(int64(i), 10)
}

// Float represents a floating point literal.
type Float float64

// SQL renders the float with the f suffix.
func (f Float) SQL() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "f"
}

// Decimal represents an arbitrary precision decimal literal given as text.
type Decimal string

// SQL renders the decimal with the dec suffix.
func (d Decimal) SQL() string {
	return string(d) + "dec"
}

// Bool represents a boolean literal.
type Bool bool

// SQL renders the boolean.
func (b Bool) SQL() string {
	if b {
		return "true"
	}
	return "false"
}

// Null represents NULL.
type Null struct{}

// SQL renders NULL.
func (Null) SQL() string {
	return "NULL"
}

// None represents NONE, the absence of a value.
type None struct{}

// SQL renders NONE.
func (None) SQL() string {
	return "NONE"
}

// Uuid represents a uuid literal.
type Uuid uuid.UUID

// SQL renders the uuid.
func (u Uuid) SQL() string {
	return "u'" + uuid.UUID(u).String() + "'"
}

// Datetime represents a datetime literal.
type Datetime time.Time

// SQL renders the datetime in UTC.
func (d Datetime) SQL() string {
	return "d'" + time.Time(d).UTC().Format(time.RFC3339Nano) + "'"
}

// Duration represents a duration literal such as 1h30m.
// Negative durations render as 0ns; SurrealQL has no negative duration literal.
type Duration time.Duration

var durationUnits = []struct {
	suffix string
	size   time.Duration
}{
	{"y", 365 * 24 * time.Hour},
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
	{"µs", time.Microsecond},
	{"ns", time.Nanosecond},
}

// SQL renders the duration.
func (d Duration) SQL() string {
	rest := time.Duration(d)
	if rest <= 0 {
		return "0ns"
	}
	var b strings.Builder
	for _, u := range durationUnits {
		if n := rest / u.size; n > 0 {
			b.WriteString(strconv.FormatInt(int64(n), 10))
			b.WriteString(u.suffix)
			rest -= n * u.size
		}
	}
	return b.String()
}

// Array represents an array literal.
type Array []Value

// SQL renders the array.
func (a Array) SQL() string {
	return "[" + joinValues(a, ", ") + "]"
}

// Object represents an object literal. Keys render in sorted order.
type Object map[string]Value

// SQL renders the object.
func (o Object) SQL() string {
	if len(o) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = escapeKey(k) + ": " + o[k].SQL()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Func represents a function call such as type::table($tb).
type Func struct {
	Name string
	Args []Value
}

// SQL renders the function call.
func (f Func) SQL() string {
	return f.Name + "(" + joinValues(f.Args, ", ") + ")"
}

// IsIdent reports whether s can be written as a bare identifier: ASCII
// letters, digits and '_', not starting with a digit.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// EscapeIdent returns name as is when it is a plain identifier, otherwise
// wrapped in backticks.
func EscapeIdent(name string) string {
	if IsIdent(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "\\`") + "`"
}

func escapeKey(k string) string {
	if IsIdent(k) {
		return k
	}
	return strconv.Quote(k)
}
