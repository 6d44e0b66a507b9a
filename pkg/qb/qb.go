// Package qb is a small string query builder for SELECT over one table or
// record, with a linear filter DSL.
//
// Filters are written left to right and joined by a logical operator; every
// filter value is bound as a parameter, never inlined:
//
//	q := qb.New().From("person", nil).Field("name").Field("age").
//		Where().
//		And("age", qb.MoreThan, 18).
//		End("active", qb.Equal, true).
//		Limit(10)
//
//	sql, vars, err := q.Build()
//	// SELECT name,age FROM type::table($tb) WHERE age > $age AND active = $active LIMIT 10
//
// For anything beyond this shape use package builder.
package qb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pthm/surrealkit"
)

// ErrNoFields is returned by Build when no field was selected.
var ErrNoFields = errors.New("qb: no fields selected")

// ErrOpenFilter is returned by Build when the filter list ends in AND or
// OR.
var ErrOpenFilter = errors.New("qb: filter list not closed with End")

// RelationalOperator compares a field with a bound value.
type RelationalOperator string

const (
	Equal           RelationalOperator = "="
	NotEqual        RelationalOperator = "!="
	LessThan        RelationalOperator = "<"
	LessThanOrEqual RelationalOperator = "<="
	MoreThan        RelationalOperator = ">"
	MoreThanOrEqual RelationalOperator = ">="
)

// LogicalOperator joins a filter to the next one. End closes the filter
// list.
type LogicalOperator string

const (
	And LogicalOperator = "AND"
	Or  LogicalOperator = "OR"
	End LogicalOperator = ""
)

type filter struct {
	key     string
	rel     RelationalOperator
	value   any
	logical LogicalOperator
}

// Builder is a query without a table.
type Builder struct {
	fields []string
	limit  *int
}

// New starts a query.
func New() *Builder {
	return &Builder{}
}

// Field adds a field before the table is chosen.
func (b *Builder) Field(field string) *Builder {
	b.fields = append(b.fields, field)
	return b
}

// Limit sets LIMIT before the table is chosen.
func (b *Builder) Limit(n int) *Builder {
	b.limit = &n
	return b
}

// From selects the table, or a single record of it when id is non-nil.
func (b *Builder) From(table string, id *string) *Query {
	q := &Query{table: table, fields: b.fields, limit: b.limit}
	if id != nil {
		v := *id
		q.id = &v
	}
	return q
}

// Query is a SELECT with a table.
type Query struct {
	table   string
	id      *string
	fields  []string
	limit   *int
	filters []filter
}

// Field adds a selected field. "*" selects everything.
func (q *Query) Field(field string) *Query {
	q.fields = append(q.fields, field)
	return q
}

// Limit sets LIMIT.
func (q *Query) Limit(n int) *Query {
	q.limit = &n
	return q
}

// Where starts the filter list. Filters added to a query that already has
// a closed list are joined to it with AND.
func (q *Query) Where() *Filtering {
	if n := len(q.filters); n > 0 && q.filters[n-1].logical == End {
		q.filters[n-1].logical = And
	}
	return &Filtering{q: q}
}

// Table returns the queried table.
func (q *Query) Table() string {
	return q.table
}

// Filtering is a query with an open filter list. Only filter methods are
// available until the list is closed with End.
type Filtering struct {
	q *Query
}

// Filter appends a filter. When logical is End the list is closed and the
// query is returned; otherwise the still-open list is returned. Exactly one
// of the results is non-nil.
func (f *Filtering) Filter(key string, rel RelationalOperator, value any, logical LogicalOperator) (*Query, *Filtering) {
	f.q.filters = append(f.q.filters, filter{key: key, rel: rel, value: value, logical: logical})
	if logical == End {
		return f.q, nil
	}
	return nil, f
}

// And appends a filter followed by AND.
func (f *Filtering) And(key string, rel RelationalOperator, value any) *Filtering {
	_, next := f.Filter(key, rel, value, And)
	return next
}

// Or appends a filter followed by OR.
func (f *Filtering) Or(key string, rel RelationalOperator, value any) *Filtering {
	_, next := f.Filter(key, rel, value, Or)
	return next
}

// End appends the last filter and closes the list.
func (f *Filtering) End(key string, rel RelationalOperator, value any) *Query {
	q, _ := f.Filter(key, rel, value, End)
	return q
}

// Build renders the statement and the variables it binds: tb, id when a
// record was chosen, and one per filter.
func (q *Query) Build() (string, map[string]any, error) {
	if len(q.fields) == 0 {
		return "", nil, ErrNoFields
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if containsAll(q.fields) {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(q.fields, ","))
	}

	vars := map[string]any{"tb": q.table}
	if q.id != nil {
		sb.WriteString(" FROM type::thing($tb, $id)")
		vars["id"] = *q.id
	} else {
		sb.WriteString(" FROM type::table($tb)")
	}

	if n := len(q.filters); n > 0 && q.filters[n-1].logical != End {
		return "", nil, fmt.Errorf("%w: last filter on %q is followed by %s", ErrOpenFilter, q.filters[n-1].key, q.filters[n-1].logical)
	}

	if len(q.filters) > 0 {
		sb.WriteString(" WHERE")
		for _, f := range q.filters {
			name := paramName(f.key, vars)
			vars[name] = f.value
			fmt.Fprintf(&sb, " %s %s $%s", f.key, f.rel, name)
			if f.logical != End {
				sb.WriteString(" ")
				sb.WriteString(string(f.logical))
			}
		}
	}

	if q.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*q.limit))
	}
	return sb.String(), vars, nil
}

// Execute builds the query and runs it.
func (q *Query) Execute(ctx context.Context, db surrealkit.Querier) ([]surrealkit.Result, error) {
	sql, vars, err := q.Build()
	if err != nil {
		return nil, err
	}
	results, err := db.Query(ctx, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", q.table, err)
	}
	return results, surrealkit.CheckAll(results)
}

func containsAll(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "*" {
			return true
		}
	}
	return false
}

// paramName derives a parameter name from a filter key that is not yet
// taken in vars.
func paramName(key string, vars map[string]any) string {
	var sb strings.Builder
	for _, r := range key {
		if r == '_' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	base := strings.Trim(sb.String(), "_")
	if base == "" {
		base = "p"
	}
	if unicode.IsDigit([]rune(base)[0]) {
		base = "p_" + base
	}
	name := base
	for i := 2; ; i++ {
		if _, taken := vars[name]; !taken {
			return name
		}
		name = base + "_" + strconv.Itoa(i)
	}
}
