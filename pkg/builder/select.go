package builder

import (
	"time"

	"github.com/pthm/surrealkit/pkg/surql"
)

// SelectNoWhat is a SELECT without a target.
type SelectNoWhat struct {
	stmt surql.SelectStatement
	errs errList
}

// SelectNoFields is a SELECT with a target but no projection.
type SelectNoFields struct {
	stmt surql.SelectStatement
	errs errList
}

// SelectBuilder is a complete SELECT; every optional clause is available.
type SelectBuilder struct {
	stmt surql.SelectStatement
	errs errList
}

// Select starts a SELECT statement.
func Select() *SelectNoWhat {
	return &SelectNoWhat{}
}

// What sets the targets: table names, "table:id" record ids, "$params",
// models.RecordID values or any surql.Value.
func (b *SelectNoWhat) What(targets ...any) *SelectNoFields {
	for _, t := range targets {
		vs, err := toTargets(t)
		b.errs.add(err)
		b.stmt.What = append(b.stmt.What, vs...)
	}
	return &SelectNoFields{stmt: b.stmt, errs: b.errs}
}

// Field adds the first projection. "*" selects all fields.
func (b *SelectNoFields) Field(f any) *SelectBuilder {
	next := &SelectBuilder{stmt: b.stmt, errs: b.errs}
	return next.Field(f)
}

// Fields adds several projections at once.
func (b *SelectNoFields) Fields(fs ...any) *SelectBuilder {
	next := &SelectBuilder{stmt: b.stmt, errs: b.errs}
	for _, f := range fs {
		next.Field(f)
	}
	return next
}

// Field adds a projection.
func (b *SelectBuilder) Field(f any) *SelectBuilder {
	field, err := toField(f)
	if err != nil {
		b.errs.add(err)
		return b
	}
	b.stmt.Expr = append(b.stmt.Expr, field)
	return b
}

// Omit excludes fields from the projection.
func (b *SelectBuilder) Omit(idioms ...string) *SelectBuilder {
	b.stmt.Omit = append(b.stmt.Omit, toIdioms(idioms)...)
	return b
}

// WithIndex restricts the query planner to the named indexes. At least one
// name is required.
func (b *SelectBuilder) WithIndex(names ...string) *SelectBuilder {
	if len(names) == 0 {
		b.errs.add(surql.ErrNoIndexNames)
		return b
	}
	b.stmt.With = &surql.With{Indexes: names}
	return b
}

// WithNoIndex disables index usage.
func (b *SelectBuilder) WithNoIndex() *SelectBuilder {
	b.stmt.With = &surql.With{NoIndex: true}
	return b
}

// Where sets the condition. A single argument may be a string, a
// surql.Condition, a surql.Cond or a token slice; several arguments are
// assembled left to right with surql.Conds. A later call replaces the
// condition.
func (b *SelectBuilder) Where(tokens ...any) *SelectBuilder {
	cond, err := toCond(tokens)
	b.errs.add(err)
	b.stmt.Cond = cond
	return b
}

// Split adds SPLIT ON idioms.
func (b *SelectBuilder) Split(idioms ...string) *SelectBuilder {
	b.stmt.Split = append(b.stmt.Split, toIdioms(idioms)...)
	return b
}

// Group adds GROUP BY idioms.
func (b *SelectBuilder) Group(idioms ...string) *SelectBuilder {
	b.stmt.Group = append(b.stmt.Group, toIdioms(idioms)...)
	return b
}

// GroupAll renders GROUP ALL.
func (b *SelectBuilder) GroupAll() *SelectBuilder {
	b.stmt.GroupAll = true
	return b
}

// Order adds an ORDER BY term.
func (b *SelectBuilder) Order(idiom string, dir surql.Direction) *SelectBuilder {
	b.stmt.Order = append(b.stmt.Order, surql.Order{Idiom: surql.ParseIdiom(idiom), Direction: dir})
	return b
}

// OrderBy adds a fully specified ORDER BY term (COLLATE, NUMERIC).
func (b *SelectBuilder) OrderBy(o surql.Order) *SelectBuilder {
	b.stmt.Order = append(b.stmt.Order, o)
	return b
}

// OrderRand orders randomly.
func (b *SelectBuilder) OrderRand() *SelectBuilder {
	b.stmt.Order = append(b.stmt.Order, surql.Order{Random: true})
	return b
}

// Limit sets LIMIT to an integer or a "$param".
func (b *SelectBuilder) Limit(n any) *SelectBuilder {
	v, err := toNumber(n)
	b.errs.add(err)
	b.stmt.Limit = v
	return b
}

// Start sets START to an integer or a "$param".
func (b *SelectBuilder) Start(n any) *SelectBuilder {
	v, err := toNumber(n)
	b.errs.add(err)
	b.stmt.Start = v
	return b
}

// Fetch adds FETCH idioms.
func (b *SelectBuilder) Fetch(idioms ...string) *SelectBuilder {
	b.stmt.Fetch = append(b.stmt.Fetch, toIdioms(idioms)...)
	return b
}

// Version reads the data as of a time.Time or a "$param".
func (b *SelectBuilder) Version(at any) *SelectBuilder {
	v, err := toVersion(at)
	b.errs.add(err)
	b.stmt.Version = v
	return b
}

// Timeout sets TIMEOUT.
func (b *SelectBuilder) Timeout(d time.Duration) *SelectBuilder {
	b.stmt.Timeout = d
	return b
}

// Only returns a single record instead of a list.
func (b *SelectBuilder) Only() *SelectBuilder {
	b.stmt.Only = true
	return b
}

// Parallel renders PARALLEL.
func (b *SelectBuilder) Parallel() *SelectBuilder {
	b.stmt.Parallel = true
	return b
}

// Tempfiles renders TEMPFILES.
func (b *SelectBuilder) Tempfiles() *SelectBuilder {
	b.stmt.Tempfiles = true
	return b
}

// Explain renders EXPLAIN.
func (b *SelectBuilder) Explain() *SelectBuilder {
	b.stmt.Explain = true
	return b
}

// ExplainFull renders EXPLAIN FULL.
func (b *SelectBuilder) ExplainFull() *SelectBuilder {
	b.stmt.ExplainFull = true
	return b
}

// Statement returns the statement AST.
func (b *SelectBuilder) Statement() surql.SelectStatement {
	return b.stmt
}

// SQL renders the statement.
func (b *SelectBuilder) SQL() string {
	return b.stmt.SQL()
}

// ToQuery returns the query, or the errors recorded along the chain.
func (b *SelectBuilder) ToQuery() (*Query, error) {
	if err := b.errs.join("select"); err != nil {
		return nil, err
	}
	return NewQuery(b.stmt), nil
}
