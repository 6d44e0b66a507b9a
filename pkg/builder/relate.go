package builder

import (
	"time"

	"github.com/pthm/surrealkit/pkg/surql"
)

// RelateNoRelation is a RELATE without its from->kind->with triple.
type RelateNoRelation struct {
	stmt surql.RelateStatement
	errs errList
}

// RelateBuilder is a complete RELATE.
type RelateBuilder struct {
	stmt surql.RelateStatement
	errs errList
}

// Relate starts a RELATE statement.
func Relate() *RelateNoRelation {
	return &RelateNoRelation{}
}

// Relation sets from->kind->with. from and with accept the same targets as
// SELECT; kind is the edge table.
func (b *RelateNoRelation) Relation(from any, kind string, with any) *RelateBuilder {
	var err error
	b.stmt.From, err = toTarget(from)
	b.errs.add(err)
	b.stmt.With, err = toTarget(with)
	b.errs.add(err)
	b.stmt.Kind, err = toTarget(kind)
	b.errs.add(err)
	return &RelateBuilder{stmt: b.stmt, errs: b.errs}
}

// Only returns a single edge instead of a list.
func (b *RelateBuilder) Only() *RelateBuilder {
	b.stmt.Only = true
	return b
}

// Unique renders UNIQUE, refusing duplicate edges.
func (b *RelateBuilder) Unique() *RelateBuilder {
	b.stmt.Uniq = true
	return b
}

// Set assigns edge fields with SET.
func (b *RelateBuilder) Set(assigns ...Assignment) *RelateBuilder {
	d, err := toSets(assigns)
	b.errs.add(err)
	b.stmt.Data = d
	return b
}

// Content sets the edge body with CONTENT.
func (b *RelateBuilder) Content(v any) *RelateBuilder {
	d, err := toPayload(surql.DataContent, v)
	b.errs.add(err)
	b.stmt.Data = d
	return b
}

// Output sets the RETURN clause.
func (b *RelateBuilder) Output(kind surql.OutputKind, fields ...any) *RelateBuilder {
	out, err := toOutput(kind, fields)
	b.errs.add(err)
	b.stmt.Output = out
	return b
}

// Timeout sets TIMEOUT.
func (b *RelateBuilder) Timeout(d time.Duration) *RelateBuilder {
	b.stmt.Timeout = d
	return b
}

// Parallel renders PARALLEL.
func (b *RelateBuilder) Parallel() *RelateBuilder {
	b.stmt.Parallel = true
	return b
}

// Statement returns the statement AST.
func (b *RelateBuilder) Statement() surql.RelateStatement {
	return b.stmt
}

// SQL renders the statement.
func (b *RelateBuilder) SQL() string {
	return b.stmt.SQL()
}

// ToQuery returns the query, or the errors recorded along the chain.
func (b *RelateBuilder) ToQuery() (*Query, error) {
	if err := b.errs.join("relate"); err != nil {
		return nil, err
	}
	return NewQuery(b.stmt), nil
}
