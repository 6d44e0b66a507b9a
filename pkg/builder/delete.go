package builder

import (
	"time"

	"github.com/pthm/surrealkit/pkg/surql"
)

// DeleteNoWhat is a DELETE without a target.
type DeleteNoWhat struct {
	stmt surql.DeleteStatement
	errs errList
}

// DeleteBuilder is a complete DELETE.
type DeleteBuilder struct {
	stmt surql.DeleteStatement
	errs errList
}

// Delete starts a DELETE statement.
func Delete() *DeleteNoWhat {
	return &DeleteNoWhat{}
}

// What sets the targets.
func (b *DeleteNoWhat) What(targets ...any) *DeleteBuilder {
	for _, t := range targets {
		vs, err := toTargets(t)
		b.errs.add(err)
		b.stmt.What = append(b.stmt.What, vs...)
	}
	return &DeleteBuilder{stmt: b.stmt, errs: b.errs}
}

// Where sets the condition; see SelectBuilder.Where for accepted tokens.
func (b *DeleteBuilder) Where(tokens ...any) *DeleteBuilder {
	cond, err := toCond(tokens)
	b.errs.add(err)
	b.stmt.Cond = cond
	return b
}

// Only deletes a single record.
func (b *DeleteBuilder) Only() *DeleteBuilder {
	b.stmt.Only = true
	return b
}

// Output sets the RETURN clause.
func (b *DeleteBuilder) Output(kind surql.OutputKind, fields ...any) *DeleteBuilder {
	out, err := toOutput(kind, fields)
	b.errs.add(err)
	b.stmt.Output = out
	return b
}

// Timeout sets TIMEOUT.
func (b *DeleteBuilder) Timeout(d time.Duration) *DeleteBuilder {
	b.stmt.Timeout = d
	return b
}

// Parallel renders PARALLEL.
func (b *DeleteBuilder) Parallel() *DeleteBuilder {
	b.stmt.Parallel = true
	return b
}

// Statement returns the statement AST.
func (b *DeleteBuilder) Statement() surql.DeleteStatement {
	return b.stmt
}

// SQL renders the statement.
func (b *DeleteBuilder) SQL() string {
	return b.stmt.SQL()
}

// ToQuery returns the query, or the errors recorded along the chain.
func (b *DeleteBuilder) ToQuery() (*Query, error) {
	if err := b.errs.join("delete"); err != nil {
		return nil, err
	}
	return NewQuery(b.stmt), nil
}
