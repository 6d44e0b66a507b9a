package builder

import (
	"time"

	"github.com/pthm/surrealkit/pkg/surql"
)

// UpdateNoWhat is an UPDATE without a target.
type UpdateNoWhat struct {
	stmt surql.UpdateStatement
	errs errList
}

// UpdateNoData is an UPDATE with a target but no data.
type UpdateNoData struct {
	stmt surql.UpdateStatement
	errs errList
}

// UpdateBuilder is an UPDATE with data and no condition.
type UpdateBuilder struct {
	stmt surql.UpdateStatement
	errs errList
}

// UpdateCondBuilder is an UPDATE with data and a condition.
type UpdateCondBuilder struct {
	stmt surql.UpdateStatement
	errs errList
}

// Update starts an UPDATE statement.
func Update() *UpdateNoWhat {
	return &UpdateNoWhat{}
}

// What sets the targets.
func (b *UpdateNoWhat) What(targets ...any) *UpdateNoData {
	for _, t := range targets {
		vs, err := toTargets(t)
		b.errs.add(err)
		b.stmt.What = append(b.stmt.What, vs...)
	}
	return &UpdateNoData{stmt: b.stmt, errs: b.errs}
}

func (b *UpdateNoData) next(d *surql.Data, err error) *UpdateBuilder {
	b.errs.add(err)
	b.stmt.Data = d
	return &UpdateBuilder{stmt: b.stmt, errs: b.errs}
}

// Set assigns fields with SET.
func (b *UpdateNoData) Set(assigns ...Assignment) *UpdateBuilder {
	return b.next(toSets(assigns))
}

// Unset removes fields with UNSET.
func (b *UpdateNoData) Unset(idioms ...string) *UpdateBuilder {
	return b.next(toUnset(idioms), nil)
}

// Content replaces the record body with CONTENT.
func (b *UpdateNoData) Content(v any) *UpdateBuilder {
	return b.next(toPayload(surql.DataContent, v))
}

// Merge merges v into the record with MERGE.
func (b *UpdateNoData) Merge(v any) *UpdateBuilder {
	return b.next(toPayload(surql.DataMerge, v))
}

// Patch applies a JSON Patch document with PATCH.
func (b *UpdateNoData) Patch(v any) *UpdateBuilder {
	return b.next(toPayload(surql.DataPatch, v))
}

// Replace replaces the record with REPLACE.
func (b *UpdateNoData) Replace(v any) *UpdateBuilder {
	return b.next(toPayload(surql.DataReplace, v))
}

// Data sets a prebuilt data clause.
func (b *UpdateNoData) Data(d surql.Data) *UpdateBuilder {
	return b.next(&d, nil)
}

// Where sets the condition; see SelectBuilder.Where for accepted tokens.
func (b *UpdateBuilder) Where(tokens ...any) *UpdateCondBuilder {
	cond, err := toCond(tokens)
	b.errs.add(err)
	b.stmt.Cond = cond
	return &UpdateCondBuilder{stmt: b.stmt, errs: b.errs}
}

// Only returns a single record instead of a list.
func (b *UpdateBuilder) Only() *UpdateBuilder {
	b.stmt.Only = true
	return b
}

// Output sets the RETURN clause.
func (b *UpdateBuilder) Output(kind surql.OutputKind, fields ...any) *UpdateBuilder {
	out, err := toOutput(kind, fields)
	b.errs.add(err)
	b.stmt.Output = out
	return b
}

// Timeout sets TIMEOUT.
func (b *UpdateBuilder) Timeout(d time.Duration) *UpdateBuilder {
	b.stmt.Timeout = d
	return b
}

// Parallel renders PARALLEL.
func (b *UpdateBuilder) Parallel() *UpdateBuilder {
	b.stmt.Parallel = true
	return b
}

// Statement returns the statement AST.
func (b *UpdateBuilder) Statement() surql.UpdateStatement {
	return b.stmt
}

// SQL renders the statement.
func (b *UpdateBuilder) SQL() string {
	return b.stmt.SQL()
}

// ToQuery returns the query, or the errors recorded along the chain.
func (b *UpdateBuilder) ToQuery() (*Query, error) {
	if err := b.errs.join("update"); err != nil {
		return nil, err
	}
	return NewQuery(b.stmt), nil
}

// Only returns a single record instead of a list.
func (b *UpdateCondBuilder) Only() *UpdateCondBuilder {
	b.stmt.Only = true
	return b
}

// Output sets the RETURN clause.
func (b *UpdateCondBuilder) Output(kind surql.OutputKind, fields ...any) *UpdateCondBuilder {
	out, err := toOutput(kind, fields)
	b.errs.add(err)
	b.stmt.Output = out
	return b
}

// Timeout sets TIMEOUT.
func (b *UpdateCondBuilder) Timeout(d time.Duration) *UpdateCondBuilder {
	b.stmt.Timeout = d
	return b
}

// Parallel renders PARALLEL.
func (b *UpdateCondBuilder) Parallel() *UpdateCondBuilder {
	b.stmt.Parallel = true
	return b
}

// Statement returns the statement AST.
func (b *UpdateCondBuilder) Statement() surql.UpdateStatement {
	return b.stmt
}

// SQL renders the statement.
func (b *UpdateCondBuilder) SQL() string {
	return b.stmt.SQL()
}

// ToQuery returns the query, or the errors recorded along the chain.
func (b *UpdateCondBuilder) ToQuery() (*Query, error) {
	if err := b.errs.join("update"); err != nil {
		return nil, err
	}
	return NewQuery(b.stmt), nil
}
