package builder

import (
	"time"

	"github.com/pthm/surrealkit/pkg/surql"
)

// CreateNoWhat is a CREATE without a target.
type CreateNoWhat struct {
	stmt surql.CreateStatement
	errs errList
}

// CreateNoData is a CREATE with a target. It already renders; CREATE
// without data makes an empty record.
type CreateNoData struct {
	stmt surql.CreateStatement
	errs errList
}

// CreateBuilder is a CREATE with data.
type CreateBuilder struct {
	stmt surql.CreateStatement
	errs errList
}

// Create starts a CREATE statement.
func Create() *CreateNoWhat {
	return &CreateNoWhat{}
}

// What sets the targets.
func (b *CreateNoWhat) What(targets ...any) *CreateNoData {
	for _, t := range targets {
		vs, err := toTargets(t)
		b.errs.add(err)
		b.stmt.What = append(b.stmt.What, vs...)
	}
	return &CreateNoData{stmt: b.stmt, errs: b.errs}
}

func (b *CreateNoData) next(d *surql.Data, err error) *CreateBuilder {
	b.errs.add(err)
	b.stmt.Data = d
	return &CreateBuilder{stmt: b.stmt, errs: b.errs}
}

// Set assigns fields with SET.
func (b *CreateNoData) Set(assigns ...Assignment) *CreateBuilder {
	return b.next(toSets(assigns))
}

// Unset removes fields with UNSET.
func (b *CreateNoData) Unset(idioms ...string) *CreateBuilder {
	return b.next(toUnset(idioms), nil)
}

// Content sets the whole record with CONTENT. v is JSON encoded unless it is
// a surql.Value or a "$param".
func (b *CreateNoData) Content(v any) *CreateBuilder {
	return b.next(toPayload(surql.DataContent, v))
}

// Data sets a prebuilt data clause.
func (b *CreateNoData) Data(d surql.Data) *CreateBuilder {
	return b.next(&d, nil)
}

// SQL renders the statement.
func (b *CreateNoData) SQL() string {
	return b.stmt.SQL()
}

// ToQuery returns the query, or the errors recorded along the chain.
func (b *CreateNoData) ToQuery() (*Query, error) {
	if err := b.errs.join("create"); err != nil {
		return nil, err
	}
	return NewQuery(b.stmt), nil
}

// Only returns a single record instead of a list.
func (b *CreateBuilder) Only() *CreateBuilder {
	b.stmt.Only = true
	return b
}

// Output sets the RETURN clause. With fields, the kind is ignored and the
// projection is returned.
func (b *CreateBuilder) Output(kind surql.OutputKind, fields ...any) *CreateBuilder {
	out, err := toOutput(kind, fields)
	b.errs.add(err)
	b.stmt.Output = out
	return b
}

// Timeout sets TIMEOUT.
func (b *CreateBuilder) Timeout(d time.Duration) *CreateBuilder {
	b.stmt.Timeout = d
	return b
}

// Parallel renders PARALLEL.
func (b *CreateBuilder) Parallel() *CreateBuilder {
	b.stmt.Parallel = true
	return b
}

// Statement returns the statement AST.
func (b *CreateBuilder) Statement() surql.CreateStatement {
	return b.stmt
}

// SQL renders the statement.
func (b *CreateBuilder) SQL() string {
	return b.stmt.SQL()
}

// ToQuery returns the query, or the errors recorded along the chain.
func (b *CreateBuilder) ToQuery() (*Query, error) {
	if err := b.errs.join("create"); err != nil {
		return nil, err
	}
	return NewQuery(b.stmt), nil
}
