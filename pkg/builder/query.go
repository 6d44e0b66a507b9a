// Package builder provides staged builders for SurrealQL statements.
//
// Each stage is its own type, so a statement can only be rendered once its
// required parts are set:
//
//	builder.Select()            // *SelectNoWhat
//	    .What("user")           // *SelectNoFields
//	    .Field("name")          // *SelectBuilder: ToQuery is available
//	    .Where(surql.Cmp("age", surql.OpMoreThan, "$age"))
//	    .Limit(10)
//
// Builders record conversion errors instead of failing mid-chain; ToQuery
// returns them joined.
package builder

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/pthm/surrealkit"
	"github.com/pthm/surrealkit/pkg/surql"
)

// Query is a rendered statement with its bound variables.
type Query struct {
	stmt surql.Statement
	vars map[string]any
}

// NewQuery wraps a statement.
func NewQuery(stmt surql.Statement) *Query {
	return &Query{stmt: stmt, vars: map[string]any{}}
}

// Bind binds $name to v. A leading $ in name is ignored.
func (q *Query) Bind(name string, v any) *Query {
	q.vars[surql.Param(name).Name()] = v
	return q
}

// BindAll binds every entry of vars.
func (q *Query) BindAll(vars map[string]any) *Query {
	for k, v := range vars {
		q.Bind(k, v)
	}
	return q
}

// Statement returns the statement AST.
func (q *Query) Statement() surql.Statement {
	return q.stmt
}

// SQL returns the statement text.
func (q *Query) SQL() string {
	return q.stmt.SQL()
}

// Vars returns a copy of the bound variables.
func (q *Query) Vars() map[string]any {
	return maps.Clone(q.vars)
}

// Run executes the statement. A statement rejected by the database is
// returned as a *surrealkit.StatementError alongside the results.
func (q *Query) Run(ctx context.Context, db surrealkit.Querier) ([]surrealkit.Result, error) {
	results, err := db.Query(ctx, q.SQL(), q.Vars())
	if err != nil {
		return nil, err
	}
	return results, surrealkit.CheckAll(results)
}

// errList collects conversion errors across a builder chain.
type errList []error

func (e *errList) add(err error) {
	if err != nil {
		*e = append(*e, err)
	}
}

func (e errList) join(kind string) error {
	if len(e) == 0 {
		return nil
	}
	return fmt.Errorf("build %s: %w", kind, errors.Join(e...))
}
