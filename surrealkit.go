package surrealkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/pthm/surrealkit/pkg/value"
)

// Querier executes SurrealQL against a database.
// Implemented by *client.Client; tests substitute a fake.
//
// sql may contain several statements separated by ';'. vars are bound as
// $name parameters. One Result is returned per statement, in order; a
// statement the database rejected is reported through Result.Err rather
// than the returned error, which is reserved for transport failures.
type Querier interface {
	Query(ctx context.Context, sql string, vars map[string]any) ([]Result, error)
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(ctx context.Context, sql string, vars map[string]any) ([]Result, error)

// Query calls f.
func (f QuerierFunc) Query(ctx context.Context, sql string, vars map[string]any) ([]Result, error) {
	return f(ctx, sql, vars)
}

// Result is the outcome of one statement.
type Result struct {
	Status string
	Time   string
	Result any
	Error  string
}

// OK reports whether the statement succeeded.
func (r Result) OK() bool {
	return strings.EqualFold(r.Status, "OK")
}

// Err returns a *StatementError when the statement failed.
func (r Result) Err(index int) error {
	if r.OK() {
		return nil
	}
	msg := r.Error
	if msg == "" && r.Result != nil {
		msg = fmt.Sprint(r.Result)
	}
	return &StatementError{Index: index, Status: r.Status, Message: msg}
}

// Take decodes the result of statement i into T.
func Take[T any](results []Result, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(results) {
		return zero, fmt.Errorf("%w: index %d of %d", ErrNoResult, i, len(results))
	}
	if err := results[i].Err(i); err != nil {
		return zero, err
	}
	out, err := value.Decode[T](results[i].Result)
	if err != nil {
		return zero, fmt.Errorf("decode statement %d: %w", i, err)
	}
	return out, nil
}

// TakeOne decodes the first row of statement i. Statements using ONLY
// return a single object rather than a list; both forms are accepted.
// ok is false when the statement returned no rows.
func TakeOne[T any](results []Result, i int) (out T, ok bool, err error) {
	if i < 0 || i >= len(results) {
		return out, false, fmt.Errorf("%w: index %d of %d", ErrNoResult, i, len(results))
	}
	if err := results[i].Err(i); err != nil {
		return out, false, err
	}
	raw := results[i].Result
	if list, isList := raw.([]any); isList {
		if len(list) == 0 {
			return out, false, nil
		}
		raw = list[0]
	}
	if raw == nil {
		return out, false, nil
	}
	out, err = value.Decode[T](raw)
	if err != nil {
		return out, false, fmt.Errorf("decode statement %d: %w", i, err)
	}
	return out, true, nil
}

// CheckAll returns the first statement error among results.
func CheckAll(results []Result) error {
	for i, r := range results {
		if err := r.Err(i); err != nil {
			return err
		}
	}
	return nil
}
