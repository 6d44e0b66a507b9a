package surrealkit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/surrealkit"
)

type person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestResult(t *testing.T) {
	assert.True(t, surrealkit.Result{Status: "OK"}.OK())
	assert.True(t, surrealkit.Result{Status: "ok"}.OK())
	assert.NoError(t, surrealkit.Result{Status: "OK"}.Err(0))

	err := surrealkit.Result{Status: "ERR", Error: "bad"}.Err(2)
	var se *surrealkit.StatementError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Index)
	assert.Equal(t, "bad", se.Message)

	// Some servers put the message in the result.
	err = surrealkit.Result{Status: "ERR", Result: "from result"}.Err(0)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "from result", se.Message)
}

func TestTake(t *testing.T) {
	results := []surrealkit.Result{
		{Status: "OK", Result: []any{
			map[string]any{"id": "person:tobie", "name": "Tobie"},
			map[string]any{"id": "person:jaime", "name": "Jaime"},
		}},
		{Status: "ERR", Error: "boom"},
	}

	people, err := surrealkit.Take[[]person](results, 0)
	require.NoError(t, err)
	assert.Equal(t, []person{{"person:tobie", "Tobie"}, {"person:jaime", "Jaime"}}, people)

	_, err = surrealkit.Take[[]person](results, 1)
	assert.True(t, surrealkit.IsStatementErr(err))

	_, err = surrealkit.Take[[]person](results, 2)
	assert.True(t, surrealkit.IsNoResultErr(err))

	_, err = surrealkit.Take[[]person](results, -1)
	assert.True(t, surrealkit.IsNoResultErr(err))
}

func TestTakeOne(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   person
		wantOK bool
	}{
		{
			name:   "list",
			result: []any{map[string]any{"id": "person:tobie", "name": "Tobie"}},
			want:   person{"person:tobie", "Tobie"},
			wantOK: true,
		},
		{
			name:   "single object",
			result: map[string]any{"id": "person:tobie", "name": "Tobie"},
			want:   person{"person:tobie", "Tobie"},
			wantOK: true,
		},
		{name: "empty list", result: []any{}},
		{name: "none", result: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := surrealkit.TakeOne[person]([]surrealkit.Result{{Status: "OK", Result: tt.result}}, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckAll(t *testing.T) {
	assert.NoError(t, surrealkit.CheckAll(nil))
	assert.NoError(t, surrealkit.CheckAll([]surrealkit.Result{{Status: "OK"}, {Status: "OK"}}))

	err := surrealkit.CheckAll([]surrealkit.Result{
		{Status: "OK"},
		{Status: "ERR", Error: "first"},
		{Status: "ERR", Error: "second"},
	})
	var se *surrealkit.StatementError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Index)
	assert.Equal(t, "first", se.Message)
}

func TestQuerierFunc(t *testing.T) {
	var gotSQL string
	var q surrealkit.Querier = surrealkit.QuerierFunc(func(_ context.Context, sql string, _ map[string]any) ([]surrealkit.Result, error) {
		gotSQL = sql
		return []surrealkit.Result{{Status: "OK", Result: true}}, nil
	})
	results, err := q.Query(context.Background(), "RETURN true", nil)
	require.NoError(t, err)
	assert.Equal(t, "RETURN true", gotSQL)
	assert.Len(t, results, 1)
}
