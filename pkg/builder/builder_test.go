package builder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/pthm/surrealkit"
	"github.com/pthm/surrealkit/pkg/surql"
)

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		b    *SelectBuilder
		want string
	}{
		{
			name: "all fields",
			b:    Select().What("user").Field("*"),
			want: "SELECT * FROM user",
		},
		{
			name: "fields with alias and condition",
			b: Select().What("user").
				Field("name").
				Field([2]string{"address.city", "city"}).
				Where(surql.Cmp("age", surql.OpMoreThan, "$age")),
			want: "SELECT name, address.city AS city FROM user WHERE age > $age",
		},
		{
			name: "condition tokens",
			b: Select().What("test").Field(surql.AllField()).Where(
				surql.Cmp("name", surql.OpEqual, "$name"),
				surql.OpAnd,
				surql.Cmp("n", surql.OpMoreThan, "$n"),
			),
			want: "SELECT * FROM test WHERE name = $name AND n > $n",
		},
		{
			name: "record id target with only",
			b:    Select().What("user:tobie").Field("*").Only(),
			want: "SELECT * FROM ONLY user:tobie",
		},
		{
			name: "models record id target",
			b:    Select().What(models.RecordID{Table: "user", ID: 7}).Field("*"),
			want: "SELECT * FROM user:7",
		},
		{
			name: "every optional clause",
			b: Select().What("user").Fields("name", "age").
				Omit("password").
				WithIndex("idx_age").
				Where("active").
				Split("emails").
				Group("country").
				Order("age", surql.Desc).
				Limit(10).
				Start("$offset").
				Fetch("friends").
				Version(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
				Timeout(2 * time.Second).
				Parallel().
				Tempfiles().
				Explain(),
			want: "SELECT name, age OMIT password FROM user WITH INDEX idx_age WHERE active SPLIT ON emails " +
				"GROUP BY country ORDER BY age DESC LIMIT 10 START $offset FETCH friends " +
				"VERSION d'2024-01-01T00:00:00Z' TIMEOUT 2s PARALLEL TEMPFILES EXPLAIN",
		},
		{
			name: "group all with noindex and random order",
			b:    Select().What("user").Field("country").WithNoIndex().GroupAll().OrderRand().ExplainFull(),
			want: "SELECT country FROM user WITH NOINDEX GROUP ALL ORDER BY rand() EXPLAIN FULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.b.ToQuery()
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.SQL())
		})
	}
}

func TestSelect_CollectsErrors(t *testing.T) {
	_, err := Select().What("user").Field(42).Limit("ten").Where("a", surql.OpAnd).ToQuery()
	require.Error(t, err)
	assert.ErrorIs(t, err, surql.ErrUnsupportedValue)
	assert.ErrorIs(t, err, surql.ErrMalformedCondition)

	_, err = Select().What("user").Field("*").WithIndex().ToQuery()
	assert.ErrorIs(t, err, surql.ErrNoIndexNames)
}

func TestCreate(t *testing.T) {
	q, err := Create().What("person").Content(person{Name: "tobie", Age: 30}).
		Only().
		Output(surql.OutputAfter).
		Timeout(time.Second).
		Parallel().
		ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "CREATE ONLY person CONTENT { age: 30, name: 'tobie' } RETURN AFTER TIMEOUT 1s PARALLEL", q.SQL())

	q, err = Create().What("person:tobie").Set(Eq("name", surql.Param("name")), Assign("visits", surql.OpInc, 1)).ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "CREATE person:tobie SET name = $name, visits += 1", q.SQL())

	q, err = Create().What("person").ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "CREATE person", q.SQL())

	q, err = Create().What("person").Unset("tmp").Output(surql.OutputNone, "id", "name").ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "CREATE person UNSET tmp RETURN id, name", q.SQL())
}

func TestCreate_ContentParam(t *testing.T) {
	q, err := Create().What("person").Content("$data").ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "CREATE person CONTENT $data", q.SQL())

	_, err = Create().What("person").Content("not a param").ToQuery()
	require.Error(t, err)
}

func TestUpdate(t *testing.T) {
	q, err := Update().What("person").Merge(map[string]any{"active": true}).
		Where(surql.Cmp("age", surql.OpLessThan, 18)).
		Output(surql.OutputDiff).
		ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE person MERGE { active: true } WHERE age < 18 RETURN DIFF", q.SQL())

	q, err = Update().What("person:tobie").Set(Eq("name", "Tobie")).Only().Parallel().ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE ONLY person:tobie SET name = 'Tobie' PARALLEL", q.SQL())

	q, err = Update().What("person").Unset("tmp", "cache.value").Timeout(time.Minute).ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE person UNSET tmp, cache.value TIMEOUT 1m", q.SQL())

	q, err = Update().What("person:1").Patch([]map[string]any{{"op": "remove", "path": "/tmp"}}).ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE person:1 PATCH [{ op: 'remove', path: '/tmp' }]", q.SQL())

	q, err = Update().What("person:1").Replace(person{Name: "x"}).Where("$cond").Only().ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE ONLY person:1 REPLACE { age: 0, name: 'x' } WHERE $cond", q.SQL())
}

func TestRelate(t *testing.T) {
	q, err := Relate().Relation("person:tobie", "wrote", "article:surreal").
		Set(Eq("time.written", surql.Raw("time::now()"))).
		Output(surql.OutputNone).
		ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "RELATE person:tobie->wrote->article:surreal SET time.written = time::now() RETURN NONE", q.SQL())

	q, err = Relate().Relation("$from", "likes", models.RecordID{Table: "post", ID: "p1"}).
		Only().
		Unique().
		Content(map[string]any{"weight": 2}).
		ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "RELATE ONLY $from->likes->post:p1 UNIQUE CONTENT { weight: 2 }", q.SQL())
}

func TestRelate_InvalidTarget(t *testing.T) {
	_, err := Relate().Relation(3.5, "likes", "post:1").ToQuery()
	require.Error(t, err)
	assert.ErrorIs(t, err, surql.ErrUnsupportedValue)
}

func TestDelete(t *testing.T) {
	q, err := Delete().What("person").Where(surql.Cmp("age", surql.OpLessThan, "$min")).Output(surql.OutputBefore).ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "DELETE person WHERE age < $min RETURN BEFORE", q.SQL())

	q, err = Delete().What("person:tobie").Only().ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "DELETE ONLY person:tobie", q.SQL())
}

func TestQuery_BindAndRun(t *testing.T) {
	var gotSQL string
	var gotVars map[string]any
	db := surrealkit.QuerierFunc(func(_ context.Context, sql string, vars map[string]any) ([]surrealkit.Result, error) {
		gotSQL, gotVars = sql, vars
		return []surrealkit.Result{{Status: "OK", Result: []any{map[string]any{"name": "tobie", "age": 30}}}}, nil
	})

	q, err := Select().What("person").Field("*").Where(surql.Cmp("age", surql.OpMoreThan, "$age")).ToQuery()
	require.NoError(t, err)

	results, err := q.Bind("$age", 18).BindAll(map[string]any{"unused": true}).Run(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM person WHERE age > $age", gotSQL)
	assert.Equal(t, map[string]any{"age": 18, "unused": true}, gotVars)

	people, err := surrealkit.Take[[]person](results, 0)
	require.NoError(t, err)
	assert.Equal(t, []person{{Name: "tobie", Age: 30}}, people)

	vars := q.Vars()
	vars["age"] = 99
	assert.Equal(t, 18, q.Vars()["age"], "Vars should return a copy")
}

func TestQuery_RunErrors(t *testing.T) {
	transport := errors.New("connection reset")
	failing := surrealkit.QuerierFunc(func(context.Context, string, map[string]any) ([]surrealkit.Result, error) {
		return nil, transport
	})
	rejected := surrealkit.QuerierFunc(func(context.Context, string, map[string]any) ([]surrealkit.Result, error) {
		return []surrealkit.Result{{Status: "ERR", Error: "table not found"}}, nil
	})

	q, err := Delete().What("person").ToQuery()
	require.NoError(t, err)

	_, err = q.Run(context.Background(), failing)
	assert.ErrorIs(t, err, transport)

	results, err := q.Run(context.Background(), rejected)
	assert.Len(t, results, 1)
	assert.True(t, surrealkit.IsStatementErr(err))

	var stmtErr *surrealkit.StatementError
	require.ErrorAs(t, err, &stmtErr)
	assert.Equal(t, "table not found", stmtErr.Message)
}
