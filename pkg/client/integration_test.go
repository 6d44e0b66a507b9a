package client_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pthm/surrealkit"
	"github.com/pthm/surrealkit/pkg/builder"
	"github.com/pthm/surrealkit/pkg/client"
	"github.com/pthm/surrealkit/pkg/qb"
	"github.com/pthm/surrealkit/pkg/surql"
	"github.com/pthm/surrealkit/pkg/table"
)

type person struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (person) TableName() string { return "person" }

// startSurrealDB runs an in-memory SurrealDB and returns its RPC URL.
func startSurrealDB(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v2.3.7",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--user", "root", "--pass", "root", "memory"},
			WaitingFor:   wait.ForListeningPort("8000/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8000/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("ws://%s:%s/rpc", host, port.Port())
}

func TestIntegration(t *testing.T) {
	url := startSurrealDB(t)
	ctx := context.Background()

	cfg := client.DefaultConfig()
	cfg.URL = url
	cfg.Username, cfg.Password = "root", "root"
	cfg.Namespace, cfg.Database = "surrealkit", "integration"

	c, err := client.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	require.NoError(t, c.Ping(ctx))

	t.Run("repository", func(t *testing.T) {
		repo, err := table.NewRepo[person](c, table.WithCache(table.NewCache()))
		require.NoError(t, err)

		created, err := repo.CreateWithID(ctx, "tobie", person{Name: "Tobie", Age: 30})
		require.NoError(t, err)
		assert.Equal(t, "person:tobie", created.ID)

		_, err = repo.Create(ctx, person{Name: "Jaime", Age: 25})
		require.NoError(t, err)

		all, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		created.Age = 31
		updated, found, err := repo.Update(ctx, created)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 31, updated.Age)

		got, found, err := repo.Get(ctx, "person:tobie")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 31, got.Age)

		_, found, err = repo.Delete(ctx, "tobie")
		require.NoError(t, err)
		assert.True(t, found)

		_, found, err = repo.Get(ctx, "tobie")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("builders", func(t *testing.T) {
		q, err := builder.Create().What("person:ada").
			Set(builder.Eq("name", "Ada"), builder.Eq("age", 36)).
			ToQuery()
		require.NoError(t, err)
		_, err = q.Run(ctx, c)
		require.NoError(t, err)

		q, err = builder.Select().What("person").Field("name").
			Where(surql.Cmp("age", surql.OpMoreThan, "$min")).
			ToQuery()
		require.NoError(t, err)
		results, err := q.Bind("min", 35).Run(ctx, c)
		require.NoError(t, err)

		rows, err := surrealkit.Take[[]map[string]any](results, 0)
		require.NoError(t, err)
		assert.Equal(t, []map[string]any{{"name": "Ada"}}, rows)
	})

	t.Run("string query builder", func(t *testing.T) {
		results, err := qb.New().From("person", nil).Field("name").
			Where().
			End("age", qb.MoreThanOrEqual, 30).
			Execute(ctx, c)
		require.NoError(t, err)

		rows, err := surrealkit.Take[[]map[string]any](results, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("statement error", func(t *testing.T) {
		results, err := c.Query(ctx, "THROW 'boom'", nil)
		require.NoError(t, err)
		assert.True(t, surrealkit.IsStatementErr(surrealkit.CheckAll(results)))
	})
}
