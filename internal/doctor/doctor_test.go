package doctor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/surrealkit"
	"github.com/pthm/surrealkit/pkg/client"
	"github.com/pthm/surrealkit/pkg/table"
)

func fakeDB(info any, infoErr string) surrealkit.QuerierFunc {
	return func(_ context.Context, sql string, _ map[string]any) ([]surrealkit.Result, error) {
		switch sql {
		case "RETURN true":
			return []surrealkit.Result{{Status: "OK", Result: true}}, nil
		case "INFO FOR DB":
			if infoErr != "" {
				return []surrealkit.Result{{Status: "ERR", Error: infoErr}}, nil
			}
			return []surrealkit.Result{{Status: "OK", Result: info}}, nil
		}
		return nil, errors.New("unexpected statement " + sql)
	}
}

func TestRun_Healthy(t *testing.T) {
	cfg := client.DefaultConfig()
	cfg.Username, cfg.Password = "root", "root"

	db := fakeDB(map[string]any{
		"tables": map[string]any{"person": "DEFINE TABLE person TYPE NORMAL SCHEMALESS"},
	}, "")
	d := New(db,
		WithConfig(cfg),
		WithTables(
			table.Meta{Name: "person", Fields: []string{"id", "name"}},
			table.Meta{Name: "post"},
			table.Meta{Name: "1bad"},
		),
	)

	report, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Passed)
	assert.Equal(t, 1, report.Warnings)
	assert.Equal(t, 1, report.Errors)
	assert.True(t, report.HasErrors())

	byName := map[string]CheckResult{}
	for _, c := range report.Checks {
		byName[c.Name] = c
	}
	assert.Equal(t, StatusPass, byName["person"].Status)
	assert.Equal(t, StatusWarn, byName["post"].Status)
	assert.Equal(t, StatusFail, byName["1bad"].Status)
}

func TestRun_InvalidConfigStops(t *testing.T) {
	d := New(fakeDB(nil, ""), WithConfig(client.Config{}))

	report, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, StatusFail, report.Checks[0].Status)
	assert.Equal(t, "Configuration", report.Checks[0].Category)
}

func TestRun_Unreachable(t *testing.T) {
	db := surrealkit.QuerierFunc(func(context.Context, string, map[string]any) ([]surrealkit.Result, error) {
		return nil, errors.New("connection refused")
	})
	report, err := New(db).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, "reachable", report.Checks[0].Name)
	assert.Equal(t, StatusFail, report.Checks[0].Status)
	assert.Contains(t, report.Checks[0].Details, "connection refused")
}

func TestRun_InfoDenied(t *testing.T) {
	report, err := New(fakeDB(nil, "not enough permissions")).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Errors)
}

func TestRun_NoCredentialsWarns(t *testing.T) {
	report, err := New(nil, WithConfig(client.DefaultConfig())).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Warnings)
}

func TestReport_Print(t *testing.T) {
	r := &Report{}
	r.AddCheck(CheckResult{Category: "Connection", Name: "reachable", Status: StatusPass, Message: "Database is reachable"})
	r.AddCheck(CheckResult{
		Category: "Tables",
		Name:     "post",
		Status:   StatusWarn,
		Message:  "Table post is not defined",
		Details:  "line one\nline two",
		FixHint:  "define it",
	})

	var quiet, verbose bytes.Buffer
	r.Print(&quiet, false)
	r.Print(&verbose, true)

	assert.Contains(t, quiet.String(), "✓ Database is reachable")
	assert.Contains(t, quiet.String(), "⚠ Table post is not defined")
	assert.Contains(t, quiet.String(), "Fix: define it")
	assert.NotContains(t, quiet.String(), "line one")
	assert.Contains(t, verbose.String(), "      line two")
	assert.Contains(t, quiet.String(), "Summary: 1 passed, 1 warnings, 0 errors")
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, "⚠", StatusWarn.Symbol())
	assert.Equal(t, "?", Status(9).Symbol())
}
