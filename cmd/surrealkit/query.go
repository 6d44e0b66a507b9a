package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/pthm/surrealkit"
	"github.com/pthm/surrealkit/internal/cli"
	"github.com/pthm/surrealkit/pkg/qb"
	"github.com/pthm/surrealkit/pkg/value"
)

var (
	queryID     string
	queryFields []string
	queryWhere  []string
	queryAny    bool
	queryLimit  int
	queryDryRun bool
)

var queryCmd = &cobra.Command{
	Use:   "query <table>",
	Short: "Select records with the string query builder",
	Long: `Build a SELECT over a table or a single record and run it, printing the rows
as YAML.

Each --where takes "field<op>value" with op one of = != < <= > >=. Values
are parsed as JSON when possible (numbers, booleans, quoted strings) and
used as plain strings otherwise. Filters are joined with AND, or with OR
when --any is set.`,
	Example: `  # All adults, names only
  surrealkit query person --field name --where "age>=18"

  # One record
  surrealkit query person --id tobie

  # Print the statement and its variables without running it
  surrealkit query person --where "name=Tobie" --where "age<30" --any --limit 5 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := buildQuery(args[0], queryID, queryFields, queryWhere, queryAny, queryLimit)
		if err != nil {
			return cli.ConfigError("invalid query", err)
		}

		if queryDryRun {
			sql, vars, err := q.Build()
			if err != nil {
				return cli.GeneralError("building query", err)
			}
			return printYAML(map[string]any{"sql": sql, "vars": vars})
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		c, err := connect(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close(context.Background()) }()

		results, err := q.Execute(ctx, c)
		if err != nil {
			return cli.GeneralError("running query", err)
		}
		rows, err := surrealkit.Take[any](results, 0)
		if err != nil {
			return cli.GeneralError("decoding result", err)
		}
		return printYAML(rows)
	},
}

func init() {
	f := queryCmd.Flags()
	f.StringVar(&queryID, "id", "", "record id within the table")
	f.StringArrayVar(&queryFields, "field", nil, "field to select, repeatable (default: *)")
	f.StringArrayVar(&queryWhere, "where", nil, `filter "field<op>value", repeatable`)
	f.BoolVar(&queryAny, "any", false, "join filters with OR instead of AND")
	f.IntVar(&queryLimit, "limit", 0, "maximum number of rows (0: no limit)")
	f.BoolVar(&queryDryRun, "dry-run", false, "print the statement and variables as YAML without running it")
}

// buildQuery assembles the string query from command flags.
func buildQuery(tb, id string, fields, where []string, anyOf bool, limit int) (*qb.Query, error) {
	var idPtr *string
	if id != "" {
		idPtr = &id
	}
	q := qb.New().From(tb, idPtr)
	if len(fields) == 0 {
		fields = []string{"*"}
	}
	for _, f := range fields {
		q.Field(f)
	}

	if len(where) > 0 {
		logical := qb.And
		if anyOf {
			logical = qb.Or
		}
		filtering := q.Where()
		for i, expr := range where {
			key, rel, val, err := parseFilter(expr)
			if err != nil {
				return nil, err
			}
			if i == len(where)-1 {
				filtering.End(key, rel, val)
				break
			}
			_, filtering = filtering.Filter(key, rel, val, logical)
		}
	}

	if limit > 0 {
		q.Limit(limit)
	}
	return q, nil
}

// relationalOps is ordered so two-character operators match first.
var relationalOps = []qb.RelationalOperator{
	qb.LessThanOrEqual, qb.MoreThanOrEqual, qb.NotEqual,
	qb.Equal, qb.LessThan, qb.MoreThan,
}

// parseFilter splits "field<op>value".
func parseFilter(expr string) (string, qb.RelationalOperator, any, error) {
	best := -1
	var rel qb.RelationalOperator
	for _, op := range relationalOps {
		i := strings.Index(expr, string(op))
		if i < 0 {
			continue
		}
		if best < 0 || i < best || (i == best && len(op) > len(rel)) {
			best, rel = i, op
		}
	}
	if best < 0 {
		return "", "", nil, fmt.Errorf("filter %q has no operator", expr)
	}

	key := strings.TrimSpace(expr[:best])
	raw := strings.TrimSpace(expr[best+len(rel):])
	if key == "" {
		return "", "", nil, fmt.Errorf("filter %q has no field", expr)
	}

	var val any
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		val = raw
	}
	if f, ok := val.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		val = int64(f)
	}
	return key, rel, val, nil
}

func printYAML(v any) error {
	out, err := yaml.Marshal(value.Normalize(v))
	if err != nil {
		return cli.GeneralError("encoding output", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
