package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/surrealkit/internal/cli"
	"github.com/pthm/surrealkit/internal/doctor"
	"github.com/pthm/surrealkit/internal/tablegen"
	"github.com/pthm/surrealkit/pkg/table"
)

var (
	doctorTablesDir string
	doctorVerbose   bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks",
	Long: `Run health checks on the configured SurrealDB database.

With --tables-dir, the structs annotated for table generation in that
directory are checked against the tables defined in the database.`,
	Example: `  # Run health checks
  surrealkit doctor

  # Check the tables of a models package
  surrealkit doctor --tables-dir ./models --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verboseFlag := resolveBool(doctorVerbose, cfg.Doctor.Verbose, verbose > 0)

		var metas []table.Meta
		if doctorTablesDir != "" {
			_, tables, err := tablegen.Scan(doctorTablesDir, "")
			if err != nil {
				return cli.GenerateError("scanning tables", err)
			}
			for _, t := range tables {
				metas = append(metas, table.Meta{Name: t.TableName, Fields: t.Fields})
			}
		}

		return runDoctor(cmd.Context(), metas, verboseFlag)
	},
}

func init() {
	f := doctorCmd.Flags()
	f.StringVar(&doctorTablesDir, "tables-dir", "", "package directory with annotated structs")
	f.BoolVar(&doctorVerbose, "verbose", false, "show detailed output")
}

func runDoctor(ctx context.Context, metas []table.Meta, verboseFlag bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	clientCfg := cfg.ClientConfig()

	if !quiet {
		fmt.Println("surrealkit doctor - Health Check")
	}

	opts := []doctor.Option{doctor.WithConfig(clientCfg), doctor.WithTables(metas...)}

	var d *doctor.Doctor
	if err := clientCfg.Validate(); err != nil {
		d = doctor.New(nil, opts...)
	} else {
		c, err := connect(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close(context.Background()) }()
		d = doctor.New(c, opts...)
	}

	report, err := d.Run(ctx)
	if err != nil {
		return cli.GeneralError("running doctor", err)
	}

	report.Print(os.Stdout, verboseFlag)

	if report.HasErrors() {
		return cli.GeneralError("health checks failed", nil)
	}

	return nil
}
