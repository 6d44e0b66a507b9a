package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/surrealkit/internal/cli"
	"github.com/pthm/surrealkit/internal/tablegen"
)

var (
	genTablesDir    string
	genTablesOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate code",
	Long:  `Generate Go code for surrealkit.`,
}

var generateTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Generate table.Table implementations",
	Long: `Generate TableName and TableFields methods for every struct annotated with
` + tablegen.Directive + ` in a package directory.`,
	Example: `  # Generate for the package in ./models
  surrealkit generate tables --dir ./models

  # Use a custom output file name
  surrealkit generate tables --dir ./models --output tables_gen.go

  # From go:generate
  //go:generate surrealkit generate tables --dir .`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve values: flags > config > defaults
		dir := resolveString(genTablesDir, cfg.Generate.Tables.Dir, ".")
		output := resolveString(genTablesOutput, cfg.Generate.Tables.Output, "surrealkit_tables.go")

		if _, err := os.Stat(dir); err != nil {
			return cli.ConfigError(fmt.Sprintf("directory not found: %s", dir), nil)
		}

		tables, err := tablegen.Run(tablegen.Config{Dir: dir, Output: output})
		if err != nil {
			return cli.GenerateError("generating tables", err)
		}

		if quiet {
			return nil
		}
		if len(tables) == 0 {
			fmt.Printf("No structs annotated with %s in %s\n", tablegen.Directive, dir)
			return nil
		}
		for _, t := range tables {
			fmt.Printf("  %s -> %s (%d fields)\n", t.TypeName, t.TableName, len(t.Fields))
		}
		fmt.Printf("Generated %s/%s\n", dir, output)
		return nil
	},
}

func init() {
	f := generateTablesCmd.Flags()
	f.StringVar(&genTablesDir, "dir", "", "package directory to scan (default: .)")
	f.StringVar(&genTablesOutput, "output", "", "generated file name (default: surrealkit_tables.go)")

	generateCmd.AddCommand(generateTablesCmd)
}
