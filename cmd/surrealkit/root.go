package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/surrealkit/internal/cli"
	"github.com/pthm/surrealkit/internal/logging"
	"github.com/pthm/surrealkit/pkg/client"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logger     zerolog.Logger

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "surrealkit",
	Short: "SurrealDB toolkit for Go",
	Long: `surrealkit - SurrealDB toolkit for Go

surrealkit builds SurrealQL statements, maps Go structs to tables and
checks the health of a SurrealDB deployment.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		logCfg := cfg.LoggingConfig()
		switch {
		case quiet:
			logCfg.Level = "error"
		case verbose >= 2:
			logCfg.Level = "trace"
		case verbose == 1:
			logCfg.Level = "debug"
		}
		logging.Init(logCfg)
		logger = logging.Logger()

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupDatabase = "database"
	groupCode     = "code"
	groupUtility  = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover surrealkit.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupDatabase, Title: "Database:"},
		&cobra.Group{ID: groupCode, Title: "Code generation:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	// Database commands
	queryCmd.GroupID = groupDatabase
	doctorCmd.GroupID = groupDatabase
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(doctorCmd)

	// Code generation commands
	generateCmd.GroupID = groupCode
	rootCmd.AddCommand(generateCmd)

	// Utility commands
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// connect opens a client for the configured database.
func connect(ctx context.Context) (*client.Client, error) {
	c, err := client.Connect(ctx, cfg.ClientConfig(), client.WithLogger(logger))
	if err != nil {
		return nil, cli.DBConnectError("connecting to database", err)
	}
	return c, nil
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveBool returns true if any of the provided values is true.
// Used for boolean flags where any true value should win.
func resolveBool(values ...bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
