package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pthm/surrealkit/internal/logging"
	"github.com/pthm/surrealkit/pkg/client"
)

const (
	maxWalkDepth = 25
)

// Config represents the surrealkit configuration from surrealkit.yaml.
type Config struct {
	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Logging configuration
	Log LogConfig `mapstructure:"log"`

	// Per-command configuration
	Generate GenerateConfig `mapstructure:"generate"`
	Doctor   DoctorConfig   `mapstructure:"doctor"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	URL          string        `mapstructure:"url"`
	Namespace    string        `mapstructure:"namespace"`
	Database     string        `mapstructure:"database"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	Breaker      BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig holds circuit breaker settings.
type BreakerConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRequests uint32        `mapstructure:"max_requests"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GenerateConfig holds code generation settings.
type GenerateConfig struct {
	Tables TablesConfig `mapstructure:"tables"`
}

// TablesConfig holds table code generation settings.
type TablesConfig struct {
	Dir    string `mapstructure:"dir"`
	Output string `mapstructure:"output"`
}

// DoctorConfig holds doctor command settings.
type DoctorConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	// 1. Set defaults first (lowest precedence)
	setDefaults(v)

	// 2. Set up environment variable binding
	v.SetEnvPrefix("SURREALKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Find and load config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	def := client.DefaultConfig()

	// Database defaults
	v.SetDefault("database.url", def.URL)
	v.SetDefault("database.namespace", def.Namespace)
	v.SetDefault("database.database", def.Database)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.query_timeout", def.QueryTimeout)
	v.SetDefault("database.breaker.max_failures", def.Breaker.MaxFailures)
	v.SetDefault("database.breaker.timeout", def.Breaker.Timeout)
	v.SetDefault("database.breaker.max_requests", def.Breaker.MaxRequests)

	// Log defaults
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Generate tables defaults
	v.SetDefault("generate.tables.dir", ".")
	v.SetDefault("generate.tables.output", "surrealkit_tables.go")

	// Doctor defaults
	v.SetDefault("doctor.verbose", false)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for surrealkit.yaml or
// surrealkit.yml, stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	// Auto-discovery: walk up to .git or maxWalkDepth
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"surrealkit.yaml", "surrealkit.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break // Stop at repo root
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		dir = parent
	}

	return "", nil // No config found, use defaults
}

// ClientConfig returns the client settings for the configured database.
func (c *Config) ClientConfig() client.Config {
	db := c.Database
	return client.Config{
		URL:          db.URL,
		Namespace:    db.Namespace,
		Database:     db.Database,
		Username:     db.Username,
		Password:     db.Password,
		QueryTimeout: db.QueryTimeout,
		Breaker: client.BreakerConfig{
			MaxFailures: db.Breaker.MaxFailures,
			Timeout:     db.Breaker.Timeout,
			MaxRequests: db.Breaker.MaxRequests,
		},
	}
}

// LoggingConfig returns the logger settings.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log.Level != "" {
		cfg.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		cfg.Format = c.Log.Format
	}
	return cfg
}

// Redacted returns a copy safe to print, with the password masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.Database.Password != "" {
		out.Database.Password = "****"
	}
	return out
}
