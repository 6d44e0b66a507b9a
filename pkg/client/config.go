package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the connection settings.
type Config struct {
	// URL is the RPC endpoint, e.g. ws://localhost:8000/rpc.
	URL       string `mapstructure:"url" validate:"required,url"`
	Namespace string `mapstructure:"namespace" validate:"required"`
	Database  string `mapstructure:"database" validate:"required"`

	// Username and Password sign in as a root user. Both empty skips
	// sign-in.
	Username string `mapstructure:"username" validate:"required_with=Password"`
	Password string `mapstructure:"password" validate:"required_with=Username"`

	// QueryTimeout bounds each Query call when the caller's context has no
	// deadline. 0 means no bound.
	QueryTimeout time.Duration `mapstructure:"query_timeout" validate:"gte=0"`

	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig tunes the circuit breaker around queries.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive transport failures that
	// opens the breaker. 0 disables the breaker.
	MaxFailures uint32 `mapstructure:"max_failures"`

	// Timeout is how long the breaker stays open before letting a trial
	// through.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32 `mapstructure:"max_requests"`
}

// DefaultConfig returns a configuration for a local server.
func DefaultConfig() Config {
	return Config{
		URL:          "ws://localhost:8000/rpc",
		Namespace:    "test",
		Database:     "test",
		QueryTimeout: 30 * time.Second,
		Breaker: BreakerConfig{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
			MaxRequests: 1,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration and reports every invalid field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid client config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid client config: %s", strings.Join(msgs, "; "))
}
