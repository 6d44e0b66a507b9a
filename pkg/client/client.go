// Package client wraps the SurrealDB Go driver as a surrealkit.Querier.
//
// Queries run behind a circuit breaker and are timed into Prometheus
// metrics and traced with zerolog:
//
//	c, err := client.Connect(ctx, client.Config{
//		URL:       "ws://localhost:8000/rpc",
//		Namespace: "app",
//		Database:  "app",
//		Username:  "root",
//		Password:  "root",
//	})
//	if err != nil {
//		return err
//	}
//	defer c.Close(ctx)
//
//	people, err := table.NewRepo[Person](c)
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/pthm/surrealkit"
)

// ErrUnavailable is returned while the circuit breaker is open or
// saturated. It wraps the breaker's own error.
var ErrUnavailable = errors.New("client: database unavailable")

// IsUnavailableErr returns true if err is or wraps ErrUnavailable.
func IsUnavailableErr(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

type execFunc func(ctx context.Context, sql string, vars map[string]any) ([]surrealkit.Result, error)

// Client is a connected database handle. It is safe for concurrent use.
type Client struct {
	db      *surrealdb.DB
	exec    execFunc
	cb      *gobreaker.CircuitBreaker[[]surrealkit.Result]
	timeout time.Duration
	name    string
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for query tracing and breaker transitions.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithName labels the breaker and its metrics. Default "surrealdb".
func WithName(name string) Option {
	return func(c *Client) {
		c.name = name
	}
}

// Connect opens a connection, signs in when credentials are set and selects
// the namespace and database.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URL, err)
	}

	if cfg.Username != "" {
		if _, err := db.SignIn(ctx, &surrealdb.Auth{Username: cfg.Username, Password: cfg.Password}); err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("sign in as %s: %w", cfg.Username, err)
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}

	c := newClient(cfg, driverExec(db), opts...)
	c.db = db
	c.log.Debug().Str("url", cfg.URL).Str("namespace", cfg.Namespace).Str("database", cfg.Database).Msg("connected")
	return c, nil
}

func newClient(cfg Config, exec execFunc, opts ...Option) *Client {
	c := &Client{
		exec:    exec,
		timeout: cfg.QueryTimeout,
		name:    "surrealdb",
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.Breaker.MaxFailures > 0 {
		maxFailures := cfg.Breaker.MaxFailures
		breakerState.WithLabelValues(c.name).Set(0)
		c.cb = gobreaker.NewCircuitBreaker[[]surrealkit.Result](gobreaker.Settings{
			Name:        c.name,
			MaxRequests: cfg.Breaker.MaxRequests,
			Timeout:     cfg.Breaker.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
					Msg("circuit breaker state change")
				breakerState.WithLabelValues(name).Set(stateToFloat(to))
			},
		})
	}
	return c
}

// driverExec runs sql through the driver. Statements the database rejected
// come back as failed Results, not as an error.
func driverExec(db *surrealdb.DB) execFunc {
	return func(ctx context.Context, sql string, vars map[string]any) ([]surrealkit.Result, error) {
		res, err := surrealdb.Query[any](ctx, db, sql, vars)
		if res == nil {
			if err == nil {
				err = errors.New("empty response")
			}
			return nil, err
		}

		out := make([]surrealkit.Result, len(*res))
		failed := false
		for i, r := range *res {
			out[i] = surrealkit.Result{Status: r.Status, Time: r.Time, Result: r.Result}
			if out[i].OK() {
				continue
			}
			failed = true
			switch {
			case r.Result != nil:
				out[i].Error = fmt.Sprint(r.Result)
			case err != nil:
				out[i].Error = err.Error()
			}
		}
		if err != nil && !failed {
			return nil, err
		}
		return out, nil
	}
}

// Query implements surrealkit.Querier.
func (c *Client) Query(ctx context.Context, sql string, vars map[string]any) ([]surrealkit.Result, error) {
	if c.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
	}

	start := time.Now()
	results, err := c.execute(ctx, sql, vars)
	elapsed := time.Since(start)

	outcome := outcomeOK
	switch {
	case IsUnavailableErr(err):
		outcome = outcomeRejected
	case err != nil:
		outcome = outcomeTransportError
	case surrealkit.CheckAll(results) != nil:
		outcome = outcomeStatementError
	}
	queryDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	queriesTotal.WithLabelValues(outcome).Inc()

	ev := c.log.Debug()
	if err != nil {
		ev = c.log.Warn().Err(err)
	}
	ev.Str("sql", sql).Int("vars", len(vars)).Dur("elapsed", elapsed).Str("outcome", outcome).Msg("query")

	return results, err
}

func (c *Client) execute(ctx context.Context, sql string, vars map[string]any) ([]surrealkit.Result, error) {
	if c.cb == nil {
		return c.exec(ctx, sql, vars)
	}
	results, err := c.cb.Execute(func() ([]surrealkit.Result, error) {
		return c.exec(ctx, sql, vars)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return results, err
}

// Ping runs a trivial statement.
func (c *Client) Ping(ctx context.Context) error {
	results, err := c.Query(ctx, "RETURN true", nil)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return surrealkit.CheckAll(results)
}

// BreakerState returns the circuit breaker state, "disabled" without one.
func (c *Client) BreakerState() string {
	if c.cb == nil {
		return "disabled"
	}
	return c.cb.State().String()
}

// Close closes the connection.
func (c *Client) Close(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close(ctx)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

var _ surrealkit.Querier = (*Client)(nil)
