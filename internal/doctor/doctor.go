// Package doctor provides health checks for a SurrealDB deployment used
// through surrealkit.
//
// The doctor command validates the connection settings, connectivity, the
// selected namespace and database, and the tables the application expects.
//
// Example usage:
//
//	d := doctor.New(c, doctor.WithConfig(cfg), doctor.WithTables(metas...))
//	report, err := d.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report.Print(os.Stdout, true) // verbose=true
package doctor

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pthm/surrealkit"
	"github.com/pthm/surrealkit/pkg/client"
	"github.com/pthm/surrealkit/pkg/table"
)

// Status represents the result of a health check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical issue that will cause failures.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns a status indicator symbol for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "⚠"
	case StatusFail:
		return "✗"
	default:
		return "?"
	}
}

// CheckResult represents the outcome of a single health check.
type CheckResult struct {
	// Category groups related checks (e.g., "Connection", "Tables").
	Category string

	// Name is a short identifier for the check.
	Name string

	// Status is the check outcome.
	Status Status

	// Message is a human-readable description of the result.
	Message string

	// Details provides additional information for verbose output.
	Details string

	// FixHint suggests how to resolve issues.
	FixHint string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult

	// Summary counts.
	Passed   int
	Warnings int
	Errors   int
}

// AddCheck adds a check result and updates summary counts.
func (r *Report) AddCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case StatusPass:
		r.Passed++
	case StatusWarn:
		r.Warnings++
	case StatusFail:
		r.Errors++
	}
}

// Print writes the report to the given writer.
func (r *Report) Print(w io.Writer, verbose bool) {
	// Group checks by category
	categories := make(map[string][]CheckResult)
	var categoryOrder []string
	for _, check := range r.Checks {
		if _, exists := categories[check.Category]; !exists {
			categoryOrder = append(categoryOrder, check.Category)
		}
		categories[check.Category] = append(categories[check.Category], check)
	}

	for _, cat := range categoryOrder {
		_, _ = fmt.Fprintf(w, "\n%s\n", cat)
		for _, check := range categories[cat] {
			_, _ = fmt.Fprintf(w, "  %s %s\n", check.Status.Symbol(), check.Message)
			if verbose && check.Details != "" {
				for _, line := range strings.Split(check.Details, "\n") {
					_, _ = fmt.Fprintf(w, "      %s\n", line)
				}
			}
			if check.Status != StatusPass && check.FixHint != "" {
				_, _ = fmt.Fprintf(w, "      Fix: %s\n", check.FixHint)
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\nSummary: %d passed, %d warnings, %d errors\n",
		r.Passed, r.Warnings, r.Errors)
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// breakerReporter is implemented by *client.Client.
type breakerReporter interface {
	BreakerState() string
}

// Doctor performs health checks against a database.
type Doctor struct {
	db     surrealkit.Querier
	cfg    *client.Config
	tables []table.Meta

	// Cached data from checks (populated during Run)
	definedTables map[string]string
}

// Option configures a Doctor.
type Option func(*Doctor)

// WithConfig adds configuration checks for cfg.
func WithConfig(cfg client.Config) Option {
	return func(d *Doctor) {
		d.cfg = &cfg
	}
}

// WithTables adds checks that the given tables are valid and defined.
func WithTables(metas ...table.Meta) Option {
	return func(d *Doctor) {
		d.tables = append(d.tables, metas...)
	}
}

// New creates a new Doctor. db may be nil when only the configuration is
// checked.
func New(db surrealkit.Querier, opts ...Option) *Doctor {
	d := &Doctor{db: db}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes all health checks and returns a report. Checks that need
// the database are skipped once connectivity fails.
func (d *Doctor) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	if d.cfg != nil && !d.checkConfig(report) {
		return report, nil
	}
	if d.db == nil {
		return report, nil
	}
	if !d.checkConnectivity(ctx, report) {
		return report, nil
	}
	if err := d.checkDatabase(ctx, report); err != nil {
		return nil, fmt.Errorf("checking database: %w", err)
	}
	d.checkTables(report)

	return report, nil
}

// checkConfig validates the connection settings.
func (d *Doctor) checkConfig(report *Report) bool {
	if err := d.cfg.Validate(); err != nil {
		report.AddCheck(CheckResult{
			Category: "Configuration",
			Name:     "valid",
			Status:   StatusFail,
			Message:  "Connection settings are invalid",
			Details:  err.Error(),
			FixHint:  "Set database.url, database.namespace and database.database in surrealkit.yaml",
		})
		return false
	}
	report.AddCheck(CheckResult{
		Category: "Configuration",
		Name:     "valid",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Connection settings are valid (%s, %s/%s)", d.cfg.URL, d.cfg.Namespace, d.cfg.Database),
	})

	if d.cfg.Username == "" {
		report.AddCheck(CheckResult{
			Category: "Configuration",
			Name:     "credentials",
			Status:   StatusWarn,
			Message:  "No credentials configured",
			Details:  "Queries run unauthenticated and may be denied",
			FixHint:  "Set database.username and database.password",
		})
	}
	return true
}

// checkConnectivity runs a trivial statement.
func (d *Doctor) checkConnectivity(ctx context.Context, report *Report) bool {
	start := time.Now()
	results, err := d.db.Query(ctx, "RETURN true", nil)
	if err == nil {
		err = surrealkit.CheckAll(results)
	}
	if err != nil {
		report.AddCheck(CheckResult{
			Category: "Connection",
			Name:     "reachable",
			Status:   StatusFail,
			Message:  "Database is not reachable",
			Details:  err.Error(),
			FixHint:  "Check that SurrealDB is running and database.url points at its RPC endpoint",
		})
		return false
	}
	report.AddCheck(CheckResult{
		Category: "Connection",
		Name:     "reachable",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Database is reachable (%s)", time.Since(start).Round(time.Millisecond)),
	})

	if br, ok := d.db.(breakerReporter); ok {
		state := br.BreakerState()
		status := StatusPass
		if state != "closed" && state != "disabled" {
			status = StatusWarn
		}
		report.AddCheck(CheckResult{
			Category: "Connection",
			Name:     "breaker",
			Status:   status,
			Message:  fmt.Sprintf("Circuit breaker is %s", state),
		})
	}
	return true
}

// checkDatabase inspects the selected namespace and database.
func (d *Doctor) checkDatabase(ctx context.Context, report *Report) error {
	results, err := d.db.Query(ctx, "INFO FOR DB", nil)
	if err != nil {
		return err
	}
	if err := surrealkit.CheckAll(results); err != nil {
		report.AddCheck(CheckResult{
			Category: "Database",
			Name:     "selected",
			Status:   StatusFail,
			Message:  "Database info is not available",
			Details:  err.Error(),
			FixHint:  "Check database.namespace, database.database and the user's permissions",
		})
		return nil
	}

	info, _, err := surrealkit.TakeOne[dbInfo](results, 0)
	if err != nil {
		return err
	}
	d.definedTables = info.Tables

	names := make([]string, 0, len(info.Tables))
	for name := range info.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	report.AddCheck(CheckResult{
		Category: "Database",
		Name:     "selected",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Database is selected (%d tables defined)", len(names)),
		Details:  strings.Join(names, "\n"),
	})
	return nil
}

type dbInfo struct {
	Tables map[string]string `json:"tables"`
}

// checkTables validates the expected tables.
func (d *Doctor) checkTables(report *Report) {
	for _, m := range d.tables {
		if err := table.ValidateName(m.Name); err != nil {
			report.AddCheck(CheckResult{
				Category: "Tables",
				Name:     m.Name,
				Status:   StatusFail,
				Message:  fmt.Sprintf("Table name %q is invalid", m.Name),
				Details:  err.Error(),
				FixHint:  "Table names start with a letter and contain only letters, digits and '_'",
			})
			continue
		}

		def, defined := d.definedTables[m.Name]
		if !defined {
			report.AddCheck(CheckResult{
				Category: "Tables",
				Name:     m.Name,
				Status:   StatusWarn,
				Message:  fmt.Sprintf("Table %s is not defined", m.Name),
				Details:  "It will be created schemaless on first write",
				FixHint:  fmt.Sprintf("Run 'DEFINE TABLE %s' to control its schema and permissions", m.Name),
			})
			continue
		}
		report.AddCheck(CheckResult{
			Category: "Tables",
			Name:     m.Name,
			Status:   StatusPass,
			Message:  fmt.Sprintf("Table %s is defined (%d fields mapped)", m.Name, len(m.Fields)),
			Details:  def,
		})
	}
}
