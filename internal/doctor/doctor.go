package doctor

import (
	"fmt"
	"time"

	"github.com/thoreinstein/aibridge/internal/platform"
)

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "platform", "config").
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run() *CheckResult
}

// Target is the project the checks inspect and the platforms they know.
type Target struct {
	ProjectDir string
	Registry   *platform.Registry
}

// adapters returns the registry's adapters in registration order.
func (t Target) adapters() []platform.Adapter {
	names := t.Registry.List()
	out := make([]platform.Adapter, 0, len(names))
	for _, name := range names {
		if a := t.Registry.Get(name); a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
}

// NewRunner creates a new diagnostic runner.
func NewRunner() *Runner {
	return &Runner{
		checks: make([]Check, 0),
	}
}

// DefaultRunner returns a runner with every built-in check for target.
func DefaultRunner(target Target) *Runner {
	r := NewRunner()
	r.AddCheck(NewPlatformCheck(target))
	r.AddCheck(NewConfigSyntaxCheck(target))
	r.AddCheck(NewInstructionCheck(target))
	r.AddCheck(NewCodexPolicyCheck(target))
	r.AddCheck(NewSecretsCheck(target))
	r.AddCheck(NewPathPermissionCheck(target))
	return r
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks in order.
func (r *Runner) Checks() []Check {
	return append([]Check(nil), r.checks...)
}

// Run executes all registered checks and returns a report.
func (r *Runner) Run() *DoctorReport {
	report := &DoctorReport{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		result := runCheck(check)
		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}
	return report
}

// runCheck runs c, turning a panic or a nil result into an error result so
// one broken check cannot take down the whole report.
func runCheck(c Check) (result *CheckResult) {
	defer func() {
		if p := recover(); p != nil {
			result = &CheckResult{
				Name:     c.Name(),
				Category: c.Category(),
				Status:   SeverityError,
				Message:  fmt.Sprintf("check panicked: %v", p),
			}
		}
	}()

	result = c.Run()
	if result == nil {
		result = &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "check returned no result",
		}
	}
	return result
}

// Fixers returns the checks of the last Run that have something to fix.
func (r *Runner) Fixers() []Fixer {
	var out []Fixer
	for _, c := range r.checks {
		if f, ok := c.(Fixer); ok && f.CanFix() {
			out = append(out, f)
		}
	}
	return out
}

// DoctorReport aggregates all check results with timing and summary.
type DoctorReport struct {
	// Timestamp is when the diagnostic run started.
	Timestamp time.Time `json:"timestamp"`

	// Results contains the outcome of each check.
	Results []*CheckResult `json:"results"`

	// Summary contains counts by severity level.
	Summary Summary `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *DoctorReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *DoctorReport) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
