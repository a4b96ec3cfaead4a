// Package doctor diagnoses a project's assistant configuration: which
// platforms are detected, whether their config files parse, whether their
// instruction files will convert, and whether secrets or file permissions
// need attention. It also holds the secret redaction helpers shared with
// logging and the show command.
package doctor

import "encoding/json"

// Severity grades a check result. Higher is worse.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalJSON writes the severity name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`
	// Details holds check-specific data: offending paths, secret keys,
	// parse positions.
	Details map[string]any `json:"details,omitempty"`
	// Fixable is set when "doctor --fix" can resolve the problem.
	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts results per severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(level Severity) {
	switch level {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	default:
		s.Errors++
	}
}

// worst returns the highest of the given severities, or SeverityPass.
func worst(levels ...Severity) Severity {
	out := SeverityPass
	for _, l := range levels {
		out = max(out, l)
	}
	return out
}
