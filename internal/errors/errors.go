package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitSuccess = 0
	// ExitUser covers mistakes the user can fix: an unknown platform, bad
	// flags, a broken config file, nothing to convert.
	ExitUser = 1
	// ExitSystem covers everything else, mostly I/O.
	ExitSystem = 2
)

// Constructors and inspectors shared by every package. They forward to
// cockroachdb/errors so stack traces and wrapping behave the same everywhere.
var (
	New      = crdb.New
	Newf     = crdb.Newf
	Wrap     = crdb.Wrap
	Wrapf    = crdb.Wrapf
	Is       = crdb.Is
	IsAny    = crdb.IsAny
	As       = crdb.As
	Join     = crdb.Join
	Unwrap   = crdb.UnwrapOnce
	WithHint = crdb.WithHint
)

// Sentinels shared across packages.
var (
	ErrNotFound        = crdb.New("resource not found")
	ErrInvalidConfig   = crdb.New("invalid configuration")
	ErrNothingDetected = crdb.New("no platform detected")
)

// ExitError attaches an exit code and an optional suggestion to an error.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError wraps err with code and no suggestion.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError wraps err with ExitUser.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError wraps err with ExitSystem.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError wraps a config loading failure with ExitUser and points the
// user at doctor.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Run: aibridge doctor")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode picks the process exit code for err. An ExitError anywhere in the
// chain wins; otherwise the shared sentinels count as user errors and the
// rest as system errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	if crdb.IsAny(err, ErrNotFound, ErrInvalidConfig, ErrNothingDetected) {
		return ExitUser
	}
	return ExitSystem
}

// Hints returns what the user can do about err: ExitError suggestions from
// the outside in, then hints added with WithHint. Duplicates are dropped.
func Hints(err error) []string {
	var out []string
	seen := map[string]bool{}
	add := func(h string) {
		if h != "" && !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}

	for e := err; e != nil; e = crdb.UnwrapOnce(e) {
		if exitErr, ok := e.(*ExitError); ok {
			add(exitErr.Suggestion)
		}
	}
	for _, h := range crdb.GetAllHints(err) {
		add(h)
	}
	return out
}
