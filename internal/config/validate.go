package config

import (
	"slices"
	"strings"

	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/platform/builtin"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

var (
	ErrUnsupportedVersion = errors.New("version must be 1")
	ErrInvalidPlatform    = errors.New("invalid platform")
	ErrInvalidRetention   = errors.New("backup.retention must not be negative")
	// ErrDisabledTarget is reported when a default target is also disabled.
	ErrDisabledTarget = errors.New("default target is disabled")
)

// Validate returns every problem found in cfg, or nil. Errors carry hints
// (see errors.Hints) where a fix is obvious.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	if cfg.Version != 1 {
		errs = append(errs, errors.WithHint(ErrUnsupportedVersion, "Add 'version: 1' to the config file"))
	}

	for _, name := range cfg.DefaultTargets {
		switch {
		case !builtin.IsBuiltin(name):
			errs = append(errs, unknownPlatform("default_targets", name))
		case cfg.Platforms[name].Disabled:
			errs = append(errs, &PlatformError{Field: "default_targets", Platform: name, Err: ErrDisabledTarget})
		}
	}

	names := make([]string, 0, len(cfg.Platforms))
	for name := range cfg.Platforms {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if !builtin.IsBuiltin(name) {
			errs = append(errs, unknownPlatform("platforms", name))
		}
	}

	if cfg.Backup.Retention < 0 {
		errs = append(errs, ErrInvalidRetention)
	}
	return errs
}

func unknownPlatform(field, name string) error {
	var err error = &PlatformError{Field: field, Platform: name, Err: ErrInvalidPlatform}
	if guess := closestBuiltin(name); guess != "" {
		return errors.WithHint(err, "Did you mean "+guess+"?")
	}
	return errors.WithHint(err, "Valid platforms: "+strings.Join(builtin.Names(), ", "))
}

// closestBuiltin returns the builtin name within two edits of name, if any.
func closestBuiltin(name string) string {
	name = strings.ToLower(name)
	best, bestDist := "", 3
	for _, candidate := range builtin.Names() {
		if d := editDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// PlatformError reports a bad platform name in a config field.
type PlatformError struct {
	Field    string
	Platform string
	Err      error
}

func (e *PlatformError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Platform
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// ValidationError is returned by Load when Validate reports problems. It
// matches errors.ErrInvalidConfig and every individual problem.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (e *ValidationError) Unwrap() []error {
	return append([]error{errors.ErrInvalidConfig}, e.Errs...)
}
