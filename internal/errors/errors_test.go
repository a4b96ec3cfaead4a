package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "resource not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
		{
			name: "success code with error",
			err:  NewExitError(New("unexpected"), ExitSuccess),
			want: "unexpected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	wrapped := Wrap(ErrNothingDetected, "scanning project")
	exitErr := NewUserError(wrapped, "add a CLAUDE.md")

	if !Is(exitErr, ErrNothingDetected) {
		t.Error("Is(exitErr, ErrNothingDetected) = false, want true")
	}
	if exitErr.Suggestion != "add a CLAUDE.md" {
		t.Errorf("Suggestion = %q, want %q", exitErr.Suggestion, "add a CLAUDE.md")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "user error", err: NewUserError(ErrNotFound, ""), want: ExitUser},
		{name: "system error", err: NewSystemError(ErrNotFound, ""), want: ExitSystem},
		{name: "wrapped user error", err: Wrap(NewConfigError(ErrInvalidConfig), "ctx"), want: ExitUser},
		{name: "plain error", err: New("boom"), want: ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewConfigError_Suggestion(t *testing.T) {
	err := NewConfigError(ErrInvalidConfig)
	if err.Code != ExitUser {
		t.Errorf("Code = %d, want %d", err.Code, ExitUser)
	}
	if err.Suggestion != "Run: aibridge doctor" {
		t.Errorf("Suggestion = %q, want %q", err.Suggestion, "Run: aibridge doctor")
	}
}

func TestExitCode_Sentinels(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrInvalidConfig, Wrap(ErrNothingDetected, "scanning")} {
		if got := ExitCode(err); got != ExitUser {
			t.Errorf("ExitCode(%v) = %d, want %d", err, got, ExitUser)
		}
	}
}

func TestHints(t *testing.T) {
	inner := WithHint(New("version must be 1"), "Add 'version: 1' to the config file")
	err := Wrap(NewConfigError(inner), "loading config")

	got := Hints(err)
	want := []string{"Run: aibridge doctor", "Add 'version: 1' to the config file"}
	if len(got) != len(want) {
		t.Fatalf("Hints() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Hints()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	dup := NewUserError(WithHint(New("x"), "same"), "same")
	if got := Hints(dup); len(got) != 1 {
		t.Errorf("duplicate hints kept: %v", got)
	}
	if Hints(nil) != nil {
		t.Error("Hints(nil) should be nil")
	}
}
