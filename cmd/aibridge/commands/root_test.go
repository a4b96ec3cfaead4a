package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aibridge/internal/logging"
)

func setupTestLogging(t *testing.T, a *app) error {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetErr(&strings.Builder{})
	return a.setupLogging(cmd)
}

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApp()
			a.verbosity = tt.verbosity
			if err := setupTestLogging(t, a); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"AIBRIDGE_DEBUG=1", "1", slog.LevelDebug},
		{"AIBRIDGE_DEBUG=true", "true", slog.LevelDebug},
		{"AIBRIDGE_DEBUG=2", "2", logging.LevelTrace},
		{"AIBRIDGE_DEBUG=0", "0", slog.LevelWarn},
		{"AIBRIDGE_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AIBRIDGE_DEBUG", tt.envVal)

			if err := setupTestLogging(t, newApp()); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected Trace level to be disabled when AIBRIDGE_DEBUG=1")
			}
		})
	}
}

func TestSetupLogging_FlagPrecedence(t *testing.T) {
	t.Setenv("AIBRIDGE_DEBUG", "2")

	a := newApp()
	a.verbosity = 1
	if err := setupTestLogging(t, a); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug level to be disabled (flag should override env var)")
	}
}

func TestSetupLogging_Quiet(t *testing.T) {
	a := newApp()
	a.quiet = true
	if err := setupTestLogging(t, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("expected Warn level to be disabled")
	}
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	a := newApp()
	a.verbosity = 1
	a.quiet = true

	if err := setupTestLogging(t, a); err == nil {
		t.Error("expected error when both quiet and verbose are set")
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	a := newApp()
	a.verbosity = 1
	a.logFile = filepath.Join(t.TempDir(), "aibridge.log")

	if err := setupTestLogging(t, a); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	slog.Info("converted", "platform", "codex")
	a.close()

	data, err := os.ReadFile(a.logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"platform":"codex"`) {
		t.Errorf("log file missing JSON record: %s", data)
	}
}

func TestSetupLogging_LogFormat(t *testing.T) {
	a := newApp()
	a.logFormat = "json"
	if err := setupTestLogging(t, a); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	a.logFormat = "xml"
	if err := setupTestLogging(t, a); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestRel(t *testing.T) {
	a := &app{projectDir: filepath.FromSlash("/work/app")}

	tests := []struct {
		path string
		want string
	}{
		{filepath.FromSlash("/work/app/.codex/config.toml"), ".codex/config.toml"},
		{filepath.FromSlash("/work/app"), "."},
		{filepath.FromSlash("/work/other/AGENTS.md"), filepath.FromSlash("/work/other/AGENTS.md")},
		{filepath.FromSlash("/work/app/..cfg"), "..cfg"},
	}
	for _, tt := range tests {
		if got := a.rel(tt.path); got != tt.want {
			t.Errorf("rel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
