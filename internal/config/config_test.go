package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/aibridge/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestInit(t *testing.T) {
	viper.Reset()
	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if !viper.GetBool("backup.enabled") {
		t.Error("expected backups to be enabled by default")
	}
	if viper.GetInt("backup.retention") != 5 {
		t.Errorf("expected retention default 5, got %d", viper.GetInt("backup.retention"))
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()
	Init()

	p := writeConfig(t, `version: 1
default_targets:
  - codex
  - cursor
backup:
  retention: 2
platforms:
  windsurf:
    disabled: true
`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.DefaultTargets) != 2 || cfg.DefaultTargets[0] != "codex" {
		t.Errorf("DefaultTargets = %v", cfg.DefaultTargets)
	}
	if cfg.Backup.Retention != 2 {
		t.Errorf("Retention = %d, want 2", cfg.Backup.Retention)
	}
	if !cfg.Backup.Enabled {
		t.Error("Enabled should keep its default")
	}
	if cfg.Enabled("windsurf") {
		t.Error("windsurf should be disabled")
	}
	if !cfg.Enabled("codex") {
		t.Error("codex should be enabled")
	}
	if cfg.Enabled("gemini") {
		t.Error("unknown platforms are never enabled")
	}
	for _, name := range cfg.EnabledPlatforms() {
		if name == "windsurf" {
			t.Error("EnabledPlatforms() includes a disabled platform")
		}
	}
	if len(cfg.EnabledPlatforms()) != 9 {
		t.Errorf("EnabledPlatforms() = %v", cfg.EnabledPlatforms())
	}
	if File() != p {
		t.Errorf("File() = %q, want %q", File(), p)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("AIBRIDGE_BACKUP_RETENTION", "9")
	Init()

	cfg, err := Load(writeConfig(t, "version: 1\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Backup.Retention != 9 {
		t.Errorf("Retention = %d, want 9", cfg.Backup.Retention)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	if err == nil {
		t.Fatal("Load() with non-existent explicit path should error")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"invalid version", "version: 2\n", ErrUnsupportedVersion},
		{"invalid default target", "default_targets:\n  - gemini\n", ErrInvalidPlatform},
		{"invalid platform override", "platforms:\n  gemini:\n    disabled: true\n", ErrInvalidPlatform},
		{"negative retention", "backup:\n  retention: -1\n", ErrInvalidRetention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			Init()

			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("Validate(Default()) = %v", errs)
	}
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v", errs)
	}

	cfg := Default()
	cfg.DefaultTargets = []string{"claude", "nope"}
	errs := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("Validate() = %v, want one error", errs)
	}
	var pe *PlatformError
	if !errors.As(errs[0], &pe) || pe.Platform != "nope" || pe.Field != "default_targets" {
		t.Errorf("Validate() error = %#v", errs[0])
	}
}

func TestValidate_Hints(t *testing.T) {
	cfg := Default()
	cfg.Version = 2
	cfg.DefaultTargets = []string{"claud", "gemini"}

	errs := Validate(cfg)
	if len(errs) != 3 {
		t.Fatalf("Validate() = %v, want three errors", errs)
	}

	wantHints := []string{
		"Add 'version: 1' to the config file",
		"Did you mean claude?",
		"Valid platforms: ",
	}
	for i, want := range wantHints {
		hints := errors.Hints(errs[i])
		if len(hints) != 1 || !strings.HasPrefix(hints[0], want) {
			t.Errorf("Hints(errs[%d]) = %v, want prefix %q", i, hints, want)
		}
	}
}

func TestValidate_DisabledDefaultTarget(t *testing.T) {
	cfg := Default()
	cfg.DefaultTargets = []string{"codex"}
	cfg.Platforms["codex"] = PlatformOverride{Disabled: true}

	errs := Validate(cfg)
	if len(errs) != 1 || !errors.Is(errs[0], ErrDisabledTarget) {
		t.Errorf("Validate() = %v, want ErrDisabledTarget", errs)
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "zed", 3},
		{"codex", "codex", 0},
		{"claud", "claude", 1},
		{"curser", "cursor", 1},
		{"winsurf", "windsurf", 1},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLoad_ErrorsMatchStdlib(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}

	viper.Reset()
	Init()

	_, err = Load(writeConfig(t, "version: 2\nbackup:\n  retention: -1\n"))
	for _, want := range []error{errors.ErrInvalidConfig, ErrUnsupportedVersion, ErrInvalidRetention} {
		if !stderrors.Is(err, want) {
			t.Errorf("Load() error = %v, want %v", err, want)
		}
	}
	var verr *ValidationError
	if !stderrors.As(err, &verr) || len(verr.Errs) != 2 {
		t.Fatalf("Load() error = %#v, want ValidationError with two problems", err)
	}
	if got := strings.Count(err.Error(), "\n"); got != 1 {
		t.Errorf("Load() error has %d line breaks, want 1: %q", got, err)
	}
}
