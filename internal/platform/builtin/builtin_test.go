package builtin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/instruction"
	"github.com/thoreinstein/aibridge/internal/platform"
)

const sample = `# Payments Service

> Guidelines for the payments team.

Stray preamble text.

## Overview

Handles card and ACH transfers.

## Code Style

- Use gofmt.
- Wrap errors with context.

## Testing

Run the unit tests before pushing.
`

func sectionContents(u *instruction.Instruction) map[string]string {
	out := make(map[string]string, u.Len())
	for _, key := range u.SectionKeys() {
		content, _ := u.Section(key)
		out[key] = content
	}
	return out
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRegistrations(t *testing.T) {
	want := []string{
		"aider", "antigravity", "claude", "cline", "codex",
		"cursor", "opencode", "trae", "windsurf", "zed",
	}
	assert.Equal(t, want, Names())
	assert.Equal(t, want, NewRegistry().List())

	assert.True(t, IsBuiltin("codex"))
	assert.False(t, IsBuiltin("gemini"))

	regs := Registrations()
	regs[0].Name = "mutated"
	assert.Equal(t, "aider", Registrations()[0].Name)
}

func TestMetaMatchesRegistration(t *testing.T) {
	r := NewRegistry()
	for _, m := range r.ListWithMeta() {
		assert.NotEmpty(t, m.DisplayName, m.Name)
		assert.NotEmpty(t, m.Config.Format, m.Name)
		assert.NotEmpty(t, m.Config.Paths.Project, m.Name)
		assert.NotEmpty(t, m.Instruction.Files, m.Name)
	}
}

func TestCrossPlatformSectionPreservation(t *testing.T) {
	r := NewRegistry()
	names := r.List()

	for _, from := range names {
		src := r.Get(from)
		want := sectionContents(src.ParseToUnified(sample))
		require.Len(t, want, 3, from)

		for _, to := range names {
			t.Run(from+"->"+to, func(t *testing.T) {
				out, err := r.ConvertInstructions(sample, from, to)
				require.NoError(t, err)

				got := r.Get(to).ParseToUnified(out)
				assert.Equal(t, want, sectionContents(got))
				assert.Equal(t, to, got.SourceFormat())
			})
		}
	}
}

func TestRoundTripIdentity(t *testing.T) {
	r := NewRegistry()
	claude := r.Get("claude")
	foreign := claude.ParseToUnified(sample)

	for _, name := range r.List() {
		t.Run(name, func(t *testing.T) {
			a := r.Get(name)
			x := a.SerializeFromUnified(foreign)
			assert.Equal(t, x, a.SerializeFromUnified(a.ParseToUnified(x)))
		})
	}
}

func TestRoundTripIdentity_Chained(t *testing.T) {
	r := NewRegistry()
	names := r.List()

	// Walk the whole ring so every adapter sees another adapter's output.
	text := sample
	for i, name := range names {
		prev := names[(i+len(names)-1)%len(names)]
		converted, err := r.ConvertInstructions(text, prev, name)
		require.NoError(t, err)

		a := r.Get(name)
		assert.Equal(t, converted, a.SerializeFromUnified(a.ParseToUnified(converted)), name)
		text = converted
	}
}

func TestCursorToClaude(t *testing.T) {
	input := "---\ndescription: test\nglobs: ['*.ts']\nalwaysApply: false\n---\n\n# Rules\n\n## Style\nUse 2-space indent.\n"

	out, err := ConvertInstructions(input, "cursor", "claude")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Rules\n"), out)
	assert.NotContains(t, out, "globs:")
	assert.NotContains(t, out, "alwaysApply")

	u, err := ParseInstructions(out, "claude")
	require.NoError(t, err)
	assert.Equal(t, "Rules", u.Title)
	style, ok := u.Section("style")
	require.True(t, ok)
	assert.Equal(t, "Use 2-space indent.", style)
}

func TestClaudeToCursorKeepsGlobsDefault(t *testing.T) {
	out, err := ConvertInstructions(sample, "claude", "cursor")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "description: Guidelines for the payments team.")
	assert.Contains(t, out, "**/*")
}

func TestConvertInstructions_Unknown(t *testing.T) {
	_, err := ConvertInstructions(sample, "gemini", "claude")
	require.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrUnknownPlatform))
	assert.Contains(t, err.Error(), "unknown source platform: gemini")

	_, err = ConvertInstructions(sample, "claude", "gemini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target platform: gemini")

	_, err = ParseInstructions(sample, "nope")
	assert.True(t, errors.Is(err, platform.ErrUnknownPlatform))
}

func TestDetectPlatforms_EmptyProject(t *testing.T) {
	assert.Empty(t, DetectPlatforms(t.TempDir()))
}

func TestDetectPlatforms(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".cursorrules", "# Rules\n")
	writeFile(t, dir, ".codex/config.toml", "model = \"o3\"\n")
	writeFile(t, dir, ".aider.conf.yml", "model: gpt-4o\n")

	var got []string
	for _, d := range DetectPlatforms(dir) {
		got = append(got, d.Platform)
		assert.NotEmpty(t, d.ConfigPath)
		assert.NotNil(t, d.Adapter)
	}
	assert.Equal(t, []string{"aider", "codex", "cursor"}, got)
}

func TestDetectPlatforms_SharedClaudeMD(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "CLAUDE.md", sample)

	var got []string
	for _, d := range DetectPlatforms(dir) {
		got = append(got, d.Platform)
	}
	// Every platform that lists CLAUDE.md as a candidate claims it, except
	// Cline, which only trusts .clinerules.
	assert.Contains(t, got, "claude")
	assert.Contains(t, got, "codex")
	assert.NotContains(t, got, "cline")
	assert.NotContains(t, got, "cursor")
}

func TestDetectionPriority(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.List() {
		t.Run(name, func(t *testing.T) {
			a := r.Get(name)
			dir := t.TempDir()
			cfg := writeFile(t, dir, a.ConfigPaths().Project, "")
			for _, f := range a.InstructionFiles() {
				writeFile(t, dir, f, "# Rules\n")
			}

			d := a.DetectPlatform(dir)
			assert.True(t, d.Detected)
			assert.Equal(t, cfg, d.ConfigPath)
		})
	}
}

func TestParseConfig(t *testing.T) {
	claude, err := Adapter("claude")
	require.NoError(t, err)
	cfg, err := claude.ParseConfig([]byte(`{"model":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"model": "x"}, cfg)

	codex, err := Adapter("codex")
	require.NoError(t, err)
	cfg, err = codex.ParseConfig([]byte(`model = "x"`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"model": "x"}, cfg)
}

func TestDefaultConfigRoundTrips(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.List() {
		t.Run(name, func(t *testing.T) {
			a := r.Get(name)
			data, err := a.StringifyConfig(a.DefaultConfig())
			require.NoError(t, err)
			_, err = a.ParseConfig(data)
			require.NoError(t, err)
		})
	}
}

func TestFaultIsolation(t *testing.T) {
	regs := append(Registrations(), platform.Registration{
		Name: "broken",
		New:  func() (platform.Adapter, error) { panic("cannot load") },
	})
	r := platform.NewRegistry(regs)

	assert.Equal(t, Names(), r.List())
	assert.False(t, r.Has("broken"))
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Len(t, List(), len(Names()))
}
