package codex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aibridge/internal/instruction"
)

func fixedNow(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
}

func TestMeta(t *testing.T) {
	a := New()
	assert.Equal(t, "codex", a.Meta().Name)
	assert.Equal(t, "toml", a.ConfigFormat())
	assert.Equal(t, ".codex", a.ProjectDirName())
	assert.Equal(t, []string{"AGENTS.md", "CLAUDE.md", "TEAM_GUIDE.md"}, a.InstructionFiles())
}

func TestSerializeFromUnified_Foreign(t *testing.T) {
	fixedNow(t)

	u := instruction.New()
	u.SetSection("Build", "make all")

	want := "# Project - Agent Instructions\n\n" +
		"> Auto-generated for Codex CLI compatibility.\n" +
		"> Last updated: 2025-01-02\n\n" +
		"## Build\n\nmake all\n\n" +
		"---\n\n" +
		"## Codex-Specific Settings\n\n" +
		"- **Sandbox Mode**: workspace-write\n" +
		"- **Approval Policy**: on-failure\n" +
		"- **Context Window**: 64KB default"
	assert.Equal(t, want, New().SerializeFromUnified(u))
}

func TestParseToUnified_StripsFooter(t *testing.T) {
	fixedNow(t)

	u := instruction.New()
	u.Title = "T"
	u.SetSection("A", "alpha")
	u.SetSection("B", "beta")

	a := New()
	back := a.ParseToUnified(a.SerializeFromUnified(u))

	assert.Equal(t, []string{"a", "b"}, back.SectionKeys())
	content, _ := back.Section("B")
	assert.Equal(t, "beta", content)
	v, ok := back.MetadataBool(instruction.MetaHasCodexSettings)
	assert.True(t, ok && v)
	assert.Equal(t, "codex", back.SourceFormat())
}

func TestRoundTrip(t *testing.T) {
	src := "# Agents\n\n## Setup\n\nrun make\n\n---\n\n## Codex-Specific Settings\n\n- custom\n"
	a := New()
	assert.Equal(t, src, a.SerializeFromUnified(a.ParseToUnified(src)))
}

func TestParseConfig(t *testing.T) {
	cfg, err := New().ParseConfig([]byte("model = \"o3\"\n\n[project]\nproject_doc_max_bytes = 65536\n"))
	require.NoError(t, err)

	assert.Equal(t, "o3", cfg["model"])
	project := cfg["project"].(map[string]any)
	assert.EqualValues(t, 65536, project["project_doc_max_bytes"])

	_, err = New().ParseConfig([]byte("model = "))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	a := New()
	cfg := a.DefaultConfig()

	assert.Equal(t, "o3", cfg["model"])
	assert.Equal(t, "workspace-write", cfg["sandbox_mode"])
	assert.Equal(t, "on-failure", cfg["approval_policy"])

	data, err := a.StringifyConfig(cfg)
	require.NoError(t, err)
	back, err := a.ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, "openai", back["model_provider"])
}
