package claude

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aibridge/internal/instruction"
)

func fixedNow(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
}

func TestMeta(t *testing.T) {
	a := New()
	m := a.Meta()

	assert.Equal(t, "claude", m.Name)
	assert.Equal(t, "Claude Code", m.DisplayName)
	assert.Equal(t, "json", a.ConfigFormat())
	assert.Equal(t, ".claude", a.ProjectDirName())
	assert.Equal(t, []string{"CLAUDE.md", ".claude/CLAUDE.md"}, a.InstructionFiles())
}

func TestRoundTrip(t *testing.T) {
	src := "# My Project\n\n> Notes\n\nstray text\n\n## Rules\n\n- be kind\n"
	a := New()

	assert.Equal(t, src, a.SerializeFromUnified(a.ParseToUnified(src)))
}

func TestSerializeFromUnified_Foreign(t *testing.T) {
	fixedNow(t)

	u := instruction.New()
	u.Title = "Widget"
	u.SetSection("Coding Style", "Use gofmt.")
	u.SetMetadata(instruction.MetaSourceFormat, "cursor")

	want := "# Widget\n\n" +
		"> " + DefaultDescription + "\n" +
		"> Last updated: 2025-03-14\n\n" +
		"---\n\n" +
		"## Coding Style\n\nUse gofmt."
	assert.Equal(t, want, New().SerializeFromUnified(u))
}

func TestSerializeFromUnified_Defaults(t *testing.T) {
	fixedNow(t)

	out := New().SerializeFromUnified(instruction.New())
	assert.Contains(t, out, "# "+DefaultTitle)
	assert.Contains(t, out, "> "+DefaultDescription)
}

func TestSerializeFromUnified_Reparse(t *testing.T) {
	fixedNow(t)

	u := instruction.New()
	u.Title = "T"
	u.Description = "D"
	u.SetSection("A", "alpha")
	u.SetSection("B", "beta")

	a := New()
	back := a.ParseToUnified(a.SerializeFromUnified(u))
	assert.Equal(t, "T", back.Title)
	assert.Equal(t, "D", back.Description)
	assert.Equal(t, []string{"a", "b"}, back.SectionKeys())
	content, _ := back.Section("B")
	assert.Equal(t, "beta", content)
}

func TestParseToUnified_Checklist(t *testing.T) {
	a := New()

	u := a.ParseToUnified("# T\n\n## Startup Checklist\n\n- [ ] read docs\n")
	v, ok := u.MetadataBool(instruction.MetaHasChecklist)
	assert.True(t, ok && v)

	u = a.ParseToUnified("# T\n\n## Rules\n")
	_, ok = u.MetadataBool(instruction.MetaHasChecklist)
	assert.False(t, ok)
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := New()

	_, err := a.SaveConfig(dir, map[string]any{"env": map[string]any{"DEBUG": "1"}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".claude", "settings.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"env":{"DEBUG":"1"}}`, string(data))

	assert.Equal(t, map[string]any{"env": map[string]any{"DEBUG": "1"}}, a.LoadConfig(dir))
}

func TestDefaultConfig(t *testing.T) {
	cfg := New().DefaultConfig()
	assert.Contains(t, cfg, "hooks")
	assert.Contains(t, cfg, "mcpServers")
}
