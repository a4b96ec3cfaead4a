package claude

import (
	"strings"
	"time"

	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/instruction"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "claude"

// Defaults used when a converted document has no title or description.
const (
	DefaultTitle       = "Project - AI Collaboration Guide"
	DefaultDescription = "Maintained for AI collaboration. Defines how assistants work in this project."
)

// now is replaced in tests.
var now = time.Now

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Claude Code",
	Vendor:      "Anthropic",
	Icon:        "🤖",
	Config: platform.ConfigSpec{
		Format: format.NameJSON,
		Paths: platform.ConfigPaths{
			Project: ".claude/settings.json",
			Global:  "~/.claude/config.json",
		},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{"CLAUDE.md", ".claude/CLAUDE.md"},
		Format: format.NameMarkdown,
	},
}

// Adapter is the Claude Code platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns a Claude Code adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.JSON{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// ParseToUnified implements platform.Adapter. A startup checklist section
// sets the hasChecklist flag.
func (a *Adapter) ParseToUnified(content string) *instruction.Instruction {
	u := a.Base.ParseToUnified(content)
	for _, s := range u.Sections() {
		if isChecklist(s.OriginalName) {
			u.SetMetadata(instruction.MetaHasChecklist, true)
			break
		}
	}
	return u
}

// SerializeFromUnified implements platform.Adapter.
func (a *Adapter) SerializeFromUnified(u *instruction.Instruction) string {
	if text, ok := platform.SameSource(u, Name); ok {
		return text
	}

	title := u.Title
	if title == "" {
		title = DefaultTitle
	}
	desc := u.Description
	if desc == "" {
		desc = DefaultDescription
	}

	lines := []string{
		"# " + title,
		"",
		"> " + desc,
		"> Last updated: " + now().Format(time.DateOnly),
		"",
		"---",
		"",
	}
	lines = append(lines, u.SectionLines()...)
	return platform.JoinLines(lines)
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{
		"env":        map[string]any{},
		"hooks":      map[string]any{},
		"mcpServers": map[string]any{},
	}
}

func isChecklist(heading string) bool {
	lower := strings.ToLower(heading)
	return strings.Contains(lower, "checklist") || strings.Contains(heading, "检查清单")
}
