// Package codex implements the platform adapter for OpenAI's Codex CLI.
//
// Codex reads .codex/config.toml and AGENTS.md. Documents converted from
// other platforms end with a "Codex-Specific Settings" footer describing the
// sandbox and approval defaults; parsing removes that footer again so it
// does not leak into other platforms' output.
package codex

import (
	"time"

	"github.com/thoreinstein/aibridge/internal/convert"
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/instruction"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "codex"

// Generated document parts.
const (
	DefaultTitle   = "Project - Agent Instructions"
	GeneratedNote  = "Auto-generated for Codex CLI compatibility."
	SettingsFooter = "Codex-Specific Settings"
)

// DefaultDocMaxBytes is the project_doc_max_bytes written to new configs.
const DefaultDocMaxBytes = convert.DefaultCodexDocMaxBytes

var now = time.Now

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Codex CLI",
	Vendor:      "OpenAI",
	Icon:        "🦊",
	Config: platform.ConfigSpec{
		Format: format.NameTOML,
		Paths: platform.ConfigPaths{
			Project: ".codex/config.toml",
			Global:  "~/.codex/config.toml",
		},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{"AGENTS.md", "CLAUDE.md", "TEAM_GUIDE.md"},
		Format: format.NameMarkdown,
	},
}

// Adapter is the Codex CLI platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns a Codex CLI adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.TOML{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// ParseToUnified implements platform.Adapter. The generated settings footer
// is removed and recorded as the hasCodexSettings flag.
func (a *Adapter) ParseToUnified(content string) *instruction.Instruction {
	u := a.Base.ParseToUnified(content)
	if platform.StripFooter(u, SettingsFooter) {
		u.SetMetadata(instruction.MetaHasCodexSettings, true)
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

	lines := []string{
		"# " + title,
		"",
		"> " + GeneratedNote,
		"> Last updated: " + now().Format(time.DateOnly),
		"",
	}
	lines = append(lines, u.SectionLines()...)
	lines = append(lines,
		"---",
		"",
		"## "+SettingsFooter,
		"",
		"- **Sandbox Mode**: "+string(convert.DefaultCodexSandbox),
		"- **Approval Policy**: "+string(convert.DefaultCodexApproval),
		"- **Context Window**: 64KB default",
	)
	return platform.JoinLines(lines)
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{
		"model":           convert.DefaultCodexModel,
		"model_provider":  convert.DefaultCodexProvider,
		"sandbox_mode":    string(convert.DefaultCodexSandbox),
		"approval_policy": string(convert.DefaultCodexApproval),
		"project": map[string]any{
			"project_doc_fallback_filenames": []any{"AGENTS.md", "CLAUDE.md"},
			"project_doc_max_bytes":          int64(DefaultDocMaxBytes),
		},
		"features": map[string]any{
			"shell_tool":         true,
			"web_search_request": true,
		},
	}
}
