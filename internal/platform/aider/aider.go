// Package aider implements the platform adapter for Aider.
//
// Aider reads conventions from CONVENTIONS.md, passed with --read, and
// settings from .aider.conf.yml at the project root. Converted documents
// end with an "Aider Integration" footer showing how to load them.
package aider

import (
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/instruction"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "aider"

// IntegrationFooter is the heading of the generated usage footer.
const IntegrationFooter = "Aider Integration"

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Aider",
	Vendor:      "aider.chat",
	Icon:        "🔧",
	Config: platform.ConfigSpec{
		Format: format.NameYAML,
		Paths: platform.ConfigPaths{
			Project: ".aider.conf.yml",
			Global:  "~/.aider.conf.yml",
		},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{"CONVENTIONS.md", "CLAUDE.md", ".aider/CONVENTIONS.md"},
		Format: format.NameMarkdown,
	},
}

// Adapter is the Aider platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns an Aider adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.YAML{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// ParseToUnified implements platform.Adapter. The generated integration
// footer is removed and recorded as the hasAiderFooter flag.
func (a *Adapter) ParseToUnified(content string) *instruction.Instruction {
	u := a.Base.ParseToUnified(content)
	if platform.StripFooter(u, IntegrationFooter) {
		u.SetMetadata(instruction.MetaHasAiderFooter, true)
	}
	return u
}

// SerializeFromUnified implements platform.Adapter. The source title moves
// into the description since Aider documents are always titled
// "Coding Conventions".
func (a *Adapter) SerializeFromUnified(u *instruction.Instruction) string {
	if text, ok := platform.SameSource(u, Name); ok {
		return text
	}

	subject := u.Title
	if subject == "" {
		subject = "this project"
	}

	lines := []string{
		"# Coding Conventions",
		"",
		"> Conventions for " + subject,
		"> Auto-generated for Aider compatibility",
		"",
	}
	lines = append(lines, u.SectionLines()...)
	lines = append(lines,
		"---",
		"",
		"## "+IntegrationFooter,
		"",
		"```bash",
		"aider --read "+meta.Instruction.Files[0],
		"```",
	)
	return platform.JoinLines(lines)
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{
		"model":         "claude-3-sonnet",
		"read":          []any{"CONVENTIONS.md"},
		"auto-commits":  false,
		"dirty-commits": false,
	}
}
