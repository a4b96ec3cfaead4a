// Package antigravity implements the platform adapter for Google's
// Antigravity agent.
//
// Antigravity settings are JSON, but rules are Markdown and a settings file
// may also hold rules under an "instructions" key. Both shapes are accepted
// wherever either is read.
package antigravity

import (
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/instruction"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "antigravity"

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Antigravity",
	Vendor:      "Google",
	Icon:        "🚀",
	Config: platform.ConfigSpec{
		Format: format.NameJSON,
		Paths: platform.ConfigPaths{
			Project: ".agent/settings.json",
			Global:  "~/.gemini/antigravity/settings.json",
		},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{".agent/rules/main.md", ".agent/rules/rules.md", "CLAUDE.md"},
		Format: format.NameMarkdown,
	},
}

// Adapter is the Antigravity platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns an Antigravity adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.JSONOrMarkdown{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// ParseToUnified implements platform.Adapter. JSON input is read through
// its "instructions" key; anything else is parsed as Markdown. RawContent
// is always the full input.
func (a *Adapter) ParseToUnified(content string) *instruction.Instruction {
	text, ok := format.InstructionsFromJSON(content)
	if !ok {
		return a.Base.ParseToUnified(content)
	}

	u := a.Base.ParseToUnified(text)
	u.RawContent = content
	return u
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{format.KeyInstructions: ""}
}
