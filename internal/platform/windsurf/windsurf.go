// Package windsurf implements the platform adapter for Codeium's Windsurf.
//
// Windsurf rules are plain Markdown. The project rules file doubles as the
// config file, so config parsing wraps the text like the instructions do.
package windsurf

import (
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "windsurf"

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Windsurf",
	Vendor:      "Codeium",
	Icon:        "🏄",
	Config: platform.ConfigSpec{
		Format: format.NameMarkdown,
		Paths: platform.ConfigPaths{
			Project: ".windsurf/rules/rules.md",
			Global:  "~/.windsurf/global_rules.md",
		},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{".windsurfrules", ".windsurf/rules/rules.md", "CLAUDE.md"},
		Format: format.NameMarkdown,
	},
}

// Adapter is the Windsurf platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns a Windsurf adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.Markdown{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{format.KeyInstructions: ""}
}
