// Package opencode implements the platform adapter for OpenCode.
//
// OpenCode reads opencode.json from the project root. The file is JSONC:
// comments and trailing commas are accepted on read but not preserved on
// write.
package opencode

import (
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "opencode"

// Defaults for new configs.
const (
	DefaultModel    = "claude-sonnet-4-20250514"
	DefaultProvider = "anthropic"
)

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "OpenCode",
	Vendor:      "opencode.ai",
	Icon:        "⚡",
	Config: platform.ConfigSpec{
		Format: format.NameJSONC,
		Paths: platform.ConfigPaths{
			Project: "opencode.json",
			Global:  "~/.config/opencode/opencode.json",
		},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{"CLAUDE.md", ".opencode/INSTRUCTIONS.md"},
		Format: format.NameMarkdown,
	},
}

// Adapter is the OpenCode platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns an OpenCode adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.JSONC{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{
		"model": map[string]any{
			"id":       DefaultModel,
			"provider": DefaultProvider,
		},
		"instructions": []any{"CLAUDE.md"},
		"mcpServers":   map[string]any{},
	}
}
