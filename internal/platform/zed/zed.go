// Package zed implements the platform adapter for the Zed editor's agent.
package zed

import (
	"maps"

	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "zed"

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Zed",
	Vendor:      "Zed Industries",
	Icon:        "⚡",
	Config: platform.ConfigSpec{
		Format: format.NameJSON,
		Paths: platform.ConfigPaths{
			Project: ".zed/settings.json",
			Global:  "~/.config/zed/settings.json",
		},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{"CLAUDE.md", ".zed/instructions.md"},
		Format: format.NameMarkdown,
	},
}

var providers = map[string]string{
	"anthropic": "anthropic",
	"openai":    "openai",
	"google":    "google",
	"zed.dev":   "zed.dev",
}

// Adapter is the Zed platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns a Zed adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.JSON{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// ProviderMapping returns a copy of the provider name table.
func (a *Adapter) ProviderMapping() map[string]string {
	return maps.Clone(providers)
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{
		"agent": map[string]any{
			"default_model": map[string]any{
				"provider": "anthropic",
				"model":    "claude-sonnet-4",
			},
			"notify_when_agent_waiting":  true,
			"play_sound_when_agent_done": false,
			"message_editor_min_lines":   4,
			"expand_edit_card":           true,
			"always_allow_tool_actions":  false,
		},
	}
}
