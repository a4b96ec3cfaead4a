// Package trae implements the platform adapter for ByteDance's Trae agent.
package trae

import (
	"maps"

	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "trae"

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Trae",
	Vendor:      "ByteDance",
	Icon:        "🎯",
	Config: platform.ConfigSpec{
		Format: format.NameYAML,
		Paths: platform.ConfigPaths{
			Project: "trae_config.yaml",
			Global:  "~/.trae/config.yaml",
		},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{"CLAUDE.md", ".trae/instructions.md"},
		Format: format.NameMarkdown,
	},
}

// providers maps generic provider names to Trae's model_provider values.
var providers = map[string]string{
	"anthropic": "anthropic",
	"openai":    "openai",
	"google":    "google",
	"aws":       "aws_bedrock",
	"azure":     "azure",
}

// Adapter is the Trae platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns a Trae adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.YAML{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// ProviderMapping returns a copy of the provider name table.
func (a *Adapter) ProviderMapping() map[string]string {
	return maps.Clone(providers)
}

// Provider maps a generic provider name to Trae's. Unknown names pass
// through unchanged.
func (a *Adapter) Provider(name string) string {
	if p, ok := providers[name]; ok {
		return p
	}
	return name
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{
		"agents": map[string]any{
			"trae_agent": map[string]any{
				"enable_lakeview": true,
				"model":           "trae_agent_model",
				"max_steps":       200,
				"tools":           []any{"bash", "str_replace_based_edit_tool"},
			},
		},
		"models": map[string]any{
			"trae_agent_model": map[string]any{
				"model_provider": "anthropic",
				"model":          "claude-sonnet-4-20250514",
				"max_tokens":     4096,
				"temperature":    0.5,
			},
		},
	}
}
