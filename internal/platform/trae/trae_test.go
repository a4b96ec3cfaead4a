package trae

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderMapping(t *testing.T) {
	a := New()
	assert.Equal(t, map[string]string{
		"anthropic": "anthropic",
		"openai":    "openai",
		"google":    "google",
		"aws":       "aws_bedrock",
		"azure":     "azure",
	}, a.ProviderMapping())

	m := a.ProviderMapping()
	m["aws"] = "mutated"
	assert.Equal(t, "aws_bedrock", a.Provider("aws"))
	assert.Equal(t, "ollama", a.Provider("ollama"))
}

func TestDefaultConfig_YAML(t *testing.T) {
	a := New()
	data, err := a.StringifyConfig(a.DefaultConfig())
	require.NoError(t, err)

	cfg, err := a.ParseConfig(data)
	require.NoError(t, err)

	agent := cfg["agents"].(map[string]any)["trae_agent"].(map[string]any)
	assert.Equal(t, 200, agent["max_steps"])
	assert.Equal(t, []any{"bash", "str_replace_based_edit_tool"}, agent["tools"])

	model := cfg["models"].(map[string]any)["trae_agent_model"].(map[string]any)
	assert.Equal(t, 0.5, model["temperature"])
}

func TestMeta(t *testing.T) {
	a := New()
	assert.Equal(t, "trae", a.Meta().Name)
	assert.Equal(t, "", a.ProjectDirName())
	assert.Equal(t, []string{"CLAUDE.md", ".trae/instructions.md"}, a.InstructionFiles())
}
