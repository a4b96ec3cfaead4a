package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aibridge/internal/mcp"
	"github.com/thoreinstein/aibridge/internal/platform/claude"
)

func claudeSettings() map[string]any {
	return map[string]any{
		"env": map[string]any{"LOG_LEVEL": "debug", "RETRIES": 3},
		"hooks": map[string]any{
			"PreToolUse": []any{
				map[string]any{"type": "command", "command": "./lint.sh"},
				map[string]any{"type": "command", "command": ""},
			},
			"SessionStart": []any{
				map[string]any{"type": "command", "command": "echo start"},
			},
		},
		"mcpServers": map[string]any{
			"github": map[string]any{"command": "npx", "args": []any{"-y", "server-github"}},
		},
	}
}

func TestFromClaude(t *testing.T) {
	u := FromClaude(claudeSettings())

	assert.Equal(t, "claude", u.Platform)
	assert.Equal(t, map[string]string{"LOG_LEVEL": "debug", "RETRIES": "3"}, u.Env)
	assert.Equal(t, []claude.Hook{
		{Event: "SessionStart", Command: "echo start"},
		{Event: "PreToolUse", Command: "./lint.sh"},
	}, u.Hooks)
	require.Contains(t, u.MCP, "github")
	assert.Equal(t, "npx", u.MCP["github"].Command)
}

func TestToClaude(t *testing.T) {
	u := &UnifiedConfig{
		Model: "claude-opus-4",
		Env:   map[string]string{"A": "1"},
		Hooks: []claude.Hook{{Event: "AgentStop", Command: "notify"}},
		MCP:   map[string]*mcp.Server{"fs": {Name: "fs", Command: "mcp-fs"}},
	}

	assert.Equal(t, map[string]any{
		"model": "claude-opus-4",
		"env":   map[string]any{"A": "1"},
		"hooks": map[string]any{
			"AgentStop": []any{map[string]any{"type": "command", "command": "notify"}},
		},
		"mcpServers": map[string]any{"fs": map[string]any{"command": "mcp-fs"}},
	}, ToClaude(u))
}

func TestFromCodex(t *testing.T) {
	u := FromCodex(map[string]any{
		"model":           "o4-mini",
		"model_provider":  "openai",
		"sandbox_mode":    "read-only",
		"approval_policy": "untrusted",
		"shell_environment_policy": map[string]any{
			"set": map[string]any{"CI": "1"},
		},
		"mcp_servers": map[string]any{
			"docs": map[string]any{"command": "docs", "enabled": false, "enabled_tools": []any{"search"}},
		},
	})

	assert.Equal(t, "o4-mini", u.Model)
	assert.Equal(t, SandboxStrict, u.Sandbox)
	assert.Equal(t, ApprovalAlways, u.Approval)
	assert.Equal(t, map[string]string{"CI": "1"}, u.Env)
	assert.True(t, u.MCP["docs"].Disabled)
	assert.Equal(t, []string{"search"}, u.MCP["docs"].Tools)
}

func TestToCodex_Defaults(t *testing.T) {
	out := ToCodex(&UnifiedConfig{Platform: "claude"})

	assert.Equal(t, "o3", out["model"])
	assert.Equal(t, "openai", out["model_provider"])
	assert.Equal(t, "workspace-write", out["sandbox_mode"])
	assert.Equal(t, "on-failure", out["approval_policy"])
	assert.Equal(t, map[string]any{
		"project_doc_fallback_filenames": []any{"AGENTS.md", "CLAUDE.md", "TEAM_GUIDE.md"},
		"project_doc_max_bytes":          int64(65536),
	}, out["project"])
	assert.NotContains(t, out, "mcp_servers")
}

func TestToCodex_KeepsOpenAIModel(t *testing.T) {
	out := ToCodex(&UnifiedConfig{Platform: "opencode", Model: "gpt-4.1", Provider: "openai"})
	assert.Equal(t, "gpt-4.1", out["model"])

	out = ToCodex(&UnifiedConfig{Platform: "claude", Model: "claude-opus-4"})
	assert.Equal(t, "o3", out["model"])
}

func TestConvert_ClaudeToCodex(t *testing.T) {
	out, err := Convert(claudeSettings(), "claude", "codex")
	require.NoError(t, err)

	servers := out["mcp_servers"].(map[string]any)
	assert.Equal(t, map[string]any{
		"command": "npx",
		"args":    []any{"-y", "server-github"},
		"enabled": true,
	}, servers["github"])
	assert.Equal(t, map[string]any{"set": map[string]any{"LOG_LEVEL": "debug", "RETRIES": "3"}}, out["shell_environment_policy"])
}

func TestConvert_CodexToClaudeToCodex(t *testing.T) {
	codex := map[string]any{
		"model":           "o3",
		"sandbox_mode":    "danger-full-access",
		"approval_policy": "never",
	}
	claudeCfg, err := Convert(codex, "codex", "claude")
	require.NoError(t, err)
	assert.Empty(t, claudeCfg["hooks"])

	// Claude has no sandbox setting, so the policy falls back.
	back, err := Convert(claudeCfg, "claude", "codex")
	require.NoError(t, err)
	assert.Equal(t, "workspace-write", back["sandbox_mode"])
}

func TestConvert_OpenCode(t *testing.T) {
	out, err := Convert(map[string]any{
		"model":      map[string]any{"id": "gpt-4.1", "provider": "openai"},
		"mcpServers": map[string]any{"fs": map[string]any{"command": "mcp-fs"}},
	}, "opencode", "claude")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", out["model"])
	assert.Contains(t, out["mcpServers"], "fs")

	out, err = Convert(claudeSettings(), "claude", "opencode")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "claude-sonnet-4-20250514", "provider": "anthropic"}, out["model"])
}

func TestConvert_Unsupported(t *testing.T) {
	_, err := Convert(map[string]any{}, "zed", "claude")
	assert.ErrorIs(t, err, ErrUnsupportedConfig)

	_, err = Convert(map[string]any{}, "claude", "cursor")
	assert.ErrorIs(t, err, ErrUnsupportedConfig)
}

func TestSupported(t *testing.T) {
	assert.Equal(t, []string{"claude", "codex", "opencode"}, Supported())
	assert.True(t, Supports("codex"))
	assert.False(t, Supports("aider"))
}
