package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCodexConfig(t *testing.T) {
	src := `model = "o3"
sandbox_mode = "workspace-write"
approval_policy = "on-failure"
profile = "fast"

[project]
project_doc_max_bytes = 65536

[mcp_servers.docs]
command = "docs-mcp"
enabled = false
`
	cfg, unknown, err := DecodeCodexConfig([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "o3", cfg.Model)
	assert.EqualValues(t, 65536, cfg.Project.DocMaxBytes)
	require.NotNil(t, cfg.MCPServers["docs"].Enabled)
	assert.False(t, *cfg.MCPServers["docs"].Enabled)
	assert.Equal(t, []string{"profile"}, unknown)
	assert.Empty(t, cfg.Problems())

	_, _, err = DecodeCodexConfig([]byte("model = "))
	assert.Error(t, err)
}

func TestEncodeCodexConfig_RoundTrip(t *testing.T) {
	u := &UnifiedConfig{
		Platform: "claude",
		Sandbox:  SandboxStrict,
		Env:      map[string]string{"CI": "1"},
	}
	data, err := EncodeCodexConfig(CodexConfigFor(u))
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `sandbox_mode = "read-only"`)
	assert.Contains(t, text, "[project]")
	assert.Less(t, strings.Index(text, "sandbox_mode"), strings.Index(text, "[project]"), "scalars precede tables")

	back, unknown, err := DecodeCodexConfig(data)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.Equal(t, "o3", back.Model)
	assert.Equal(t, map[string]string{"CI": "1"}, back.ShellEnv.Set)
}

func TestCodexConfig_Problems(t *testing.T) {
	cfg := &CodexConfig{
		SandboxMode:    "yolo",
		ApprovalPolicy: "sometimes",
		Project:        CodexProject{DocMaxBytes: -1},
		MCPServers:     map[string]CodexMCPServer{"empty": {}},
	}
	assert.Equal(t, []string{
		`unknown sandbox_mode "yolo"`,
		`unknown approval_policy "sometimes"`,
		"project_doc_max_bytes must not be negative",
		"mcp_servers.empty has neither command nor url",
	}, cfg.Problems())
}
