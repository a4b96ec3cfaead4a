package convert

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// CodexConfig is the subset of Codex's config.toml that conversion reads
// and writes.
type CodexConfig struct {
	Model          string                    `toml:"model,omitempty"`
	ModelProvider  string                    `toml:"model_provider,omitempty"`
	SandboxMode    string                    `toml:"sandbox_mode,omitempty"`
	ApprovalPolicy string                    `toml:"approval_policy,omitempty"`
	Project        CodexProject              `toml:"project"`
	Features       map[string]bool           `toml:"features,omitempty"`
	ShellEnv       *CodexShellEnv            `toml:"shell_environment_policy,omitempty"`
	MCPServers     map[string]CodexMCPServer `toml:"mcp_servers,omitempty"`
}

// CodexProject controls which project documents Codex loads.
type CodexProject struct {
	DocFallbackFilenames []string `toml:"project_doc_fallback_filenames,omitempty"`
	DocMaxBytes          int64    `toml:"project_doc_max_bytes,omitempty"`
}

// CodexShellEnv sets variables for commands Codex runs.
type CodexShellEnv struct {
	Set map[string]string `toml:"set,omitempty"`
}

// CodexMCPServer is one [mcp_servers.<name>] table.
type CodexMCPServer struct {
	Command      string            `toml:"command,omitempty"`
	Args         []string          `toml:"args,omitempty"`
	URL          string            `toml:"url,omitempty"`
	Enabled      *bool             `toml:"enabled,omitempty"`
	EnabledTools []string          `toml:"enabled_tools,omitempty"`
	Env          map[string]string `toml:"env,omitempty"`
}

// DecodeCodexConfig parses config.toml. It also returns the keys that are
// not part of CodexConfig, in file order.
func DecodeCodexConfig(data []byte) (*CodexConfig, []string, error) {
	var cfg CodexConfig
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing Codex config")
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return &cfg, unknown, nil
}

// EncodeCodexConfig renders cfg as TOML without indenting nested tables.
func EncodeCodexConfig(cfg *CodexConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "encoding Codex config")
	}
	return buf.Bytes(), nil
}

// Problems lists values Codex would reject.
func (c *CodexConfig) Problems() []string {
	var out []string
	if c.SandboxMode != "" && !KnownCodexSandbox(c.SandboxMode) {
		out = append(out, "unknown sandbox_mode "+quote(c.SandboxMode))
	}
	if c.ApprovalPolicy != "" && !KnownCodexApproval(c.ApprovalPolicy) {
		out = append(out, "unknown approval_policy "+quote(c.ApprovalPolicy))
	}
	if c.Project.DocMaxBytes < 0 {
		out = append(out, "project_doc_max_bytes must not be negative")
	}
	for _, name := range sortedKeys(c.MCPServers) {
		s := c.MCPServers[name]
		if s.Command == "" && s.URL == "" {
			out = append(out, "mcp_servers."+name+" has neither command nor url")
		}
	}
	return out
}

func quote(s string) string {
	return `"` + s + `"`
}
