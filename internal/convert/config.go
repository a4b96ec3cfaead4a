package convert

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aibridge/internal/mcp"
	"github.com/thoreinstein/aibridge/internal/platform/claude"
	"github.com/thoreinstein/aibridge/internal/platform/opencode"
)

// Platforms with config converters.
const (
	platformClaude   = "claude"
	platformCodex    = "codex"
	platformOpenCode = "opencode"
)

// DefaultCodexDocMaxBytes is written as project_doc_max_bytes.
const DefaultCodexDocMaxBytes = 65536

// CodexDocFallbacks are the instruction files Codex falls back to, written
// into converted configs so Codex still finds CLAUDE.md or TEAM_GUIDE.md.
var CodexDocFallbacks = []string{"AGENTS.md", "CLAUDE.md", "TEAM_GUIDE.md"}

// ErrUnsupportedConfig is returned by Convert for platforms without a
// config converter.
var ErrUnsupportedConfig = errors.New("config conversion not supported")

// UnifiedConfig holds the settings that carry across platforms.
type UnifiedConfig struct {
	Platform string                 `json:"platform"`
	Model    string                 `json:"model,omitempty"`
	Provider string                 `json:"provider,omitempty"`
	Sandbox  Sandbox                `json:"sandbox,omitempty"`
	Approval Approval               `json:"approval,omitempty"`
	Env      map[string]string      `json:"env,omitempty"`
	Hooks    []claude.Hook          `json:"hooks,omitempty"`
	MCP      map[string]*mcp.Server `json:"mcp,omitempty"`
}

// ConfigConverter reads a platform's decoded config into a UnifiedConfig
// and writes one back.
type ConfigConverter struct {
	From func(cfg map[string]any) *UnifiedConfig
	To   func(u *UnifiedConfig) map[string]any
}

var converters = map[string]ConfigConverter{
	platformClaude:   {From: FromClaude, To: ToClaude},
	platformCodex:    {From: FromCodex, To: ToCodex},
	platformOpenCode: {From: FromOpenCode, To: ToOpenCode},
}

// Supported returns the platforms with config converters, sorted.
func Supported() []string {
	return slices.Sorted(maps.Keys(converters))
}

// Supports reports whether platform has a config converter.
func Supports(platform string) bool {
	_, ok := converters[platform]
	return ok
}

// Convert translates a decoded config between platforms.
func Convert(cfg map[string]any, from, to string) (map[string]any, error) {
	src, ok := converters[from]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedConfig, "from %s", from)
	}
	dst, ok := converters[to]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedConfig, "to %s", to)
	}
	return dst.To(src.From(cfg)), nil
}

// FromClaude reads Claude Code settings.json.
func FromClaude(cfg map[string]any) *UnifiedConfig {
	hooks, _ := cfg["hooks"].(map[string]any)
	return &UnifiedConfig{
		Platform: platformClaude,
		Model:    str(cfg["model"]),
		Env:      strMap(cfg["env"]),
		Hooks:    claude.ParseHookConfig(hooks),
		MCP:      mcp.FromClaude(cfg["mcpServers"]),
	}
}

// ToClaude renders Claude Code settings.json.
func ToClaude(u *UnifiedConfig) map[string]any {
	out := map[string]any{
		"env":        anyMap(u.Env),
		"hooks":      claude.FormatHookConfig(u.Hooks),
		"mcpServers": mcp.ToClaude(u.MCP),
	}
	if u.Model != "" {
		out["model"] = u.Model
	}
	return out
}

// FromCodex reads Codex config.toml.
func FromCodex(cfg map[string]any) *UnifiedConfig {
	u := &UnifiedConfig{
		Platform: platformCodex,
		Model:    str(cfg["model"]),
		Provider: str(cfg["model_provider"]),
		Sandbox:  FromCodexSandbox(CodexSandbox(str(cfg["sandbox_mode"]))),
		Approval: FromCodexApproval(CodexApproval(str(cfg["approval_policy"]))),
		MCP:      mcp.FromCodex(cfg["mcp_servers"]),
	}
	if policy, ok := cfg["shell_environment_policy"].(map[string]any); ok {
		u.Env = strMap(policy["set"])
	}
	return u
}

// ToCodex renders Codex config.toml. Hooks have no Codex equivalent and are
// dropped. MCP servers keep headers and unknown keys, which CodexConfig
// does not model.
func ToCodex(u *UnifiedConfig) map[string]any {
	out := CodexConfigFor(u).Map()
	if len(u.MCP) > 0 {
		out["mcp_servers"] = mcp.ToCodex(u.MCP)
	}
	return out
}

// CodexConfigFor builds the typed Codex config for u.
func CodexConfigFor(u *UnifiedConfig) *CodexConfig {
	c := &CodexConfig{
		Model:          u.Model,
		ModelProvider:  DefaultCodexProvider,
		SandboxMode:    string(ToCodexSandbox(u.Sandbox)),
		ApprovalPolicy: string(ToCodexApproval(u.Approval)),
		Project: CodexProject{
			DocFallbackFilenames: slices.Clone(CodexDocFallbacks),
			DocMaxBytes:          DefaultCodexDocMaxBytes,
		},
		Features: map[string]bool{
			"shell_tool":         true,
			"web_search_request": true,
		},
	}
	if c.Model == "" || (u.Platform != platformCodex && u.Provider != DefaultCodexProvider) {
		// Models named for another vendor mean nothing to Codex.
		c.Model = DefaultCodexModel
	}
	if len(u.Env) > 0 {
		c.ShellEnv = &CodexShellEnv{Set: maps.Clone(u.Env)}
	}
	if len(u.MCP) > 0 {
		c.MCPServers = make(map[string]CodexMCPServer, len(u.MCP))
		for name, s := range u.MCP {
			enabled := !s.Disabled
			c.MCPServers[name] = CodexMCPServer{
				Command:      s.Command,
				Args:         slices.Clone(s.Args),
				URL:          s.URL,
				Enabled:      &enabled,
				EnabledTools: slices.Clone(s.Tools),
				Env:          maps.Clone(s.Env),
			}
		}
	}
	return c
}

// FromOpenCode reads opencode.json.
func FromOpenCode(cfg map[string]any) *UnifiedConfig {
	u := &UnifiedConfig{
		Platform: platformOpenCode,
		Env:      strMap(cfg["env"]),
		MCP:      mcp.FromClaude(cfg["mcpServers"]),
	}
	switch m := cfg["model"].(type) {
	case map[string]any:
		u.Model = str(m["id"])
		u.Provider = str(m["provider"])
	case string:
		u.Model = m
	}
	return u
}

// ToOpenCode renders opencode.json. A model is only carried over when its
// provider is known; otherwise OpenCode's default model is used.
func ToOpenCode(u *UnifiedConfig) map[string]any {
	model, provider := u.Model, u.Provider
	if model == "" || provider == "" {
		model, provider = opencode.DefaultModel, opencode.DefaultProvider
	}
	out := map[string]any{
		"model": map[string]any{
			"id":       model,
			"provider": provider,
		},
		"instructions": []any{"CLAUDE.md"},
		"mcpServers":   mcp.ToClaude(u.MCP),
	}
	if len(u.Env) > 0 {
		out["env"] = anyMap(u.Env)
	}
	return out
}

// Map returns c in the generic shape used by config codecs.
func (c *CodexConfig) Map() map[string]any {
	out := make(map[string]any)
	setStr(out, "model", c.Model)
	setStr(out, "model_provider", c.ModelProvider)
	setStr(out, "sandbox_mode", c.SandboxMode)
	setStr(out, "approval_policy", c.ApprovalPolicy)

	project := make(map[string]any)
	if len(c.Project.DocFallbackFilenames) > 0 {
		project["project_doc_fallback_filenames"] = anySlice(c.Project.DocFallbackFilenames)
	}
	if c.Project.DocMaxBytes != 0 {
		project["project_doc_max_bytes"] = c.Project.DocMaxBytes
	}
	if len(project) > 0 {
		out["project"] = project
	}

	if len(c.Features) > 0 {
		features := make(map[string]any, len(c.Features))
		for k, v := range c.Features {
			features[k] = v
		}
		out["features"] = features
	}
	if c.ShellEnv != nil && len(c.ShellEnv.Set) > 0 {
		out["shell_environment_policy"] = map[string]any{"set": anyMap(c.ShellEnv.Set)}
	}

	if len(c.MCPServers) > 0 {
		servers := make(map[string]any, len(c.MCPServers))
		for name, s := range c.MCPServers {
			entry := make(map[string]any)
			setStr(entry, "command", s.Command)
			if len(s.Args) > 0 {
				entry["args"] = anySlice(s.Args)
			}
			setStr(entry, "url", s.URL)
			if s.Enabled != nil {
				entry["enabled"] = *s.Enabled
			}
			if len(s.EnabledTools) > 0 {
				entry["enabled_tools"] = anySlice(s.EnabledTools)
			}
			if len(s.Env) > 0 {
				entry["env"] = anyMap(s.Env)
			}
			servers[name] = entry
		}
		out["mcp_servers"] = servers
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, e := range m {
		if s, ok := e.(string); ok {
			out[k] = s
		} else if e != nil {
			out[k] = fmt.Sprint(e)
		}
	}
	return out
}

func anyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func anySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func setStr(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
