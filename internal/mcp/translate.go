package mcp

import (
	"fmt"
	"maps"
	"slices"
)

// Keys understood in each platform's server entries. Everything else goes
// to Server.Extra.
var (
	claudeKeys = []string{"command", "args", "url", "type", "env", "headers", "disabled"}
	codexKeys  = []string{"command", "args", "url", "env", "http_headers", "enabled", "enabled_tools"}
)

// FromClaude reads a Claude Code style "mcpServers" object. Entries that
// are not objects are skipped.
func FromClaude(v any) map[string]*Server {
	entries, _ := v.(map[string]any)
	servers := make(map[string]*Server, len(entries))
	for name, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		disabled, _ := entry["disabled"].(bool)
		servers[name] = &Server{
			Name:      name,
			Command:   stringValue(entry["command"]),
			Args:      stringSlice(entry["args"]),
			URL:       stringValue(entry["url"]),
			Transport: stringValue(entry["type"]),
			Env:       stringMap(entry["env"]),
			Headers:   stringMap(entry["headers"]),
			Disabled:  disabled,
			Extra:     extra(entry, claudeKeys),
		}
	}
	return servers
}

// ToClaude renders servers as a Claude Code style "mcpServers" object.
// Claude has no tool allow-list, so Tools is dropped.
func ToClaude(servers map[string]*Server) map[string]any {
	out := make(map[string]any, len(servers))
	for name, s := range servers {
		entry := maps.Clone(s.Extra)
		if entry == nil {
			entry = make(map[string]any)
		}
		setString(entry, "command", s.Command)
		setStrings(entry, "args", s.Args)
		setString(entry, "url", s.URL)
		setString(entry, "type", s.Transport)
		setStringMap(entry, "env", s.Env)
		setStringMap(entry, "headers", s.Headers)
		if s.Disabled {
			entry["disabled"] = true
		}
		out[name] = entry
	}
	return out
}

// FromCodex reads a Codex "mcp_servers" table. A missing enabled flag means
// enabled.
func FromCodex(v any) map[string]*Server {
	entries, _ := v.(map[string]any)
	servers := make(map[string]*Server, len(entries))
	for name, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		enabled, isBool := entry["enabled"].(bool)
		servers[name] = &Server{
			Name:     name,
			Command:  stringValue(entry["command"]),
			Args:     stringSlice(entry["args"]),
			URL:      stringValue(entry["url"]),
			Env:      stringMap(entry["env"]),
			Headers:  stringMap(entry["http_headers"]),
			Tools:    stringSlice(entry["enabled_tools"]),
			Disabled: isBool && !enabled,
			Extra:    extra(entry, codexKeys),
		}
	}
	return servers
}

// ToCodex renders servers as a Codex "mcp_servers" table. The enabled flag
// is always written.
func ToCodex(servers map[string]*Server) map[string]any {
	out := make(map[string]any, len(servers))
	for name, s := range servers {
		entry := maps.Clone(s.Extra)
		if entry == nil {
			entry = make(map[string]any)
		}
		setString(entry, "command", s.Command)
		setStrings(entry, "args", s.Args)
		setString(entry, "url", s.URL)
		setStringMap(entry, "env", s.Env)
		setStringMap(entry, "http_headers", s.Headers)
		setStrings(entry, "enabled_tools", s.Tools)
		entry["enabled"] = !s.Disabled
		out[name] = entry
	}
	return out
}

func extra(entry map[string]any, known []string) map[string]any {
	var out map[string]any
	for k, v := range entry {
		if slices.Contains(known, k) {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// stringSlice accepts []any and []string. Non-string elements are formatted
// with %v so numeric args survive.
func stringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			} else if e != nil {
				out = append(out, fmt.Sprint(e))
			}
		}
		return out
	default:
		return nil
	}
}

func stringMap(v any) map[string]string {
	switch t := v.(type) {
	case map[string]string:
		return maps.Clone(t)
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, e := range t {
			if s, ok := e.(string); ok {
				out[k] = s
			} else if e != nil {
				out[k] = fmt.Sprint(e)
			}
		}
		return out
	default:
		return nil
	}
}

func setString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func setStrings(m map[string]any, key string, v []string) {
	if len(v) == 0 {
		return
	}
	out := make([]any, len(v))
	for i, s := range v {
		out[i] = s
	}
	m[key] = out
}

func setStringMap(m map[string]any, key string, v map[string]string) {
	if len(v) == 0 {
		return
	}
	out := make(map[string]any, len(v))
	for k, s := range v {
		out[k] = s
	}
	m[key] = out
}
