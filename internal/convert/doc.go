// Package convert translates settings that mean the same thing on different
// assistants but are spelled differently.
//
// The sandbox and approval tables map the neutral vocabulary (strict,
// normal, permissive; always, on-error, on-request, never) to Codex's
// values and back. Unknown values map to a conservative default instead of
// failing.
//
// [UnifiedConfig] carries the settings that can be converted between
// platforms: model, sandbox, approval policy, environment, hooks and MCP
// servers. [Convert] routes a decoded config through it:
//
//	out, err := convert.Convert(claudeSettings, "claude", "codex")
//
// Only platforms with a converter take part; the rest return
// [ErrUnsupportedConfig].
package convert
