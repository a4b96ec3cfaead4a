// Package claude implements the platform adapter for Claude Code.
//
// Claude Code keeps settings in .claude/settings.json and project
// instructions in CLAUDE.md. Documents converted from other platforms get a
// Claude-style header with a last-updated stamp; documents that came from
// Claude are written back untouched.
//
// The package also models Claude's hook configuration: [HookEvents] lists
// the lifecycle events and [FormatHookConfig] renders hooks into the shape
// stored under the "hooks" key of settings.json.
package claude
