package claude

import "slices"

// Hook lifecycle events understood by Claude Code.
const (
	EventSessionStart     = "SessionStart"
	EventSessionEnd       = "SessionEnd"
	EventPreToolUse       = "PreToolUse"
	EventPostToolUse      = "PostToolUse"
	EventUserPromptSubmit = "UserPromptSubmit"
	EventAgentStop        = "AgentStop"
	EventPreCompact       = "PreCompact"
)

// HookTypeCommand is the only hook type Claude Code runs.
const HookTypeCommand = "command"

var hookEvents = []string{
	EventSessionStart,
	EventSessionEnd,
	EventPreToolUse,
	EventPostToolUse,
	EventUserPromptSubmit,
	EventAgentStop,
	EventPreCompact,
}

// Hook is a shell command bound to a lifecycle event.
type Hook struct {
	Event   string `json:"event" yaml:"event"`
	Command string `json:"command" yaml:"command"`
}

// HookEvents returns the supported lifecycle events in lifecycle order.
func HookEvents() []string {
	return slices.Clone(hookEvents)
}

// IsHookEvent reports whether event is a supported lifecycle event.
func IsHookEvent(event string) bool {
	return slices.Contains(hookEvents, event)
}

// FormatHookConfig groups hooks by event in the settings.json shape:
//
//	{"PreToolUse": [{"type": "command", "command": "..."}]}
//
// Hooks keep their relative order within an event.
func FormatHookConfig(hooks []Hook) map[string]any {
	cfg := make(map[string]any)
	for _, h := range hooks {
		entries, _ := cfg[h.Event].([]any)
		cfg[h.Event] = append(entries, map[string]any{
			"type":    HookTypeCommand,
			"command": h.Command,
		})
	}
	return cfg
}

// ParseHookConfig is the inverse of FormatHookConfig. Entries of another
// type or without a command are skipped. Events are visited in lifecycle
// order, then unknown events sorted by name.
func ParseHookConfig(cfg map[string]any) []Hook {
	events := HookEvents()
	for event := range cfg {
		if !IsHookEvent(event) {
			events = append(events, event)
		}
	}
	slices.Sort(events[len(hookEvents):])

	var hooks []Hook
	for _, event := range events {
		entries, _ := cfg[event].([]any)
		for _, e := range entries {
			entry, _ := e.(map[string]any)
			if t, _ := entry["type"].(string); t != HookTypeCommand {
				continue
			}
			if cmd, _ := entry["command"].(string); cmd != "" {
				hooks = append(hooks, Hook{Event: event, Command: cmd})
			}
		}
	}
	return hooks
}
