// Package builtin lists the platform adapters compiled into aibridge and
// provides a process-wide registry over them.
//
// Adding a platform means writing its adapter package and adding one line
// to the table below.
package builtin

import (
	"sync"

	"github.com/thoreinstein/aibridge/internal/instruction"
	"github.com/thoreinstein/aibridge/internal/platform"
	"github.com/thoreinstein/aibridge/internal/platform/aider"
	"github.com/thoreinstein/aibridge/internal/platform/antigravity"
	"github.com/thoreinstein/aibridge/internal/platform/claude"
	"github.com/thoreinstein/aibridge/internal/platform/cline"
	"github.com/thoreinstein/aibridge/internal/platform/codex"
	"github.com/thoreinstein/aibridge/internal/platform/cursor"
	"github.com/thoreinstein/aibridge/internal/platform/opencode"
	"github.com/thoreinstein/aibridge/internal/platform/trae"
	"github.com/thoreinstein/aibridge/internal/platform/windsurf"
	"github.com/thoreinstein/aibridge/internal/platform/zed"
)

var registrations = []platform.Registration{
	{Name: aider.Name, New: aider.Factory},
	{Name: antigravity.Name, New: antigravity.Factory},
	{Name: claude.Name, New: claude.Factory},
	{Name: cline.Name, New: cline.Factory},
	{Name: codex.Name, New: codex.Factory},
	{Name: cursor.Name, New: cursor.Factory},
	{Name: opencode.Name, New: opencode.Factory},
	{Name: trae.Name, New: trae.Factory},
	{Name: windsurf.Name, New: windsurf.Factory},
	{Name: zed.Name, New: zed.Factory},
}

// Registrations returns the built-in platforms sorted by name.
func Registrations() []platform.Registration {
	return append([]platform.Registration(nil), registrations...)
}

// Names returns the built-in platform names sorted. It does not build any
// adapter.
func Names() []string {
	names := make([]string, len(registrations))
	for i, reg := range registrations {
		names[i] = reg.Name
	}
	return names
}

// IsBuiltin reports whether name is a built-in platform.
func IsBuiltin(name string) bool {
	for _, reg := range registrations {
		if reg.Name == name {
			return true
		}
	}
	return false
}

// NewRegistry returns a fresh registry over the built-in platforms.
func NewRegistry() *platform.Registry {
	return platform.NewRegistry(Registrations())
}

var (
	defaultOnce     sync.Once
	defaultRegistry *platform.Registry
)

// Default returns the shared registry, creating it on first use.
func Default() *platform.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Adapter returns the named adapter from the shared registry.
func Adapter(name string) (platform.Adapter, error) {
	return Default().Adapter(name)
}

// List returns the platform names in the shared registry.
func List() []string {
	return Default().List()
}

// DetectPlatforms returns the platforms configured in projectDir.
func DetectPlatforms(projectDir string) []platform.Detected {
	return Default().DetectPlatforms(projectDir)
}

// ConvertInstructions converts an instruction document between platforms.
func ConvertInstructions(content, from, to string) (string, error) {
	return Default().ConvertInstructions(content, from, to)
}

// ParseInstructions parses content with the named platform's adapter.
func ParseInstructions(content, from string) (*instruction.Instruction, error) {
	a, err := Adapter(from)
	if err != nil {
		return nil, err
	}
	return a.ParseToUnified(content), nil
}
