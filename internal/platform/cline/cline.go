// Package cline implements the platform adapter for Cline and Roo Code.
//
// Both extensions read a single .clinerules Markdown file at the project
// root; their other settings live in VS Code and are out of reach.
package cline

import (
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/paths"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Name is the platform identifier.
const Name = "cline"

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Cline/Roo",
	Vendor:      "VS Code Extension",
	Icon:        "🤝",
	Config: platform.ConfigSpec{
		Format: format.NameMarkdown,
		Paths:  platform.ConfigPaths{Project: ".clinerules"},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{".clinerules", "CLAUDE.md", ".cline/rules.md"},
		Format: format.NameMarkdown,
	},
}

// Adapter is the Cline platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns a Cline adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.Markdown{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// DetectPlatform implements platform.Adapter. Only .clinerules counts:
// a shared CLAUDE.md says nothing about Cline being in use.
func (a *Adapter) DetectPlatform(projectDir string) platform.Detection {
	p, err := paths.ProjectPath(projectDir, meta.Config.Paths.Project)
	if err != nil || !paths.Exists(p) {
		return platform.Detection{}
	}
	return platform.Detection{Detected: true, ConfigPath: p}
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{format.KeyInstructions: ""}
}
