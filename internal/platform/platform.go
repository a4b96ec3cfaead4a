package platform

import (
	"slices"

	"github.com/thoreinstein/aibridge/internal/instruction"
)

// ConfigPaths holds the project-relative and global config file locations.
// An empty string means the platform has no config at that scope.
type ConfigPaths struct {
	// Project is slash-separated and relative to the project root.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// Global may start with "~/".
	Global string `json:"global,omitempty" yaml:"global,omitempty"`
}

// ConfigSpec describes a platform's settings file.
type ConfigSpec struct {
	Format string      `json:"format" yaml:"format"`
	Paths  ConfigPaths `json:"paths" yaml:"paths"`
}

// InstructionSpec describes a platform's instruction document.
type InstructionSpec struct {
	// Files are candidate paths relative to the project root, in priority order.
	Files  []string `json:"files" yaml:"files"`
	Format string   `json:"format" yaml:"format"`
}

// Meta is the static description of a platform.
type Meta struct {
	Name        string          `json:"name" yaml:"name"`
	DisplayName string          `json:"displayName" yaml:"displayName"`
	Vendor      string          `json:"vendor" yaml:"vendor"`
	Icon        string          `json:"icon,omitempty" yaml:"icon,omitempty"`
	Config      ConfigSpec      `json:"config" yaml:"config"`
	Instruction InstructionSpec `json:"instruction" yaml:"instruction"`
}

// Clone returns a copy that shares no slices with m.
func (m Meta) Clone() Meta {
	m.Instruction.Files = slices.Clone(m.Instruction.Files)
	return m
}

// Detection reports whether a platform is configured in a project.
// ConfigPath is the file or directory that triggered detection.
type Detection struct {
	Detected   bool   `json:"detected"`
	ConfigPath string `json:"configPath,omitempty"`
}

// InstructionFile is an instruction document read from disk.
type InstructionFile struct {
	Path    string
	Content string
}

// Adapter is the contract every platform implements.
//
// Implementations must be stateless and safe for concurrent use.
type Adapter interface {
	// Meta returns a copy of the platform's static description.
	Meta() Meta

	// ConfigPaths returns the project and global config locations.
	ConfigPaths() ConfigPaths

	// InstructionFiles returns the instruction file candidates in priority order.
	InstructionFiles() []string

	// ConfigFormat returns the config format name.
	ConfigFormat() string

	// ProjectDirName returns the directory holding the project config,
	// or "" when the config sits at the project root or does not exist.
	ProjectDirName() string

	// ParseConfig decodes raw config bytes.
	ParseConfig(data []byte) (map[string]any, error)

	// StringifyConfig encodes a config map.
	StringifyConfig(cfg map[string]any) ([]byte, error)

	// ParseToUnified converts an instruction document to the neutral form.
	// It never fails; unrecognized input yields an instruction with no sections.
	ParseToUnified(content string) *instruction.Instruction

	// SerializeFromUnified renders the neutral form as this platform's
	// instruction document.
	SerializeFromUnified(u *instruction.Instruction) string

	// DetectPlatform reports whether the platform is configured in projectDir.
	DetectPlatform(projectDir string) Detection

	// LoadConfig reads the project config. It returns nil when the file is
	// missing or cannot be parsed.
	LoadConfig(projectDir string) map[string]any

	// SaveConfig writes the project config and returns the path written.
	SaveConfig(projectDir string, cfg map[string]any) (string, error)

	// LoadInstructions returns the first existing instruction file, or nil
	// when there is none.
	LoadInstructions(projectDir string) (*InstructionFile, error)

	// SaveInstructions writes content to fileName, or to the first candidate
	// when fileName is empty, and returns the path written.
	SaveInstructions(projectDir, content, fileName string) (string, error)

	// DefaultConfig returns a fresh starter config for the platform.
	DefaultConfig() map[string]any
}

// ConvertInstructionTo parses content with src and renders it for target.
func ConvertInstructionTo(src Adapter, content string, target Adapter) string {
	return target.SerializeFromUnified(src.ParseToUnified(content))
}

// SameSource returns the text to emit when u was parsed by the platform
// named name: the raw source when present, otherwise the generic Markdown
// rendering. ok is false when u came from another platform.
func SameSource(u *instruction.Instruction, name string) (text string, ok bool) {
	if u == nil || u.SourceFormat() != name {
		return "", false
	}
	if u.RawContent != "" {
		return u.RawContent, true
	}
	return u.ToMarkdown(), true
}
