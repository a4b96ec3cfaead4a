package platform

import (
	"log/slog"
	"path"
	"slices"

	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/instruction"
	"github.com/thoreinstein/aibridge/internal/paths"
	"github.com/thoreinstein/aibridge/pkg/fileutil"
)

// Sentinel errors for file operations.
var (
	// ErrNoProjectConfig is returned by SaveConfig for platforms without a
	// project-level config file.
	ErrNoProjectConfig = errors.New("platform has no project config")

	// ErrNoInstructionFiles is returned by SaveInstructions for platforms
	// without instruction file candidates.
	ErrNoInstructionFiles = errors.New("platform has no instruction files")
)

// Base implements the parts of [Adapter] that follow directly from a
// platform's [Meta] and config codec. Concrete adapters embed *Base and
// override ParseToUnified and SerializeFromUnified as needed.
type Base struct {
	meta  Meta
	codec format.Codec
}

// NewBase returns a Base for meta. A nil codec is resolved from
// meta.Config.Format and falls back to JSON.
func NewBase(meta Meta, codec format.Codec) *Base {
	if codec == nil {
		c, err := format.ByName(meta.Config.Format)
		if err != nil {
			c = format.JSON{}
		}
		codec = c
	}
	return &Base{meta: meta.Clone(), codec: codec}
}

// Name returns the platform name.
func (b *Base) Name() string { return b.meta.Name }

// Meta implements Adapter.
func (b *Base) Meta() Meta { return b.meta.Clone() }

// ConfigPaths implements Adapter.
func (b *Base) ConfigPaths() ConfigPaths { return b.meta.Config.Paths }

// InstructionFiles implements Adapter.
func (b *Base) InstructionFiles() []string { return slices.Clone(b.meta.Instruction.Files) }

// ConfigFormat implements Adapter.
func (b *Base) ConfigFormat() string { return b.meta.Config.Format }

// ProjectDirName implements Adapter.
func (b *Base) ProjectDirName() string {
	project := b.meta.Config.Paths.Project
	if project == "" {
		return ""
	}
	dir := path.Dir(project)
	if dir == "." {
		return ""
	}
	return dir
}

// ParseConfig implements Adapter.
func (b *Base) ParseConfig(data []byte) (map[string]any, error) {
	cfg, err := b.codec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s config", b.meta.Name)
	}
	return cfg, nil
}

// StringifyConfig implements Adapter.
func (b *Base) StringifyConfig(cfg map[string]any) ([]byte, error) {
	data, err := b.codec.Encode(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s config", b.meta.Name)
	}
	return data, nil
}

// ParseToUnified implements Adapter with plain Markdown parsing.
func (b *Base) ParseToUnified(content string) *instruction.Instruction {
	u := instruction.FromMarkdown(content)
	u.SetMetadata(instruction.MetaSourceFormat, b.meta.Name)
	return u
}

// SerializeFromUnified implements Adapter with plain Markdown rendering.
// Adapters whose files are bare Markdown (cline, windsurf, opencode, trae,
// zed, antigravity) use it as is; the others override it to add headers,
// footers or frontmatter.
func (b *Base) SerializeFromUnified(u *instruction.Instruction) string {
	if text, ok := SameSource(u, b.meta.Name); ok {
		return text
	}
	return u.ToMarkdown()
}

// DetectPlatform implements Adapter. The project config file is checked
// first, then the project config directory, then each instruction file.
func (b *Base) DetectPlatform(projectDir string) Detection {
	if p := b.projectConfigPath(projectDir); p != "" && paths.Exists(p) {
		return Detection{Detected: true, ConfigPath: p}
	}

	if dir := b.ProjectDirName(); dir != "" {
		if p, err := paths.ProjectPath(projectDir, dir); err == nil && paths.Exists(p) {
			return Detection{Detected: true, ConfigPath: p}
		}
	}

	for _, name := range b.meta.Instruction.Files {
		if p, err := paths.ProjectPath(projectDir, name); err == nil && paths.Exists(p) {
			return Detection{Detected: true, ConfigPath: p}
		}
	}

	return Detection{}
}

// LoadConfig implements Adapter. Read and parse failures are logged as
// warnings.
func (b *Base) LoadConfig(projectDir string) map[string]any {
	p := b.projectConfigPath(projectDir)
	if p == "" || !paths.Exists(p) {
		return nil
	}

	data, err := fileutil.ReadFileWithLimit(p)
	if err != nil {
		slog.Default().Warn("failed to read config", "platform", b.meta.Name, "path", p, "error", err)
		return nil
	}

	cfg, err := b.ParseConfig(data)
	if err != nil {
		slog.Default().Warn("failed to parse config", "platform", b.meta.Name, "path", p, "error", err)
		return nil
	}
	return cfg
}

// SaveConfig implements Adapter.
func (b *Base) SaveConfig(projectDir string, cfg map[string]any) (string, error) {
	if b.meta.Config.Paths.Project == "" {
		return "", errors.Wrapf(ErrNoProjectConfig, "%s", b.meta.Name)
	}
	p, err := paths.ProjectPath(projectDir, b.meta.Config.Paths.Project)
	if err != nil {
		return "", err
	}

	data, err := b.StringifyConfig(cfg)
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteFileAll(p, data); err != nil {
		return "", errors.Wrapf(err, "saving %s config", b.meta.Name)
	}
	return p, nil
}

// LoadInstructions implements Adapter.
func (b *Base) LoadInstructions(projectDir string) (*InstructionFile, error) {
	for _, name := range b.meta.Instruction.Files {
		p, err := paths.ProjectPath(projectDir, name)
		if err != nil || !paths.Exists(p) || paths.DirExists(p) {
			continue
		}
		data, err := fileutil.ReadFileWithLimit(p)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s instructions", b.meta.Name)
		}
		return &InstructionFile{Path: p, Content: string(data)}, nil
	}
	return nil, nil
}

// SaveInstructions implements Adapter.
func (b *Base) SaveInstructions(projectDir, content, fileName string) (string, error) {
	if fileName == "" {
		if len(b.meta.Instruction.Files) == 0 {
			return "", errors.Wrapf(ErrNoInstructionFiles, "%s", b.meta.Name)
		}
		fileName = b.meta.Instruction.Files[0]
	}

	p, err := paths.ProjectPath(projectDir, fileName)
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteFileAll(p, []byte(content)); err != nil {
		return "", errors.Wrapf(err, "saving %s instructions", b.meta.Name)
	}
	return p, nil
}

// DefaultConfig implements Adapter with an empty config.
func (b *Base) DefaultConfig() map[string]any {
	return map[string]any{}
}

func (b *Base) projectConfigPath(projectDir string) string {
	if b.meta.Config.Paths.Project == "" {
		return ""
	}
	p, err := paths.ProjectPath(projectDir, b.meta.Config.Paths.Project)
	if err != nil {
		return ""
	}
	return p
}
