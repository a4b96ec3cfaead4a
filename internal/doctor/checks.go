package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/aibridge/internal/convert"
	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/paths"
	"github.com/thoreinstein/aibridge/internal/platform"
	"github.com/thoreinstein/aibridge/pkg/fileutil"
)

// PlatformCheck reports which platforms are configured in the project.
type PlatformCheck struct {
	target Target
}

var _ Check = (*PlatformCheck)(nil)

// NewPlatformCheck creates a new platform detection check.
func NewPlatformCheck(target Target) *PlatformCheck {
	return &PlatformCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *PlatformCheck) Name() string {
	return "platform-detection"
}

// Category returns the grouping for this check.
func (c *PlatformCheck) Category() string {
	return "platform"
}

// Run executes the platform detection check and returns its result.
func (c *PlatformCheck) Run() *CheckResult {
	detected := c.target.Registry.DetectPlatforms(c.target.ProjectDir)

	found := make(map[string]any, len(detected))
	for _, d := range detected {
		found[d.Platform] = d.ConfigPath
	}
	details := map[string]any{
		"detected":  found,
		"supported": c.target.Registry.Len(),
	}

	if len(detected) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "no assistant configuration found in " + c.target.ProjectDir,
			Details:  details,
			FixHint:  "run aibridge from the project root, or create CLAUDE.md to get started",
		}
	}

	names := make([]string, len(detected))
	for i, d := range detected {
		names[i] = d.Platform
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d platform(s) detected: %s", len(detected), strings.Join(names, ", ")),
		Details:  details,
	}
}

// ConfigSyntaxCheck parses every existing project config file with its
// platform's codec.
type ConfigSyntaxCheck struct {
	target Target
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck creates a new ConfigSyntaxCheck instance.
func NewConfigSyntaxCheck(target Target) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *ConfigSyntaxCheck) Name() string {
	return "config-syntax"
}

// Category returns the grouping for this check.
func (c *ConfigSyntaxCheck) Category() string {
	return "config"
}

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Platform string `json:"platform"`
	Path     string `json:"path"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// Run executes the syntax validation check.
func (c *ConfigSyntaxCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Details:  make(map[string]any),
	}

	var files []syntaxFileResult
	var errorCount int
	for _, a := range c.target.adapters() {
		p := projectConfigPath(c.target.ProjectDir, a)
		if p == "" || !paths.Exists(p) || paths.DirExists(p) {
			continue
		}
		fr := c.validateFile(a, p)
		if fr.Status == "error" {
			errorCount++
		}
		files = append(files, fr)
	}

	result.Details["files"] = files
	result.Details["checked"] = len(files)
	result.Details["errors"] = errorCount

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d config file(s) have syntax errors", errorCount)
		result.FixHint = "review the error details and fix the syntax in each file"
	case len(files) > 0:
		result.Message = fmt.Sprintf("%d config file(s) validated successfully", len(files))
	default:
		result.Status = SeverityInfo
		result.Message = "no config files found to validate"
	}
	return result
}

func (c *ConfigSyntaxCheck) validateFile(a platform.Adapter, path string) syntaxFileResult {
	fr := syntaxFileResult{Platform: a.Meta().Name, Path: path}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		fr.Status = "error"
		switch {
		case errors.Is(err, os.ErrPermission):
			fr.Message = fmt.Sprintf("permission denied: %v", err)
		case errors.Is(err, fileutil.ErrFileTooLarge):
			fr.Message = err.Error()
		default:
			fr.Message = fmt.Sprintf("read error: %v", err)
		}
		return fr
	}

	if _, err := a.ParseConfig(data); err != nil {
		fr.Status = "error"
		fr.Message = formatParseError(err, data)
		return fr
	}
	fr.Status = "pass"
	return fr
}

// formatParseError adds line and column information when the codec
// reports a position.
func formatParseError(err error, data []byte) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(data, int(syntaxErr.Offset))
		return fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(data, int(typeErr.Offset))
		return fmt.Sprintf("JSON type error at line %d, column %d: %s", line, col, typeErr.Error())
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
	}

	return err.Error()
}

// offsetToLineCol converts a byte offset to line and column numbers.
// Lines and columns are 1-indexed.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}

	line = 1
	lineStart := 0
	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}

// InstructionCheck loads the instruction document of every detected
// platform and reports documents that would convert to nothing.
type InstructionCheck struct {
	target Target
}

var _ Check = (*InstructionCheck)(nil)

// NewInstructionCheck creates a new InstructionCheck.
func NewInstructionCheck(target Target) *InstructionCheck {
	return &InstructionCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *InstructionCheck) Name() string {
	return "instructions"
}

// Category returns the grouping for this check.
func (c *InstructionCheck) Category() string {
	return "instructions"
}

// Run executes the check.
func (c *InstructionCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  make(map[string]any),
	}

	detected := c.target.Registry.DetectPlatforms(c.target.ProjectDir)
	if len(detected) == 0 {
		result.Status = SeverityInfo
		result.Message = "no platforms detected"
		return result
	}

	var levels []Severity
	var problems []string
	docs := make(map[string]any, len(detected))
	for _, d := range detected {
		file, err := d.Adapter.LoadInstructions(c.target.ProjectDir)
		switch {
		case err != nil:
			levels = append(levels, SeverityError)
			problems = append(problems, fmt.Sprintf("%s: %v", d.Platform, err))
		case file == nil:
			levels = append(levels, SeverityInfo)
			docs[d.Platform] = map[string]any{"path": "", "sections": 0}
		default:
			u := d.Adapter.ParseToUnified(file.Content)
			docs[d.Platform] = map[string]any{"path": file.Path, "sections": u.Len()}
			if u.Len() == 0 {
				levels = append(levels, SeverityWarning)
				problems = append(problems, fmt.Sprintf("%s: %s has no \"## \" sections", d.Platform, file.Path))
			}
		}
	}
	result.Details["documents"] = docs
	if len(problems) > 0 {
		result.Details["problems"] = problems
	}

	result.Status = worst(levels...)
	switch result.Status {
	case SeverityError:
		result.Message = fmt.Sprintf("%d instruction file(s) could not be read", len(problems))
	case SeverityWarning:
		result.Message = "some instruction files have no sections and will convert to an empty document"
		result.FixHint = "organize instructions under \"## \" headings"
	case SeverityInfo:
		result.Message = "some detected platforms have no instruction file"
	default:
		result.Message = fmt.Sprintf("%d instruction file(s) parsed", len(docs))
	}
	return result
}

// CodexPolicyCheck validates the typed fields of .codex/config.toml.
type CodexPolicyCheck struct {
	target Target
}

var _ Check = (*CodexPolicyCheck)(nil)

// NewCodexPolicyCheck creates a new CodexPolicyCheck.
func NewCodexPolicyCheck(target Target) *CodexPolicyCheck {
	return &CodexPolicyCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *CodexPolicyCheck) Name() string {
	return "codex-policy"
}

// Category returns the grouping for this check.
func (c *CodexPolicyCheck) Category() string {
	return "config"
}

// Run executes the check.
func (c *CodexPolicyCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
	}

	a := c.target.Registry.Get("codex")
	if a == nil {
		result.Message = "codex platform unavailable"
		return result
	}
	p := projectConfigPath(c.target.ProjectDir, a)
	if p == "" || !paths.Exists(p) {
		result.Message = "no Codex config"
		return result
	}

	data, err := fileutil.ReadFileWithLimit(p)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("reading %s: %v", p, err)
		return result
	}
	cfg, unknown, err := convert.DecodeCodexConfig(data)
	if err != nil {
		// Reported by config-syntax.
		result.Message = "Codex config does not parse"
		return result
	}

	result.Details = map[string]any{
		"path":            p,
		"sandbox_mode":    cfg.SandboxMode,
		"approval_policy": cfg.ApprovalPolicy,
	}
	if len(unknown) > 0 {
		result.Details["unrecognized_keys"] = unknown
	}

	if problems := cfg.Problems(); len(problems) > 0 {
		result.Status = SeverityWarning
		result.Message = strings.Join(problems, "; ")
		result.FixHint = fmt.Sprintf("valid sandbox modes: %s, %s, %s",
			convert.CodexReadOnly, convert.CodexWorkspaceWrite, convert.CodexDangerFullAccess)
		return result
	}

	result.Status = SeverityPass
	result.Message = "Codex sandbox and approval settings are valid"
	if len(unknown) > 0 {
		result.Message += fmt.Sprintf(" (%d unrecognized key(s) left as is)", len(unknown))
	}
	return result
}

// SecretsCheck looks for plaintext credentials in project config files,
// which tend to get committed. Files holding one that other users can read
// are queued for chmod 600.
type SecretsCheck struct {
	ModeFixer

	target Target
}

var (
	_ Check = (*SecretsCheck)(nil)
	_ Fixer = (*SecretsCheck)(nil)
)

// NewSecretsCheck creates a new SecretsCheck.
func NewSecretsCheck(target Target) *SecretsCheck {
	return &SecretsCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *SecretsCheck) Name() string {
	return "plaintext-secrets"
}

// Category returns the grouping for this check.
func (c *SecretsCheck) Category() string {
	return "security"
}

// Run executes the check.
func (c *SecretsCheck) Run() *CheckResult {
	c.reset()
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
	}

	found := make(map[string]any)
	var exposed []string
	for _, a := range c.target.adapters() {
		keys := findSecrets(a.LoadConfig(c.target.ProjectDir))
		if len(keys) == 0 {
			continue
		}
		found[a.Meta().Name] = keys

		p := projectConfigPath(c.target.ProjectDir, a)
		if p == "" || runtime.GOOS == "windows" {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.Mode().Perm()&^secretMask != 0 {
			c.queue(p, secretMask)
			exposed = append(exposed, p)
		}
	}

	if len(found) == 0 {
		result.Message = "no plaintext secrets in project config"
		return result
	}
	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("%d config file(s) contain plaintext secrets", len(found))
	result.Details = map[string]any{"keys": found}
	result.FixHint = "reference environment variables (e.g. \"${GITHUB_TOKEN}\") instead of literal values"
	if len(exposed) > 0 {
		result.Details["readable_by_others"] = exposed
		result.Fixable = true
		result.FixHint += "; restrict access with chmod 600"
	}
	return result
}

// projectConfigPath resolves a's project config inside projectDir, or "".
func projectConfigPath(projectDir string, a platform.Adapter) string {
	rel := a.ConfigPaths().Project
	if rel == "" {
		return ""
	}
	p, err := paths.ProjectPath(projectDir, rel)
	if err != nil {
		return ""
	}
	return p
}
