package doctor

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/thoreinstein/aibridge/internal/paths"
)

// PathPermissionCheck validates permissions of the project and global
// config files of every platform, and of the project config directories.
type PathPermissionCheck struct {
	ModeFixer

	target Target
}

var (
	_ Check = (*PathPermissionCheck)(nil)
	_ Fixer = (*PathPermissionCheck)(nil)
)

// NewPathPermissionCheck creates a new path permission check.
func NewPathPermissionCheck(target Target) *PathPermissionCheck {
	return &PathPermissionCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *PathPermissionCheck) Name() string {
	return "path-permissions"
}

// Category returns the grouping for this check.
func (c *PathPermissionCheck) Category() string {
	return "filesystem"
}

// Run executes the path and permission diagnostic check.
func (c *PathPermissionCheck) Run() *CheckResult {
	var issues []pathIssue
	var checked int
	c.reset()

	for _, a := range c.target.adapters() {
		name := a.Meta().Name

		if dir := a.ProjectDirName(); dir != "" {
			if p, err := paths.ProjectPath(c.target.ProjectDir, dir); err == nil && paths.DirExists(p) {
				issues = append(issues, c.checkDirectory(p, name)...)
				checked++
			}
		}

		if p := projectConfigPath(c.target.ProjectDir, a); p != "" && paths.Exists(p) {
			issues = append(issues, c.checkFile(p, name)...)
			checked++
		}

		if global := a.ConfigPaths().Global; global != "" {
			p := paths.ExpandHome(global)
			if paths.Exists(p) {
				issues = append(issues, c.checkFile(p, name)...)
				checked++
			}
		}
	}

	for _, issue := range issues {
		if !issue.Fixable {
			continue
		}
		if issue.Type == "directory" {
			c.queue(issue.Path, dirMask)
		} else {
			c.queue(issue.Path, fileMask)
		}
	}
	return c.buildResult(issues, checked)
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Platform    string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string // octal representation if available
	Fixable     bool
	FixHint     string
}

func (c *PathPermissionCheck) checkFile(path, platformName string) []pathIssue {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Platform: platformName,
			Type:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		}}
	}
	if info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Platform: platformName,
			Type:     "file",
			Problem:  "expected file but found directory",
			Severity: SeverityError,
		}}
	}

	f, err := os.Open(path)
	if err != nil {
		return []pathIssue{{
			Path:        path,
			Platform:    platformName,
			Type:        "file",
			Problem:     "file is not readable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "chmod 644 " + path,
		}}
	}
	f.Close()

	// Unix permission bits mean nothing on Windows.
	if runtime.GOOS == "windows" {
		return nil
	}

	var issues []pathIssue
	perm := info.Mode().Perm()
	switch {
	case perm&0o002 != 0:
		issues = append(issues, pathIssue{
			Path:        path,
			Platform:    platformName,
			Type:        "file",
			Problem:     "file is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 644 " + path,
		})
	case perm&^fileMask != 0:
		issues = append(issues, pathIssue{
			Path:     path,
			Platform: platformName,
			Type:     "file",
			Problem: fmt.Sprintf("file has overly permissive permissions (mode %s, expected %s or less)",
				formatPermissions(info.Mode()), formatPermissions(fileMask)),
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 644 " + path,
		})
	}
	return issues
}

func (c *PathPermissionCheck) checkDirectory(path, platformName string) []pathIssue {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	var issues []pathIssue
	if writable, err := isDirectoryWritable(path); err != nil || !writable {
		issues = append(issues, pathIssue{
			Path:        path,
			Platform:    platformName,
			Type:        "directory",
			Problem:     "directory is not writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "chmod u+w " + path,
		})
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        path,
			Platform:    platformName,
			Type:        "directory",
			Problem:     "directory is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 755 " + path,
		})
	}
	return issues
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func isDirectoryWritable(path string) (bool, error) {
	tmp, err := os.CreateTemp(path, ".aibridge-doctor-*")
	if err != nil {
		return false, err
	}
	name := tmp.Name()
	tmp.Close()
	os.Remove(name)
	return true, nil
}

func (c *PathPermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d paths have valid permissions", checked),
		}
	}

	levels := make([]Severity, 0, len(issues))
	details := make([]map[string]any, 0, len(issues))
	var fixHints []string
	for _, issue := range issues {
		levels = append(levels, issue.Severity)

		d := map[string]any{
			"path":     issue.Path,
			"platform": issue.Platform,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			d["permissions"] = issue.Permissions
		}
		if issue.FixHint != "" {
			d["fix_hint"] = issue.FixHint
		}
		details = append(details, d)

		if issue.Fixable && issue.FixHint != "" {
			fixHints = append(fixHints, issue.FixHint)
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   worst(levels...),
		Message:  fmt.Sprintf("found %d permission issue(s) across %d paths", len(issues), checked),
		Details: map[string]any{
			"checked_paths": checked,
			"issue_count":   len(issues),
			"issues":        details,
		},
		Fixable: c.CanFix(),
		FixHint: strings.Join(fixHints, "; "),
	}
}

// formatPermissions returns a human-readable permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
