package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "aibridge"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or escapes its root.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the permission for directories created inside a project.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used. It is a no-op for "" and ".".
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" || path == "." {
		return nil
	}
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" if it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// AppConfigDir returns <ConfigHome>/aibridge.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// BackupDir returns <DataHome>/aibridge/backups.
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// ExpandHome expands a leading "~" or "~/" to the user's home directory.
// Other paths, and paths when the home directory is unknown, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := Home()
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ProjectPath joins a slash-separated, project-relative path onto projectDir.
// It rejects absolute paths and paths that climb out of the project.
func ProjectPath(projectDir, rel string) (string, error) {
	if rel == "" {
		return "", errors.Wrap(ErrInvalidPath, "empty relative path")
	}
	local := filepath.FromSlash(rel)
	if filepath.IsAbs(local) || !filepath.IsLocal(local) {
		return "", errors.Wrapf(ErrInvalidPath, "%q escapes the project directory", rel)
	}
	return filepath.Join(projectDir, local), nil
}

// Exists reports whether path exists (file or directory).
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
