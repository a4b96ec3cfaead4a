package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of snapshots kept per platform.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no snapshots exist for the platform or ID.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrNothingToBackUp indicates none of the requested paths exist.
	ErrNothingToBackUp = errors.New("no files to back up")

	// ErrBackupCorrupted indicates a stored file's SHA256 hash does not
	// match the manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one snapshot. It is stored as manifest.json in the
// snapshot directory.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	// Platform is the conversion target the snapshot was taken for.
	Platform string `json:"platform"`

	// ProjectDir is the project the files belong to, if known.
	ProjectDir string `json:"project_dir,omitempty"`

	Files       []File `json:"files"`
	ToolVersion string `json:"tool_version"`

	// ID names the snapshot directory. It is filled in when loading and
	// not stored in the JSON.
	ID string `json:"-"`
}

// File is one file in a snapshot.
type File struct {
	// OriginalPath is the absolute path the file was copied from.
	OriginalPath string `json:"original_path"`

	// RelPath is the slash-separated location inside the snapshot directory.
	RelPath string `json:"rel_path"`

	SHA256Hash string      `json:"sha256_hash"`
	Mode       fs.FileMode `json:"mode"`
}
