package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/thoreinstein/aibridge/internal/paths"
	"github.com/thoreinstein/aibridge/pkg/fileutil"
)

// Version is recorded in manifests. It is set at build time via ldflags.
var Version = "dev"

const manifestName = "manifest.json"

// idTimeFormat sorts lexically in time order.
const idTimeFormat = "20060102T150405Z"

// now is replaced in tests.
var now = time.Now

// Manager creates, restores and prunes snapshots.
type Manager struct {
	rootDir        string
	retentionCount int
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of snapshots Trim keeps per platform.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager returns a Manager rooted at paths.BackupDir unless overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RootDir returns the directory snapshots are stored under.
func (m *Manager) RootDir() string {
	return m.rootDir
}

// RetentionCount returns the number of snapshots Trim keeps.
func (m *Manager) RetentionCount() int {
	return m.retentionCount
}

// Backup snapshots files for platform. Paths may be files or directories;
// directories are copied recursively and missing paths are skipped. When
// projectDir is set, files inside it are stored under their project-relative
// path. Returns ErrNothingToBackUp when no path exists.
func (m *Manager) Backup(platform, projectDir string, targets []string) (_ *Manifest, err error) {
	if platform == "" {
		return nil, errors.New("platform is required")
	}

	created := now().UTC()
	id := newID(created)
	dir := m.backupPath(platform, id)
	// A snapshot without a manifest is invisible to List, so Prune and Trim
	// could never remove it.
	defer func() {
		if err != nil {
			_ = os.RemoveAll(dir)
		}
	}()

	var files []File
	for _, p := range targets {
		expanded := paths.ExpandHome(p)

		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", p)
		}

		if info.IsDir() {
			dirFiles, err := m.backupDirectory(expanded, projectDir, dir)
			if err != nil {
				return nil, errors.Wrapf(err, "backing up directory %s", p)
			}
			files = append(files, dirFiles...)
			continue
		}

		f, err := m.backupFile(expanded, projectDir, dir)
		if err != nil {
			return nil, errors.Wrapf(err, "backing up file %s", p)
		}
		files = append(files, *f)
	}

	if len(files) == 0 {
		return nil, ErrNothingToBackUp
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   created,
		Platform:    platform,
		ProjectDir:  projectDir,
		Files:       files,
		ToolVersion: Version,
		ID:          id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}
	return manifest, nil
}

func (m *Manager) backupFile(src, projectDir, dir string) (*File, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", src)
	}

	rel := storagePath(abs, projectDir)
	dst := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, err := copyFile(abs, dst)
	if err != nil {
		return nil, err
	}
	return &File{
		OriginalPath: abs,
		RelPath:      rel,
		SHA256Hash:   hash,
		Mode:         mode,
	}, nil
}

func (m *Manager) backupDirectory(srcDir, projectDir, dir string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := m.backupFile(path, projectDir, dir)
		if err != nil {
			return err
		}
		files = append(files, *f)
		return nil
	})
	return files, err
}

// Restore copies every file of a snapshot back to its original location
// after checking its hash.
func (m *Manager) Restore(platform, id string) (*Manifest, error) {
	manifest, err := m.Get(platform, id)
	if err != nil {
		return nil, err
	}

	dir := m.backupPath(platform, id)
	for _, f := range manifest.Files {
		src := filepath.Join(dir, filepath.FromSlash(f.RelPath))

		hash, err := hashFile(src)
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		if hash != f.SHA256Hash {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", f.RelPath)
		}

		if err := os.MkdirAll(filepath.Dir(f.OriginalPath), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", f.OriginalPath)
		}
		if _, _, err := copyFile(src, f.OriginalPath); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
		if err := os.Chmod(f.OriginalPath, f.Mode); err != nil {
			return nil, errors.Wrapf(err, "setting permissions for %s", f.OriginalPath)
		}
	}
	return manifest, nil
}

// Platforms returns the platforms that have a backup directory, sorted.
func (m *Manager) Platforms() ([]string, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// List returns the snapshots of platform, newest first. Directories
// without a readable manifest are skipped.
func (m *Manager) List(platform string) ([]Manifest, error) {
	if platform == "" {
		return nil, errors.New("platform is required")
	}

	entries, err := os.ReadDir(m.platformBackupDir(platform))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(platform, entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Prune removes all but the keep most recent snapshots of platform and
// returns the IDs it removed.
func (m *Manager) Prune(platform string, keep int) ([]string, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	manifests, err := m.List(platform)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil, nil
		}
		return nil, err
	}

	var removed []string
	for i := keep; i < len(manifests); i++ {
		id := manifests[i].ID
		if err := os.RemoveAll(m.backupPath(platform, id)); err != nil {
			return removed, errors.Wrapf(err, "removing backup %s", id)
		}
		removed = append(removed, id)
	}
	return removed, nil
}

// Trim prunes platform down to the configured retention count.
func (m *Manager) Trim(platform string) ([]string, error) {
	return m.Prune(platform, m.retentionCount)
}

// Get returns the manifest of one snapshot.
func (m *Manager) Get(platform, id string) (*Manifest, error) {
	if platform == "" {
		return nil, errors.New("platform is required")
	}
	if id == "" || !filepath.IsLocal(id) || strings.ContainsAny(id, `/\`) {
		return nil, errors.Newf("invalid backup ID %q", id)
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(platform, id), manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

func (m *Manager) backupPath(platform, id string) string {
	return filepath.Join(m.platformBackupDir(platform), id)
}

func (m *Manager) platformBackupDir(platform string) string {
	return filepath.Join(m.rootDir, platform)
}

// newID returns "<UTC timestamp>-<8 hex chars>".
func newID(t time.Time) string {
	return t.Format(idTimeFormat) + "-" + uuid.NewString()[:8]
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst and returns the SHA256 hash and mode of src.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = info.Mode().Perm()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// storagePath returns where abs is kept inside a snapshot: its path
// relative to projectDir when it lies inside the project, otherwise the
// absolute path under "_external". The result is slash-separated and has
// no colons.
func storagePath(abs, projectDir string) string {
	if projectDir != "" {
		if root, err := filepath.Abs(projectDir); err == nil {
			if rel, err := filepath.Rel(root, abs); err == nil && filepath.IsLocal(rel) {
				return filepath.ToSlash(rel)
			}
		}
	}

	clean := filepath.ToSlash(filepath.Clean(abs))
	clean = strings.ReplaceAll(clean, ":", "")
	return "_external/" + strings.TrimLeft(clean, "/")
}
