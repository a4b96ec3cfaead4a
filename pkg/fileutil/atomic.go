// Package fileutil provides file system helpers for writing instruction and
// config files without ever exposing a partially written file.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// DefaultFilePerm is the mode of newly created instruction and config files.
const DefaultFilePerm os.FileMode = 0o644

// AtomicWriteFile writes data to path through a synced temp file in the same
// directory that is then renamed over path. Readers see the old content or
// the new one, never a mix.
//
// The parent directory must already exist; see WriteFileAll.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// WriteFileAll writes data to path atomically, creating missing parent
// directories. An existing file keeps its mode, so a settings file the user
// locked down to 0600 stays that way; new files get DefaultFilePerm. When
// path is a symlink, as with configs kept in a dotfiles repo, the link's
// target is rewritten and the link itself is left in place.
func WriteFileAll(path string, data []byte) error {
	target, perm, err := resolveTarget(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}
	return AtomicWriteFile(target, data, perm)
}

// resolveTarget follows a symlink at path and returns the file to replace
// along with the mode it should end up with.
func resolveTarget(path string) (string, os.FileMode, error) {
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return path, DefaultFilePerm, nil
	case err != nil:
		return "", 0, errors.Wrapf(err, "stat %s", path)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(path)
		if errors.Is(err, os.ErrNotExist) {
			// dangling link: create the file it points at
			dest, lerr := os.Readlink(path)
			if lerr != nil {
				return "", 0, errors.Wrapf(lerr, "reading link %s", path)
			}
			if !filepath.IsAbs(dest) {
				dest = filepath.Join(filepath.Dir(path), dest)
			}
			return dest, DefaultFilePerm, nil
		}
		if err != nil {
			return "", 0, errors.Wrapf(err, "resolving %s", path)
		}
		return resolveTarget(resolved)
	}

	if info.IsDir() {
		return "", 0, errors.Newf("%s is a directory", path)
	}
	return path, info.Mode().Perm(), nil
}

// AtomicWriteJSON writes v as two-space indented JSON followed by a newline.
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return AtomicWriteFile(path, append(data, '\n'), DefaultFilePerm)
}
