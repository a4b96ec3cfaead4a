package fileutil

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// MaxFileSize caps every instruction and config file aibridge reads. Real
// rule files are a few KiB; anything near 1MiB is a mistake such as a
// generated bundle checked in as CLAUDE.md.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned when a file exceeds MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads path, failing with ErrFileTooLarge rather than
// loading an oversized file. The size is checked while reading, so files
// that grow after being opened are caught too.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	switch {
	case err != nil:
		return nil, errors.Wrapf(err, "reading %s", path)
	case len(data) > MaxFileSize:
		return nil, errors.Wrapf(ErrFileTooLarge, "%s", path)
	}
	return data, nil
}
