package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/aibridge/internal/errors"
)

// Fixer is implemented by checks that can repair what their last Run found.
// "aibridge doctor --fix" applies every Fixer returned by Runner.Fixers and
// then runs the checks again.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult is the outcome of one repair.
type FixResult struct {
	Path        string
	Fixed       bool
	Description string
	Error       error
}

// Permission masks applied by fixes. A fix only ever clears bits, so two
// checks tightening the same file converge on the stricter mode.
const (
	fileMask   os.FileMode = 0o644
	dirMask    os.FileMode = 0o755
	secretMask os.FileMode = 0o600
)

type modeChange struct {
	path string
	keep os.FileMode
}

// ModeFixer repairs permission bits. Checks embed it and queue the paths
// they flag during Run.
type ModeFixer struct {
	pending []modeChange
}

var _ Fixer = (*ModeFixer)(nil)

// reset drops the queue of a previous run.
func (f *ModeFixer) reset() {
	f.pending = nil
}

// queue asks for path to keep only the bits in keep. Queuing a path twice
// intersects the masks.
func (f *ModeFixer) queue(path string, keep os.FileMode) {
	for i := range f.pending {
		if f.pending[i].path == path {
			f.pending[i].keep &= keep
			return
		}
	}
	f.pending = append(f.pending, modeChange{path: path, keep: keep})
}

// CanFix implements Fixer.
func (f *ModeFixer) CanFix() bool {
	return len(f.pending) > 0
}

// Pending returns the number of queued paths.
func (f *ModeFixer) Pending() int {
	return len(f.pending)
}

// Fix implements Fixer. Symlinks are left alone: the mode of a dotfile
// managed elsewhere is not ours to change. The queue is empty afterwards.
func (f *ModeFixer) Fix() []FixResult {
	results := make([]FixResult, 0, len(f.pending))
	for _, c := range f.pending {
		results = append(results, c.apply())
	}
	f.pending = nil
	return results
}

func (c modeChange) apply() FixResult {
	res := FixResult{Path: c.path}

	info, err := os.Lstat(c.path)
	if err != nil {
		res.Description = "cannot stat"
		res.Error = errors.Wrapf(err, "stat %s", c.path)
		return res
	}
	if info.Mode()&os.ModeSymlink != 0 {
		res.Description = "symlink left unchanged"
		res.Error = errors.Newf("%s is a symlink", c.path)
		return res
	}

	from := info.Mode().Perm()
	to := from & c.keep
	if to == from {
		res.Fixed = true
		res.Description = fmt.Sprintf("mode %04o already fine", from)
		return res
	}
	if err := os.Chmod(c.path, to); err != nil {
		res.Description = fmt.Sprintf("chmod %04o failed", to)
		res.Error = errors.Wrapf(err, "chmod %04o %s", to, c.path)
		return res
	}

	res.Fixed = true
	res.Description = fmt.Sprintf("chmod %04o -> %04o", from, to)
	return res
}
