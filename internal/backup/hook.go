package backup

import (
	"sync"

	"github.com/thoreinstein/aibridge/internal/errors"
)

// Session takes at most one snapshot per platform, so a command that writes
// several files for the same target backs them up together on first write.
// It is safe for concurrent use.
type Session struct {
	mgr        *Manager
	projectDir string

	mu    sync.Mutex
	taken map[string]*Manifest
}

// NewSession returns a Session that snapshots files of projectDir with mgr.
func NewSession(mgr *Manager, projectDir string) *Session {
	return &Session{
		mgr:        mgr,
		projectDir: projectDir,
		taken:      make(map[string]*Manifest),
	}
}

// Ensure snapshots targets for platform unless this session already did.
// It returns the snapshot, or nil when none of the targets exist yet. A
// failed snapshot is not remembered, so the caller may retry.
func (s *Session) Ensure(platform string, targets []string) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.taken[platform]; ok {
		return m, nil
	}

	m, err := s.mgr.Backup(platform, s.projectDir, targets)
	switch {
	case errors.Is(err, ErrNothingToBackUp):
		s.taken[platform] = nil
		return nil, nil
	case err != nil:
		return nil, errors.Wrapf(err, "creating backup for %s", platform)
	}

	s.taken[platform] = m
	return m, nil
}

// Taken returns the snapshots created so far, keyed by platform.
func (s *Session) Taken() map[string]*Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*Manifest, len(s.taken))
	for k, v := range s.taken {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
