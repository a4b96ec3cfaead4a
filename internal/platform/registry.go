package platform

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/thoreinstein/aibridge/internal/errors"
)

// Sentinel errors for registry operations.
var (
	// ErrUnknownPlatform is returned when a name has no registered adapter.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrPlatformAlreadyRegistered is returned when attempting to register
	// a platform with a name that is already in use.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned when attempting to register
	// a platform with an invalid name.
	ErrInvalidPlatformName = errors.New("invalid platform name")
)

// Factory builds an adapter.
type Factory func() (Adapter, error)

// Registration pairs a platform name with the factory that builds its adapter.
type Registration struct {
	Name string
	New  Factory
}

// Detected is a platform found in a project.
type Detected struct {
	Platform   string  `json:"platform"`
	Adapter    Adapter `json:"-"`
	ConfigPath string  `json:"configPath"`
}

// Registry maps platform names to adapters. Adapters are built from the
// registrations on first use and cached until Refresh.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	regs       []Registration
	adapters   map[string]Adapter
	order      []string
	discovered bool
}

// NewRegistry creates a registry over regs. No factory runs until the
// registry is first queried.
func NewRegistry(regs []Registration) *Registry {
	return &Registry{
		regs: append([]Registration(nil), regs...),
	}
}

// Register adds a registration. Returns an error if the name is invalid or
// already registered. The factory runs on the next query.
func (r *Registry) Register(reg Registration) error {
	if !validName(reg.Name) {
		return errors.Wrapf(ErrInvalidPlatformName, "%q", reg.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.regs {
		if existing.Name == reg.Name {
			return errors.Wrapf(ErrPlatformAlreadyRegistered, "%q", reg.Name)
		}
	}
	r.regs = append(r.regs, reg)
	r.discovered = false
	return nil
}

// Refresh discards cached adapters and rebuilds them from the registrations.
func (r *Registry) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discover()
}

// Get returns the adapter for name, or nil.
func (r *Registry) Get(name string) Adapter {
	r.ensure()
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapters[name]
}

// UnknownPlatformError names a platform with no working adapter. Role is
// "source" or "target" when the name came from a conversion, and empty
// otherwise. It unwraps to ErrUnknownPlatform.
type UnknownPlatformError struct {
	Role string
	Name string
}

func (e *UnknownPlatformError) Error() string {
	if e.Role == "" {
		return "unknown platform: " + e.Name
	}
	return "unknown " + e.Role + " platform: " + e.Name
}

func (e *UnknownPlatformError) Unwrap() error {
	return ErrUnknownPlatform
}

// Adapter returns the adapter for name or an error wrapping ErrUnknownPlatform.
func (r *Registry) Adapter(name string) (Adapter, error) {
	if a := r.Get(name); a != nil {
		return a, nil
	}
	return nil, &UnknownPlatformError{Name: name}
}

// Meta returns the metadata of the named platform.
func (r *Registry) Meta(name string) (Meta, bool) {
	a := r.Get(name)
	if a == nil {
		return Meta{}, false
	}
	return a.Meta(), true
}

// Has reports whether name has a working adapter.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// Len returns the number of working adapters.
func (r *Registry) Len() int {
	r.ensure()
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// List returns the names of working adapters in registration order.
func (r *Registry) List() []string {
	r.ensure()
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// ListWithMeta returns the metadata of working adapters in registration order.
func (r *Registry) ListWithMeta() []Meta {
	r.ensure()
	r.mu.RLock()
	defer r.mu.RUnlock()

	metas := make([]Meta, 0, len(r.order))
	for _, name := range r.order {
		metas = append(metas, r.adapters[name].Meta())
	}
	return metas
}

// DetectPlatforms returns every platform configured in projectDir, in
// registration order.
func (r *Registry) DetectPlatforms(projectDir string) []Detected {
	r.ensure()
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []Detected
	for _, name := range r.order {
		a := r.adapters[name]
		if d := a.DetectPlatform(projectDir); d.Detected {
			found = append(found, Detected{Platform: name, Adapter: a, ConfigPath: d.ConfigPath})
		}
	}
	return found
}

// ConvertInstructions converts an instruction document from one platform's
// format to another's.
func (r *Registry) ConvertInstructions(content, from, to string) (string, error) {
	src := r.Get(from)
	if src == nil {
		return "", &UnknownPlatformError{Role: "source", Name: from}
	}
	dst := r.Get(to)
	if dst == nil {
		return "", &UnknownPlatformError{Role: "target", Name: to}
	}
	return ConvertInstructionTo(src, content, dst), nil
}

func (r *Registry) ensure() {
	r.mu.RLock()
	done := r.discovered
	r.mu.RUnlock()
	if done {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.discovered {
		r.discover()
	}
}

// discover rebuilds the adapter cache. Callers must hold the write lock.
func (r *Registry) discover() {
	logger := slog.Default()

	r.adapters = make(map[string]Adapter, len(r.regs))
	r.order = r.order[:0]

	for _, reg := range r.regs {
		if hidden(reg.Name) {
			logger.Debug("skipping hidden platform", "platform", reg.Name)
			continue
		}
		if _, dup := r.adapters[reg.Name]; dup {
			logger.Warn("skipping duplicate platform", "platform", reg.Name)
			continue
		}

		a, err := build(reg)
		if err != nil {
			logger.Warn("skipping platform", "platform", reg.Name, "error", err)
			continue
		}
		r.adapters[reg.Name] = a
		r.order = append(r.order, reg.Name)
	}

	r.discovered = true
}

// build runs one factory and checks what it returned. A panicking factory
// is reported as an error.
func build(reg Registration) (a Adapter, err error) {
	if reg.Name == "" {
		return nil, errors.Wrap(ErrInvalidPlatformName, "empty name")
	}
	if reg.New == nil {
		return nil, errors.New("no factory")
	}

	defer func() {
		if rec := recover(); rec != nil {
			a = nil
			err = errors.Newf("factory panicked: %v", rec)
		}
	}()

	a, err = reg.New()
	if err != nil {
		return nil, errors.Wrap(err, "factory failed")
	}
	if a == nil {
		return nil, errors.New("factory returned no adapter")
	}

	name := a.Meta().Name
	switch {
	case name == "":
		return nil, errors.Wrap(ErrInvalidPlatformName, "adapter meta has no name")
	case name != reg.Name:
		return nil, errors.Newf("adapter reports name %q, registered as %q", name, reg.Name)
	}
	return a, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// validName accepts lowercase identifiers such as "claude" or "open-code".
func validName(name string) bool {
	if name == "" || hidden(name) {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
