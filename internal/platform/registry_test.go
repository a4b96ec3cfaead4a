package platform

import (
	stderrors "errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aibridge/internal/errors"
)

func okFactory(name string) Factory {
	return func() (Adapter, error) {
		return NewBase(testMeta(name), nil), nil
	}
}

func TestRegistry_LazyDiscovery(t *testing.T) {
	calls := 0
	r := NewRegistry([]Registration{{
		Name: "acme",
		New: func() (Adapter, error) {
			calls++
			return NewBase(testMeta("acme"), nil), nil
		},
	}})

	assert.Equal(t, 0, calls, "factories must not run before first query")
	assert.True(t, r.Has("acme"))
	r.List()
	r.Get("acme")
	assert.Equal(t, 1, calls, "adapters are cached")

	first := r.Get("acme")
	r.Refresh()
	assert.Equal(t, 2, calls)
	assert.NotSame(t, first, r.Get("acme"))
}

func TestRegistry_FaultIsolation(t *testing.T) {
	var typedNil *Base
	r := NewRegistry([]Registration{
		{Name: "alpha", New: okFactory("alpha")},
		{Name: "broken", New: func() (Adapter, error) { return nil, errors.New("boom") }},
		{Name: "panicky", New: func() (Adapter, error) { panic("kaboom") }},
		{Name: "empty", New: func() (Adapter, error) { return nil, nil }},
		{Name: "typednil", New: func() (Adapter, error) { return typedNil, nil }},
		{Name: "nameless", New: okFactory("")},
		{Name: "liar", New: okFactory("someone-else")},
		{Name: "nofactory"},
		{Name: "_template", New: okFactory("_template")},
		{Name: ".hidden", New: okFactory(".hidden")},
		{Name: "alpha", New: okFactory("alpha")},
		{Name: "omega", New: okFactory("omega")},
	})

	assert.Equal(t, []string{"alpha", "omega"}, r.List())
	assert.Equal(t, 2, r.Len())
	for _, name := range []string{"broken", "panicky", "empty", "typednil", "nameless", "liar", "nofactory", "_template", ".hidden"} {
		assert.False(t, r.Has(name), name)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry([]Registration{
		{Name: "alpha", New: okFactory("alpha")},
		{Name: "beta", New: okFactory("beta")},
	})

	a, err := r.Adapter("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", a.Meta().Name)

	_, err = r.Adapter("gamma")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	assert.Contains(t, err.Error(), "gamma")

	assert.Nil(t, r.Get("gamma"))

	meta, ok := r.Meta("beta")
	assert.True(t, ok)
	assert.Equal(t, "Test beta", meta.DisplayName)

	_, ok = r.Meta("gamma")
	assert.False(t, ok)

	metas := r.ListWithMeta()
	require.Len(t, metas, 2)
	assert.Equal(t, "alpha", metas[0].Name)
	assert.Equal(t, "beta", metas[1].Name)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry([]Registration{{Name: "alpha", New: okFactory("alpha")}})
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Register(Registration{Name: "beta", New: okFactory("beta")}))
	assert.Equal(t, []string{"alpha", "beta"}, r.List())

	err := r.Register(Registration{Name: "alpha", New: okFactory("alpha")})
	assert.ErrorIs(t, err, ErrPlatformAlreadyRegistered)

	for _, name := range []string{"", "_x", ".x", "Upper", "has space"} {
		err := r.Register(Registration{Name: name, New: okFactory(name)})
		assert.ErrorIs(t, err, ErrInvalidPlatformName, "%q", name)
	}
}

func TestRegistry_DetectPlatforms(t *testing.T) {
	r := NewRegistry([]Registration{
		{Name: "alpha", New: okFactory("alpha")},
		{Name: "beta", New: okFactory("beta")},
		{Name: "gamma", New: okFactory("gamma")},
	})

	dir := t.TempDir()
	assert.Empty(t, r.DetectPlatforms(dir))

	gammaCfg := writeFile(t, dir, ".gamma/settings.json", "{}")
	writeFile(t, dir, ".alpha/RULES.md", "# A")

	found := r.DetectPlatforms(dir)
	require.Len(t, found, 2)
	assert.Equal(t, "alpha", found[0].Platform)
	assert.Equal(t, filepath.Join(dir, ".alpha"), found[0].ConfigPath)
	assert.Equal(t, "gamma", found[1].Platform)
	assert.Equal(t, gammaCfg, found[1].ConfigPath)
	assert.NotNil(t, found[1].Adapter)
}

func TestRegistry_ConvertInstructions(t *testing.T) {
	r := NewRegistry([]Registration{
		{Name: "alpha", New: okFactory("alpha")},
		{Name: "beta", New: okFactory("beta")},
	})

	out, err := r.ConvertInstructions("# T\n\n## A\n\nalpha", "alpha", "beta")
	require.NoError(t, err)
	assert.Equal(t, "# T\n\n## A\n\nalpha", out)

	_, err = r.ConvertInstructions("x", "nope", "beta")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	assert.EqualError(t, err, "unknown source platform: nope")

	_, err = r.ConvertInstructions("x", "alpha", "nope")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	assert.EqualError(t, err, "unknown target platform: nope")
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry([]Registration{
		{Name: "alpha", New: okFactory("alpha")},
		{Name: "beta", New: okFactory("beta")},
	})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%5 == 0 {
				r.Refresh()
			}
			if !r.Has("alpha") || len(r.List()) != 2 {
				t.Error("registry lost an adapter under concurrent use")
			}
		}()
	}
	wg.Wait()
}

func TestUnknownPlatformError(t *testing.T) {
	r := NewRegistry([]Registration{{Name: "alpha", New: okFactory("alpha")}})

	_, err := r.Adapter("gemini")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrUnknownPlatform))
	assert.EqualError(t, err, "unknown platform: gemini")

	_, err = r.ConvertInstructions("x", "alpha", "gemini")
	wrapped := errors.Wrap(err, "converting")
	assert.True(t, stderrors.Is(wrapped, ErrUnknownPlatform))

	var unknown *UnknownPlatformError
	require.True(t, stderrors.As(wrapped, &unknown))
	assert.Equal(t, "target", unknown.Role)
	assert.Equal(t, "gemini", unknown.Name)
}
