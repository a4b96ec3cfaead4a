package prompt

import (
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/aibridge/internal/errors"
)

// FindFunc matches the signature of fuzzyfinder.Find for the option slice.
type FindFunc func(options []Option, label func(i int) string, preview func(i, w, h int) string) (int, error)

// Picker chooses an option with a full-screen fuzzy finder.
type Picker struct {
	find FindFunc
}

// NewPicker returns a Picker backed by go-fuzzyfinder.
func NewPicker() *Picker {
	return &Picker{find: fuzzyFind}
}

// NewPickerWithFinder returns a Picker using find, for tests.
func NewPickerWithFinder(find FindFunc) *Picker {
	return &Picker{find: find}
}

// Pick lets the user choose one of options. preview, when non-nil, renders
// the side pane for the highlighted option.
func (p *Picker) Pick(options []Option, preview func(Option) string) (*Option, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	if len(options) == 1 {
		return &options[0], nil
	}

	label := func(i int) string { return options[i].String() }
	var pane func(i, w, h int) string
	if preview != nil {
		pane = func(i, _, _ int) string {
			if i < 0 || i >= len(options) {
				return ""
			}
			return preview(options[i])
		}
	}

	idx, err := p.find(options, label, pane)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "fuzzy finder failed")
	}
	if idx < 0 || idx >= len(options) {
		return nil, errors.Wrapf(ErrInvalidSelection, "index %d", idx)
	}
	return &options[idx], nil
}

func fuzzyFind(options []Option, label func(i int) string, preview func(i, w, h int) string) (int, error) {
	var opts []fuzzyfinder.Option
	if preview != nil {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(preview))
	}
	opts = append(opts, fuzzyfinder.WithPromptString("platform> "))
	return fuzzyfinder.Find(options, label, opts...)
}
