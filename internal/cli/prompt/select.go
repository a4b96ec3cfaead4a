// Package prompt provides interactive CLI prompts for choosing a platform.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/aibridge/internal/errors"
)

// Sentinel errors for platform selection.
var (
	ErrNoOptions          = errors.New("no platforms to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Option is one choice in a prompt.
type Option struct {
	// Name is the platform name returned to the caller.
	Name string

	// Detail is shown next to the name, e.g. the file that triggered detection.
	Detail string
}

func (o Option) String() string {
	if o.Detail == "" {
		return o.Name
	}
	return fmt.Sprintf("%s (%s)", o.Name, o.Detail)
}

// Selector handles numbered selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Select prompts the user to choose one of options.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - The option if only one exists (auto-selects without prompting)
//   - The selected option based on user input, the first one on empty input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(header string, options []Option) (*Option, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	if len(options) == 1 {
		return &options[0], nil
	}

	fmt.Fprintf(s.writer, "%s:\n", header)
	for i, o := range options {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, o)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil {
		// a final line without newline still counts
		if !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "reading selection")
		}
		if strings.TrimSpace(input) == "" {
			return nil, ErrSelectionCancelled
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return &options[0], nil
	}

	// typing the name works as well as the number
	for i := range options {
		if options[i].Name == input {
			return &options[i], nil
		}
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(options) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(options))
	}

	return &options[selection-1], nil
}

// Options builds options from bare names.
func Options(names ...string) []Option {
	opts := make([]Option, len(names))
	for i, n := range names {
		opts[i] = Option{Name: n}
	}
	return opts
}
