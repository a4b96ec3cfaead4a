package frontmatter

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Sentinel errors returned by Parse.
var (
	// ErrNoFrontmatter indicates the content does not open with a "---" line
	// or the block is never closed.
	ErrNoFrontmatter = errors.New("no frontmatter found")

	// ErrInvalidYAML indicates the frontmatter block is not valid YAML.
	ErrInvalidYAML = errors.New("invalid YAML in frontmatter")
)

// Split separates a leading "---" delimited block from the rest of content.
// Line endings are normalized to LF before splitting. The newline directly
// after the closing delimiter is consumed; the remaining body is returned
// untouched. ok is false when content has no complete frontmatter block, in
// which case body is the normalized content.
func Split(content string) (matter, body string, ok bool) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	rest, found := strings.CutPrefix(content, delimiter+"\n")
	if !found {
		return "", content, false
	}

	// Empty block: the closing delimiter is the very next line
	if rest == delimiter || strings.HasPrefix(rest, delimiter+"\n") {
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, delimiter), "\n"), true
	}

	offset := 0
	for {
		idx := strings.Index(rest[offset:], "\n"+delimiter)
		if idx < 0 {
			return "", content, false
		}
		end := offset + idx
		after := rest[end+1+len(delimiter):]
		if after == "" || after[0] == '\n' {
			return rest[:end], strings.TrimPrefix(after, "\n"), true
		}
		// "---" followed by more text on the same line is not a delimiter
		offset = end + 1
	}
}

// Parse decodes the frontmatter of content into T and returns the body.
// It returns ErrNoFrontmatter when there is no block and ErrInvalidYAML when
// the block does not decode.
func Parse[T any](content string) (T, string, error) {
	var matter T

	raw, body, ok := Split(content)
	if !ok {
		return matter, body, ErrNoFrontmatter
	}
	if strings.TrimSpace(raw) == "" {
		return matter, body, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &matter); err != nil {
		return matter, body, errors.Wrapf(ErrInvalidYAML, "decoding frontmatter: %v", err)
	}

	return matter, body, nil
}

// Format renders matter as a YAML block wrapped in "---" delimiters, a blank
// line, and then body. An empty body yields only the block.
func Format(matter any, body string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return "", errors.Wrap(err, "encoding frontmatter")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "encoding frontmatter")
	}

	buf.WriteString(delimiter + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
	}

	return buf.String(), nil
}
