package instruction

import (
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Well-known metadata keys. Adapters may store additional keys.
const (
	MetaSourceFormat     = "sourceFormat"
	MetaGlobs            = "globs"
	MetaAlwaysApply      = "alwaysApply"
	MetaFrontmatter      = "frontmatter"
	MetaHasChecklist     = "hasChecklist"
	MetaHasCodexSettings = "hasCodexSettings"
	MetaHasAiderFooter   = "hasAiderFooter"
)

// Section is one second-level heading and the text beneath it.
type Section struct {
	OriginalName string `json:"originalName" yaml:"originalName"`
	Content      string `json:"content" yaml:"content"`
}

// Instruction is the platform-neutral form of an instruction document.
//
// Sections keep the order in which their keys were first added. Setting a
// section whose normalized key already exists replaces the heading text and
// content but keeps the original position.
//
// An Instruction is built per conversion and is not safe for concurrent mutation.
type Instruction struct {
	Title       string
	Description string
	RawContent  string

	keys     []string
	sections map[string]Section
	metadata map[string]any
}

// New returns an empty Instruction.
func New() *Instruction {
	return &Instruction{
		sections: make(map[string]Section),
		metadata: make(map[string]any),
	}
}

// NormalizeSectionName maps a heading to its lookup key: lowercase, runes
// other than ASCII letters, digits, whitespace and '-' dropped, surrounding
// whitespace trimmed, and inner whitespace runs collapsed to a single '-'.
// The mapping is idempotent and many-to-one.
func NormalizeSectionName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// SetSection adds or replaces the section whose normalized key matches name.
func (u *Instruction) SetSection(name, content string) {
	u.init()
	key := NormalizeSectionName(name)
	if _, ok := u.sections[key]; !ok {
		u.keys = append(u.keys, key)
	}
	u.sections[key] = Section{OriginalName: name, Content: content}
}

// Section returns the content of the section matching name.
func (u *Instruction) Section(name string) (string, bool) {
	s, ok := u.sections[NormalizeSectionName(name)]
	return s.Content, ok
}

// HasSection reports whether a section matching name exists.
func (u *Instruction) HasSection(name string) bool {
	_, ok := u.sections[NormalizeSectionName(name)]
	return ok
}

// RemoveSection deletes the section matching name and reports whether it existed.
func (u *Instruction) RemoveSection(name string) bool {
	key := NormalizeSectionName(name)
	if _, ok := u.sections[key]; !ok {
		return false
	}
	delete(u.sections, key)
	u.keys = slices.DeleteFunc(u.keys, func(k string) bool { return k == key })
	return true
}

// SectionKeys returns the normalized section keys in document order.
func (u *Instruction) SectionKeys() []string {
	return slices.Clone(u.keys)
}

// Sections returns the sections in document order.
func (u *Instruction) Sections() []Section {
	out := make([]Section, 0, len(u.keys))
	for _, k := range u.keys {
		out = append(out, u.sections[k])
	}
	return out
}

// Len returns the number of sections.
func (u *Instruction) Len() int {
	return len(u.keys)
}

// SetMetadata stores value under key.
func (u *Instruction) SetMetadata(key string, value any) {
	u.init()
	u.metadata[key] = value
}

// Metadata returns the value stored under key, or nil.
func (u *Instruction) Metadata(key string) any {
	return u.metadata[key]
}

// MetadataString returns the value stored under key when it is a string.
func (u *Instruction) MetadataString(key string) string {
	s, _ := u.metadata[key].(string)
	return s
}

// MetadataBool returns the value stored under key when it is a bool.
// ok is false when the key is absent or holds another type.
func (u *Instruction) MetadataBool(key string) (value, ok bool) {
	value, ok = u.metadata[key].(bool)
	return value, ok
}

// SourceFormat returns the name of the platform the instruction was parsed from.
func (u *Instruction) SourceFormat() string {
	return u.MetadataString(MetaSourceFormat)
}

// Clone returns a deep copy. Metadata values that are maps or slices of the
// kinds produced by YAML and JSON decoding are copied recursively.
func (u *Instruction) Clone() *Instruction {
	c := New()
	c.Title = u.Title
	c.Description = u.Description
	c.RawContent = u.RawContent
	c.keys = slices.Clone(u.keys)
	maps.Copy(c.sections, u.sections)
	for k, v := range u.metadata {
		c.metadata[k] = cloneValue(v)
	}
	return c
}

func (u *Instruction) init() {
	if u.sections == nil {
		u.sections = make(map[string]Section)
	}
	if u.metadata == nil {
		u.metadata = make(map[string]any)
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}
