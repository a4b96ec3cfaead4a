// Package cursor implements the platform adapter for Cursor.
//
// Cursor rules are MDC files: Markdown with a YAML frontmatter block that
// carries a description, the globs the rule applies to, and whether the rule
// is always applied. The frontmatter survives conversion through instruction
// metadata.
package cursor

import (
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/instruction"
	"github.com/thoreinstein/aibridge/internal/platform"
	"github.com/thoreinstein/aibridge/pkg/frontmatter"
)

// Name is the platform identifier.
const Name = "cursor"

// DefaultDescription is used when a converted document has no description.
const DefaultDescription = "Project rules"

// DefaultGlobs applies a rule to every file.
var DefaultGlobs = []string{"**/*"}

var meta = platform.Meta{
	Name:        Name,
	DisplayName: "Cursor",
	Vendor:      "cursor.com",
	Icon:        "📝",
	Config: platform.ConfigSpec{
		Format: format.NameMDC,
		Paths:  platform.ConfigPaths{Project: ".cursorrules"},
	},
	Instruction: platform.InstructionSpec{
		Files:  []string{".cursorrules", ".cursor/rules/main.mdc", ".cursor/rules/default.mdc"},
		Format: format.NameMDC,
	},
}

// Rule is the frontmatter of a Cursor rule file. Field order matches what
// Cursor itself writes.
type Rule struct {
	Description string   `yaml:"description"`
	Globs       []string `yaml:"globs"`
	AlwaysApply bool     `yaml:"alwaysApply"`
}

// Adapter is the Cursor platform adapter.
type Adapter struct {
	*platform.Base
}

// New returns a Cursor adapter.
func New() *Adapter {
	return &Adapter{Base: platform.NewBase(meta, format.MDC{})}
}

// Factory adapts New to platform.Factory.
func Factory() (platform.Adapter, error) {
	return New(), nil
}

// ParseToUnified implements platform.Adapter. Only the body is parsed as
// Markdown; the frontmatter is kept in metadata. A frontmatter description
// fills in a missing body description.
func (a *Adapter) ParseToUnified(content string) *instruction.Instruction {
	matter, body := format.SplitMDC(content)

	u := instruction.FromMarkdown(body)
	u.RawContent = content
	u.SetMetadata(instruction.MetaSourceFormat, Name)
	u.SetMetadata(instruction.MetaFrontmatter, matter)

	globs := toStrings(matter["globs"])
	if len(globs) == 0 {
		globs = append([]string(nil), DefaultGlobs...)
	}
	u.SetMetadata(instruction.MetaGlobs, globs)

	always, isBool := matter["alwaysApply"].(bool)
	u.SetMetadata(instruction.MetaAlwaysApply, !isBool || always)

	if u.Description == "" {
		if desc, ok := matter["description"].(string); ok {
			u.Description = desc
		}
	}
	return u
}

// SerializeFromUnified implements platform.Adapter.
func (a *Adapter) SerializeFromUnified(u *instruction.Instruction) string {
	if text, ok := platform.SameSource(u, Name); ok {
		return text
	}

	rule := RuleFor(u)
	out, err := frontmatter.Format(rule, u.ToMarkdown())
	if err != nil {
		// A Rule always marshals; fall back to the bare body regardless.
		return u.ToMarkdown()
	}
	return out
}

// RuleFor derives rule frontmatter from instruction metadata.
func RuleFor(u *instruction.Instruction) Rule {
	rule := Rule{
		Description: u.Description,
		Globs:       toStrings(u.Metadata(instruction.MetaGlobs)),
		AlwaysApply: true,
	}
	if rule.Description == "" {
		rule.Description = DefaultDescription
	}
	if len(rule.Globs) == 0 {
		rule.Globs = append([]string(nil), DefaultGlobs...)
	}
	if v, ok := u.MetadataBool(instruction.MetaAlwaysApply); ok {
		rule.AlwaysApply = v
	}
	return rule
}

// DefaultConfig implements platform.Adapter.
func (a *Adapter) DefaultConfig() map[string]any {
	return map[string]any{
		format.KeyFrontmatter: map[string]any{
			"description": DefaultDescription,
			"globs":       []any{"**/*"},
			"alwaysApply": true,
		},
		format.KeyBody: "",
	}
}

// toStrings accepts the glob shapes found in the wild: a YAML list or a
// single string.
func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}
