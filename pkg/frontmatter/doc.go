// Package frontmatter splits, decodes and renders YAML frontmatter at the
// top of Markdown documents, such as Cursor's .mdc rule files.
//
// Frontmatter is delimited by lines containing only "---". The content
// between the delimiters is YAML; the remainder is the body.
//
//	type RuleMeta struct {
//		Description string   `yaml:"description"`
//		Globs       []string `yaml:"globs"`
//	}
//
//	meta, body, err := frontmatter.Parse[RuleMeta](content)
//	if errors.Is(err, frontmatter.ErrNoFrontmatter) {
//		// plain markdown
//	}
//
// Both LF and CRLF line endings are accepted; output always uses LF.
package frontmatter
