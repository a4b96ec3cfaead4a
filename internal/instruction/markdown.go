package instruction

import (
	"strings"
)

// FromMarkdown builds an Instruction from a Markdown document.
//
// The title is the text of the first "# " heading and the description the
// text of the first "> " line before the first "## " heading. Each "## "
// heading starts a section whose content is the trimmed text up to the next
// one. Other text before the first section is dropped. Headings inside
// fenced code blocks are not recognized as special.
//
// FromMarkdown never fails: input without headings yields an Instruction
// with no sections.
func FromMarkdown(content string) *Instruction {
	u := New()
	u.RawContent = content

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var (
		titleSeen   bool
		descSeen    bool
		inSection   bool
		currentName string
		body        []string
	)

	flush := func() {
		if inSection {
			u.SetSection(currentName, strings.TrimSpace(strings.Join(body, "\n")))
		}
	}

	for _, line := range lines {
		if name, ok := headingText(line, 2); ok {
			flush()
			inSection = true
			currentName = name
			body = body[:0]
			continue
		}

		if !titleSeen {
			if title, ok := headingText(line, 1); ok {
				u.Title = title
				titleSeen = true
			}
		}

		if inSection {
			body = append(body, line)
			continue
		}

		if !descSeen {
			if desc, ok := quoteText(line); ok {
				u.Description = desc
				descSeen = true
			}
		}
	}
	flush()

	return u
}

// ToMarkdown renders the title, description and sections as Markdown.
// Only RawContent reproduces an arbitrary source byte for byte.
func (u *Instruction) ToMarkdown() string {
	var lines []string

	if u.Title != "" {
		lines = append(lines, "# "+u.Title, "")
	}
	if u.Description != "" {
		lines = append(lines, "> "+u.Description, "")
	}
	lines = append(lines, u.SectionLines()...)

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// SectionLines renders every section as a "## " heading, a blank line, the
// content and a trailing blank line. Adapters use it to wrap sections in
// their own header and footer.
func (u *Instruction) SectionLines() []string {
	lines := make([]string, 0, len(u.keys)*4)
	for _, k := range u.keys {
		s := u.sections[k]
		name := s.OriginalName
		if name == "" {
			name = k
		}
		lines = append(lines, "## "+name, "", s.Content, "")
	}
	return lines
}

// headingText returns the text of an ATX heading of exactly the given level.
// At least one space or tab must follow the hashes and the text must be non-empty.
func headingText(line string, level int) (string, bool) {
	hashes := strings.Repeat("#", level)
	rest, ok := strings.CutPrefix(line, hashes)
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return "", false
	}
	return text, true
}

// quoteText returns the text of a block-quote line with non-empty content.
func quoteText(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, ">")
	if !ok {
		return "", false
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return "", false
	}
	return text, true
}
