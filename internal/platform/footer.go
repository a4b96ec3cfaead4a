package platform

import (
	"strings"

	"github.com/thoreinstein/aibridge/internal/instruction"
)

// StripFooter removes a generated footer section and the "---" rule that
// closes the section before it. It reports whether the footer was present.
func StripFooter(u *instruction.Instruction, name string) bool {
	key := instruction.NormalizeSectionName(name)
	sections := u.Sections()
	keys := u.SectionKeys()

	idx := -1
	for i, k := range keys {
		if k == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	u.RemoveSection(name)

	if idx > 0 {
		prev := sections[idx-1]
		content := strings.TrimSpace(prev.Content)
		if rest, ok := strings.CutSuffix(content, "---"); ok {
			u.SetSection(prev.OriginalName, strings.TrimSpace(rest))
		}
	}
	return true
}

// JoinLines joins rendered lines and trims surrounding whitespace.
func JoinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
