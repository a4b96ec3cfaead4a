// Package instruction defines the platform-neutral representation that all
// instruction conversions pass through.
//
// Every assistant adapter parses its native instruction file into an
// [Instruction] and renders an [Instruction] back into its native file, so
// converting between N platforms needs N adapters rather than N² converters:
//
//	u := instruction.FromMarkdown(claudeMD)
//	agentsMD := codexAdapter.SerializeFromUnified(u)
//
// Sections are keyed by [NormalizeSectionName]. Two headings that normalize
// to the same key collide and the later one wins.
//
// Only RawContent preserves a document byte for byte. Adapters return it
// unchanged when asked to render an instruction that they parsed themselves.
package instruction
