package instruction

// Document is the plain-data form of an Instruction, suitable for JSON or
// YAML encoding. Sections are a list so their order survives encoders that
// sort map keys.
type Document struct {
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Sections    []Section      `json:"sections,omitempty" yaml:"sections,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	RawContent  string         `json:"rawContent,omitempty" yaml:"rawContent,omitempty"`
}

// ToObject converts u to a Document. The result shares no mutable state with u.
func (u *Instruction) ToObject() Document {
	c := u.Clone()
	doc := Document{
		Title:       c.Title,
		Description: c.Description,
		Sections:    c.Sections(),
		RawContent:  c.RawContent,
	}
	if len(c.metadata) > 0 {
		doc.Metadata = c.metadata
	}
	return doc
}

// FromObject builds an Instruction from a Document. Sections are added in
// list order, so duplicate keys resolve the same way parsing does.
func FromObject(doc Document) *Instruction {
	u := New()
	u.Title = doc.Title
	u.Description = doc.Description
	u.RawContent = doc.RawContent
	for _, s := range doc.Sections {
		u.SetSection(s.OriginalName, s.Content)
	}
	for k, v := range doc.Metadata {
		u.metadata[k] = cloneValue(v)
	}
	return u
}
