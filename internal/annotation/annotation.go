package annotation

// Annotation is the export payload returned by the source API.
type Annotation struct {
	Results []Result `json:"results"`
}

// Result holds the content tree of a single annotated document.
type Result struct {
	Content []Section `json:"content"`
}

// Section is a recursive node in the annotation content tree. A section with
// no children acts as a leaf field whose Value carries the extracted text.
type Section struct {
	SchemaID string    `json:"schema_id"`
	Value    string    `json:"value"`
	Children []Section `json:"children"`
}

// SectionChildren returns the children of the first section whose schema id
// matches name. A missing section yields an empty slice, never an error.
func SectionChildren(sections []Section, name string) []Section {
	for _, s := range sections {
		if s.SchemaID == name {
			return s.Children
		}
	}
	return nil
}

// FieldValue returns the value of the first child whose schema id matches
// name, or the empty string when absent.
func FieldValue(children []Section, name string) string {
	for _, c := range children {
		if c.SchemaID == name {
			return c.Value
		}
	}
	return ""
}
