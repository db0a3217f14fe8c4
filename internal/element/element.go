// Package element defines the classified body-element records the split
// engine operates on. Records are built once per document by the analyzer
// and never mutated afterwards.
package element

// Marker is the sentinel text inserted as a standalone paragraph at every
// chosen split point.
const Marker = "<!--split-->"

// Kind discriminates the block-element variants. The set is closed: every
// switch over Kind must handle all of them.
type Kind int

const (
	Paragraph Kind = iota
	Table
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Table:
		return "table"
	}
	return "unknown"
}

// ImageRef describes one embedded image anchor found in a paragraph.
// Width and Height are EMU values from the drawing extent; zero when the
// geometry is missing.
type ImageRef struct {
	Width   int64
	Height  int64
	EmbedID string
}

// TableInfo carries the grid shape of a table element.
type TableInfo struct {
	Rows int
	Cols int
}

// Record is one classified body element, in document order.
type Record struct {
	Kind    Kind
	Ordinal int

	// Text is the trimmed paragraph text, or all cell texts joined by
	// single spaces for tables.
	Text string

	// WeightedLength is the rune count adjusted by the image and table
	// length factors; it is the unit of all length-based split decisions.
	WeightedLength int
	BaseTextLength int

	IsHeading          bool
	IsListItem         bool
	EndsWithTerminator bool

	Images    []ImageRef
	TableInfo *TableInfo
}

// Empty reports whether the record contributes no weighted length.
// Empty records are never split candidates.
func (r Record) Empty() bool {
	return r.WeightedLength == 0
}

// ImageCount returns the number of image anchors in the record.
func (r Record) ImageCount() int {
	return len(r.Images)
}
