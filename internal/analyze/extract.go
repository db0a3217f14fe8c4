package analyze

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docsplit/internal/element"
)

// Extractor walks a parsed document body and produces one classified
// element.Record per paragraph or table, in document order.
type Extractor struct {
	headings *HeadingClassifier

	// Weighted-length shaping factors, from the run parameters.
	TableLengthFactor float64
	ImageLengthFactor int
}

// NewExtractor builds an extractor around a heading classifier.
func NewExtractor(hc *HeadingClassifier, tableFactor float64, imageFactor int) *Extractor {
	return &Extractor{
		headings:          hc,
		TableLengthFactor: tableFactor,
		ImageLengthFactor: imageFactor,
	}
}

// Extract returns the ordered element records for the document body.
// Body items that are neither paragraphs nor tables are skipped; the
// reconstructor applies the same rule so ordinals stay aligned.
func (x *Extractor) Extract(doc *docx.Docx) []element.Record {
	var records []element.Record
	for _, it := range doc.Document.Body.Items {
		switch el := it.(type) {
		case *docx.Paragraph:
			records = append(records, x.paragraphRecord(el, len(records)))
		case *docx.Table:
			records = append(records, x.tableRecord(el, len(records)))
		}
	}
	return records
}

func (x *Extractor) paragraphRecord(p *docx.Paragraph, ordinal int) element.Record {
	text := strings.TrimSpace(ParagraphText(p))
	images := paragraphImages(p)

	baseLen := utf8.RuneCountInString(text)
	weighted := baseLen + len(images)*x.ImageLengthFactor

	return element.Record{
		Kind:               element.Paragraph,
		Ordinal:            ordinal,
		Text:               text,
		WeightedLength:     weighted,
		BaseTextLength:     baseLen,
		IsHeading:          x.headings.IsHeading(text, paragraphStyle(p)),
		IsListItem:         isListItem(text),
		EndsWithTerminator: EndsWithTerminator(text),
		Images:             images,
	}
}

func (x *Extractor) tableRecord(t *docx.Table, ordinal int) element.Record {
	var texts []string
	rows := len(t.TableRows)
	cols := 0
	for ri, row := range t.TableRows {
		if ri == 0 {
			cols = len(row.TableCells)
		}
		for _, cell := range row.TableCells {
			if ct := strings.TrimSpace(cellText(cell)); ct != "" {
				texts = append(texts, ct)
			}
		}
	}
	text := strings.Join(texts, " ")
	baseLen := utf8.RuneCountInString(text)
	weighted := int(math.Round(float64(baseLen) * x.TableLengthFactor))

	// A table edge is always an acceptable sentence boundary, so tables
	// report as terminator-final regardless of their cell text.
	return element.Record{
		Kind:               element.Table,
		Ordinal:            ordinal,
		Text:               text,
		WeightedLength:     weighted,
		BaseTextLength:     baseLen,
		EndsWithTerminator: true,
		TableInfo:          &element.TableInfo{Rows: rows, Cols: cols},
	}
}

// ParagraphText concatenates the text of every run in the paragraph,
// including runs nested in hyperlinks.
func ParagraphText(p *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range p.Children {
		switch c := child.(type) {
		case *docx.Run:
			buf.WriteString(RunText(c))
		case *docx.Hyperlink:
			buf.WriteString(RunText(&c.Run))
		}
	}
	return buf.String()
}

// RunText concatenates the plain-text children of a run.
func RunText(r *docx.Run) string {
	var buf strings.Builder
	for _, rc := range r.Children {
		if t, ok := rc.(*docx.Text); ok {
			buf.WriteString(t.Text)
		}
	}
	return buf.String()
}

func cellText(c *docx.WTableCell) string {
	var parts []string
	for _, p := range c.Paragraphs {
		if t := strings.TrimSpace(ParagraphText(p)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func paragraphStyle(p *docx.Paragraph) string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

// paragraphImages collects every image anchor in the paragraph's runs.
// Missing geometry or embed ids degrade to zero values; the anchor still
// counts toward the image total.
func paragraphImages(p *docx.Paragraph) []element.ImageRef {
	var images []element.ImageRef
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			d, ok := rc.(*docx.Drawing)
			if !ok {
				continue
			}
			images = append(images, drawingRef(d))
		}
	}
	return images
}

func drawingRef(d *docx.Drawing) element.ImageRef {
	var ref element.ImageRef
	switch {
	case d.Inline != nil:
		if d.Inline.Extent != nil {
			ref.Width = d.Inline.Extent.CX
			ref.Height = d.Inline.Extent.CY
		}
		if blip := graphicBlip(d.Inline.Graphic); blip != nil {
			ref.EmbedID = blip.Embed
		}
	case d.Anchor != nil:
		if d.Anchor.Extent != nil {
			ref.Width = d.Anchor.Extent.CX
			ref.Height = d.Anchor.Extent.CY
		}
		if blip := graphicBlip(d.Anchor.Graphic); blip != nil {
			ref.EmbedID = blip.Embed
		}
	}
	return ref
}

func graphicBlip(g *docx.AGraphic) *docx.ABlip {
	if g == nil || g.GraphicData == nil || g.GraphicData.Pic == nil {
		return nil
	}
	fill := g.GraphicData.Pic.BlipFill
	if fill == nil {
		return nil
	}
	return &fill.Blip
}

// isListItem reports whether the text starts like a list entry: a bullet
// glyph, or a digit followed by one of `.、)`.
func isListItem(text string) bool {
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, "•") || strings.HasPrefix(text, "-") || strings.HasPrefix(text, "*") {
		return true
	}
	rs := []rune(text)
	if len(rs) > 2 && unicode.IsDigit(rs[0]) && strings.ContainsRune(".、)", rs[1]) {
		return true
	}
	return false
}
