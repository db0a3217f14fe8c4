package docbuild

import (
	"log/slog"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docsplit/internal/analyze"
	"github.com/dgallion1/docsplit/internal/element"
	"github.com/dgallion1/docsplit/internal/splitter"
)

// Reconstructor rebuilds an equivalent document with marker paragraphs
// inserted at the final split indices. Paragraph and run formatting is
// carried over best-effort; tables keep structure and cell text only.
type Reconstructor struct {
	params splitter.Params
	log    *slog.Logger
}

// NewReconstructor builds a reconstructor for one run's parameters.
func NewReconstructor(params splitter.Params, log *slog.Logger) *Reconstructor {
	return &Reconstructor{params: params, log: log}
}

// Build walks the source body in document order and assembles the output
// document. plan indices refer to the same paragraph/table ordering the
// extractor produced.
func (r *Reconstructor) Build(src *docx.Docx, plan []int) (*docx.Docx, int) {
	out := docx.New().WithDefaultTheme()

	var rm RelationshipMap
	if r.params.PreserveImages {
		rm = CopyImageParts(src, out, r.log)
	}

	planSet := make(map[int]bool, len(plan))
	for _, sp := range plan {
		planSet[sp] = true
	}

	markers := 0
	idx := -1
	for _, it := range src.Document.Body.Items {
		switch el := it.(type) {
		case *docx.Paragraph:
			idx++
			if planSet[idx] {
				out.AddParagraph().AddText(element.Marker)
				markers++
			}
			r.copyParagraph(out, el, rm)
		case *docx.Table:
			idx++
			if planSet[idx] {
				out.AddParagraph().AddText(element.Marker)
				markers++
			}
			r.copyTable(out, el)
		}
	}

	return out, markers
}

func (r *Reconstructor) copyParagraph(out *docx.Docx, p *docx.Paragraph, rm RelationshipMap) {
	np := out.AddParagraph()
	if p.Properties != nil {
		props := *p.Properties
		np.Properties = &props
	}

	withImages := r.params.PreserveImages && len(rm) > 0 && paragraphHasDrawing(p)
	if !withImages {
		r.copyTextOnly(np, p)
		return
	}

	for _, child := range p.Children {
		switch c := child.(type) {
		case *docx.Run:
			if runHasDrawing(c) {
				r.copyImageRun(np, c, rm)
			} else {
				copyTextRun(np, c)
			}
		case *docx.Hyperlink:
			// Link targets belong to the source package; keep the text.
			copyTextRun(np, &c.Run)
		}
	}
}

// copyTextOnly flattens the paragraph to formatted text runs, dropping
// any drawings.
func (r *Reconstructor) copyTextOnly(np *docx.Paragraph, p *docx.Paragraph) {
	for _, child := range p.Children {
		switch c := child.(type) {
		case *docx.Run:
			copyTextRun(np, c)
		case *docx.Hyperlink:
			copyTextRun(np, &c.Run)
		}
	}
}

// copyTextRun copies one run's text with its character formatting.
func copyTextRun(np *docx.Paragraph, src *docx.Run) {
	text := analyze.RunText(src)
	if text == "" {
		return
	}
	nr := np.AddText(text)
	if src.RunProperties != nil {
		props := *src.RunProperties
		nr.RunProperties = &props
	}
}

// copyImageRun copies a run containing drawings: the text first, then
// each drawing as an owned clone with its embed ids rewritten through
// the relationship map. Any failure degrades that drawing to nothing and
// the run to its text.
func (r *Reconstructor) copyImageRun(np *docx.Paragraph, src *docx.Run, rm RelationshipMap) {
	copyTextRun(np, src)

	for _, rc := range src.Children {
		d, ok := rc.(*docx.Drawing)
		if !ok {
			continue
		}
		cloned, err := cloneDrawing(d)
		if err != nil {
			r.log.Warn("drawing clone failed, dropping image", "error", err)
			continue
		}
		if !rewriteEmbeds(cloned, rm) {
			r.log.Warn("no relationship mapping for drawing, dropping image")
			continue
		}
		run := &docx.Run{Children: []interface{}{cloned}}
		if src.RunProperties != nil {
			props := *src.RunProperties
			run.RunProperties = &props
		}
		np.Children = append(np.Children, run)
	}
}

// copyTable copies the grid shape and cell text. Table styling and
// in-cell run formatting are not preserved.
func (r *Reconstructor) copyTable(out *docx.Docx, t *docx.Table) {
	rows := len(t.TableRows)
	if rows == 0 {
		return
	}
	cols := len(t.TableRows[0].TableCells)
	if cols == 0 {
		return
	}

	nt := out.AddTable(rows, cols, 0, nil)
	for ri, row := range t.TableRows {
		if ri >= len(nt.TableRows) {
			break
		}
		for ci, cell := range row.TableCells {
			if ci >= len(nt.TableRows[ri].TableCells) {
				break
			}
			text := cellJoinedText(cell)
			if text == "" {
				continue
			}
			nt.TableRows[ri].TableCells[ci].AddParagraph().AddText(text)
		}
	}
}

func cellJoinedText(c *docx.WTableCell) string {
	var out string
	for _, p := range c.Paragraphs {
		t := analyze.ParagraphText(p)
		if t == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += t
	}
	return out
}

func paragraphHasDrawing(p *docx.Paragraph) bool {
	for _, child := range p.Children {
		if run, ok := child.(*docx.Run); ok && runHasDrawing(run) {
			return true
		}
	}
	return false
}

func runHasDrawing(r *docx.Run) bool {
	for _, rc := range r.Children {
		if _, ok := rc.(*docx.Drawing); ok {
			return true
		}
	}
	return false
}
