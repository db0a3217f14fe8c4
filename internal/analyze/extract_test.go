package analyze

import (
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docsplit/internal/element"
)

func buildExtractor(t *testing.T) *Extractor {
	t.Helper()
	hc, err := NewHeadingClassifier(nil)
	if err != nil {
		t.Fatalf("NewHeadingClassifier: %v", err)
	}
	return NewExtractor(hc, 1.2, 100)
}

func TestExtract_ParagraphsInOrder(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("First paragraph of body text.")
	doc.AddParagraph().AddText("Second paragraph, no terminator")

	x := buildExtractor(t)
	records := x.Extract(doc)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Kind != element.Paragraph {
			t.Errorf("record %d: expected paragraph kind, got %v", i, rec.Kind)
		}
		if rec.Ordinal != i {
			t.Errorf("record %d: expected ordinal %d, got %d", i, i, rec.Ordinal)
		}
	}
	if !records[0].EndsWithTerminator {
		t.Error("expected first paragraph to be terminator-final")
	}
	if records[1].EndsWithTerminator {
		t.Error("expected second paragraph not to be terminator-final")
	}
	if records[0].Text != "First paragraph of body text." {
		t.Errorf("unexpected text %q", records[0].Text)
	}
}

func TestExtract_HeadingByStyle(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().Style("Heading1").AddText("Overview")
	doc.AddParagraph().AddText("Body follows the heading.")

	x := buildExtractor(t)
	records := x.Extract(doc)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].IsHeading {
		t.Error("expected styled paragraph to be a heading")
	}
	if records[1].IsHeading {
		t.Error("expected body paragraph not to be a heading")
	}
}

func TestExtract_EmptyParagraph(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("   ")

	x := buildExtractor(t)
	records := x.Extract(doc)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !records[0].Empty() {
		t.Errorf("expected whitespace-only paragraph to be empty, got %q", records[0].Text)
	}
	if records[0].WeightedLength != 0 {
		t.Errorf("expected zero weighted length, got %d", records[0].WeightedLength)
	}
}

func TestExtract_TableRecord(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	tbl := doc.AddTable(2, 2, 0, nil)
	tbl.TableRows[0].TableCells[0].AddParagraph().AddText("alpha")
	tbl.TableRows[1].TableCells[1].AddParagraph().AddText("beta")

	x := buildExtractor(t)
	records := x.Extract(doc)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Kind != element.Table {
		t.Fatalf("expected table kind, got %v", rec.Kind)
	}
	if rec.Text != "alpha beta" {
		t.Errorf("expected joined cell text %q, got %q", "alpha beta", rec.Text)
	}
	if rec.TableInfo == nil || rec.TableInfo.Rows != 2 || rec.TableInfo.Cols != 2 {
		t.Errorf("unexpected table info %+v", rec.TableInfo)
	}
	if !rec.EndsWithTerminator {
		t.Error("expected table record to report terminator-final")
	}
	// 10 runes of text at factor 1.2, rounded.
	if rec.WeightedLength != 12 {
		t.Errorf("expected weighted length 12, got %d", rec.WeightedLength)
	}
}

func TestExtract_ListItemDetection(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"• bullet entry", true},
		{"- dashed entry", true},
		{"1. numbered entry", true},
		{"2、中文编号条目", true},
		{"3) parenthesised entry", true},
		{"plain body text", false},
	}
	for _, tt := range tests {
		if got := isListItem(tt.text); got != tt.want {
			t.Errorf("isListItem(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
