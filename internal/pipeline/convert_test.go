package pipeline

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docsplit/internal/splitter"
)

func docBytes(t *testing.T, build func(doc *docx.Docx)) []byte {
	t.Helper()
	doc := docx.New().WithDefaultTheme()
	build(doc)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("serialize test document: %v", err)
	}
	return buf.Bytes()
}

func TestConvert_EndToEnd(t *testing.T) {
	body := strings.Repeat("A full sentence of body text. ", 20)
	data := docBytes(t, func(doc *docx.Docx) {
		doc.AddParagraph().Style("Heading1").AddText("Introduction")
		doc.AddParagraph().AddText(strings.TrimSpace(body))
		doc.AddParagraph().Style("Heading1").AddText("Results")
		doc.AddParagraph().AddText(strings.TrimSpace(body))
	})

	params := splitter.DefaultParams()
	params.PreserveImages = false
	c := NewConverter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := c.Convert(data, params)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Elements != 4 {
		t.Errorf("expected 4 elements, got %d", res.Elements)
	}
	if res.Markers == 0 {
		t.Error("expected at least one marker for a document with headings")
	}
	if len(res.Data) == 0 {
		t.Fatal("expected rebuilt document bytes")
	}

	// The output must itself be a parseable document.
	out, err := docx.Parse(bytes.NewReader(res.Data), int64(len(res.Data)))
	if err != nil {
		t.Fatalf("reparse output: %v", err)
	}
	paragraphs := 0
	for _, it := range out.Document.Body.Items {
		if _, ok := it.(*docx.Paragraph); ok {
			paragraphs++
		}
	}
	if paragraphs != 4+res.Markers {
		t.Errorf("expected %d paragraphs in output, got %d", 4+res.Markers, paragraphs)
	}
}

func TestConvert_PhaseNotifications(t *testing.T) {
	data := docBytes(t, func(doc *docx.Docx) {
		doc.AddParagraph().AddText("short body.")
	})

	c := NewConverter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var phases []string
	params := splitter.DefaultParams()
	params.PreserveImages = false
	if _, err := c.ConvertWithProgress(data, params, func(phase string) {
		phases = append(phases, phase)
	}); err != nil {
		t.Fatalf("ConvertWithProgress: %v", err)
	}

	want := []string{"analyzing", "splitting", "rebuilding"}
	if len(phases) != len(want) {
		t.Fatalf("expected phases %v, got %v", want, phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("expected phases %v, got %v", want, phases)
		}
	}
}

func TestConvert_InvalidPackage(t *testing.T) {
	c := NewConverter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.Convert([]byte("not a zip archive"), splitter.DefaultParams())
	if err == nil {
		t.Fatal("expected error for invalid package")
	}
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("expected *DocumentError, got %T", err)
	}
	if docErr.Stage != StageOpen {
		t.Errorf("expected stage %q, got %q", StageOpen, docErr.Stage)
	}
}

func TestConvert_InvalidParams(t *testing.T) {
	c := NewConverter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	params := splitter.DefaultParams()
	params.MaxLength = -1
	_, err := c.Convert(nil, params)
	if err == nil {
		t.Fatal("expected error for invalid params")
	}
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("expected *DocumentError, got %T", err)
	}
}

func TestDocumentError_Unwrap(t *testing.T) {
	inner := errors.New("bad zip")
	err := failed(StageOpen, inner)
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to be reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "open") {
		t.Errorf("expected stage in message, got %q", err.Error())
	}
}
