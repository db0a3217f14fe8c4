package splitter

import (
	"strings"
	"testing"

	"github.com/dgallion1/docsplit/internal/element"
)

// oracleFunc adapts a function to the BoundaryOracle interface so tests
// can script boundary decisions without loading dictionaries.
type oracleFunc func(before, after string) bool

func (f oracleFunc) Boundary(before, after string) bool { return f(before, after) }

// dotOracle treats a trailing period as the only sentence boundary.
var dotOracle = oracleFunc(func(before, _ string) bool {
	return strings.HasSuffix(before, ".")
})

var noBoundary = oracleFunc(func(_, _ string) bool { return false })

var allBoundary = oracleFunc(func(_, _ string) bool { return true })

func para(text string, length int) element.Record {
	return element.Record{
		Kind:               element.Paragraph,
		Text:               text,
		WeightedLength:     length,
		BaseTextLength:     length,
		EndsWithTerminator: strings.HasSuffix(text, "."),
	}
}

func heading(text string) element.Record {
	r := para(text, 6)
	r.IsHeading = true
	return r
}

func table(text string, length int) element.Record {
	return element.Record{
		Kind:               element.Table,
		Text:               text,
		WeightedLength:     length,
		BaseTextLength:     length,
		EndsWithTerminator: true,
	}
}

func assertPoints(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected split points %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected split points %v, got %v", want, got)
		}
	}
}

func TestSelect_EmptyDocument(t *testing.T) {
	s := NewSelector(DefaultParams(), noBoundary)
	if points := s.Select(nil); len(points) != 0 {
		t.Errorf("expected no split points for empty document, got %v", points)
	}
}

func TestSelect_ShortDocumentNoSplits(t *testing.T) {
	records := []element.Record{
		para("opening fragment", 50),
		para("middle fragment", 50),
		para("closing fragment", 50),
	}
	s := NewSelector(DefaultParams(), noBoundary)
	if points := s.Select(records); len(points) != 0 {
		t.Errorf("expected no split points for short document, got %v", points)
	}
}

func TestSelect_IndexZeroNeverCandidate(t *testing.T) {
	records := []element.Record{
		para("a single enormous opening paragraph.", 5000),
	}
	s := NewSelector(DefaultParams(), dotOracle)
	if points := s.Select(records); len(points) != 0 {
		t.Errorf("expected no split points with one element, got %v", points)
	}
}

func TestSelect_ForcedHeadingSplitWithCooldown(t *testing.T) {
	records := []element.Record{
		para("lead-in body without terminator", 200),
		para("more body without terminator", 200),
		heading("第一章 方法"),
		para("first section body.", 600),
		para("second section body.", 600),
		para("third section body.", 600),
	}

	s := NewSelector(DefaultParams(), dotOracle)
	points := s.Select(records)

	// The heading forces index 2; the two elements after it sit inside
	// the cooldown window and only accumulate, so the next split lands
	// on index 5.
	assertPoints(t, points, []int{2, 5})
}

func TestSelect_ScoreSplitOnGoodBoundary(t *testing.T) {
	records := []element.Record{
		para("the first full block of text.", 600),
		para("the second full block of text.", 600),
	}
	s := NewSelector(DefaultParams(), dotOracle)
	points := s.Select(records)
	assertPoints(t, points, []int{1})
}

func TestSelect_OverflowFallsBackToNearestBoundary(t *testing.T) {
	// No junction scores high enough, but the junction before index 2
	// is a confirmed boundary; once the accumulator passes 1.5x the max
	// length the selector falls back to it.
	boundary := oracleFunc(func(before, _ string) bool {
		return before == "B"
	})
	records := []element.Record{
		para("A", 400),
		para("B", 400),
		para("C", 400),
		para("D", 400),
	}
	params := DefaultParams()
	params.MinSplitScore = 100 // suppress score splits, force the fallback
	s := NewSelector(params, boundary)
	points := s.Select(records)
	assertPoints(t, points, []int{2})
}

func TestSelect_OverflowForcesSplitWithoutBoundary(t *testing.T) {
	records := []element.Record{
		para("A", 400),
		para("B", 400),
		para("C", 400),
		para("D", 400),
		para("E", 400),
	}
	s := NewSelector(DefaultParams(), noBoundary)
	points := s.Select(records)
	// No boundary anywhere; the forced split triggers only once the
	// distance from the last split exceeds the minimum gap.
	assertPoints(t, points, []int{3})
}

func TestSelect_AdjacentLargeTables(t *testing.T) {
	records := []element.Record{
		table("first wide table", 800),
		table("second wide table", 800),
	}
	s := NewSelector(DefaultParams(), noBoundary)
	points := s.Select(records)
	assertPoints(t, points, []int{1})
}

func TestSelect_EmptyElementsOnlyAccumulate(t *testing.T) {
	records := []element.Record{
		para("body text before the gap.", 600),
		para("", 0),
		para("", 0),
		para("body text after the gap.", 600),
	}
	s := NewSelector(DefaultParams(), dotOracle)
	points := s.Select(records)
	for _, sp := range points {
		if records[sp].Empty() {
			t.Errorf("split point %d lands on an empty element", sp)
		}
	}
}

func TestSelect_StrictlyAscending(t *testing.T) {
	var records []element.Record
	for i := 0; i < 30; i++ {
		records = append(records, para("a repeated block of body text.", 500))
	}
	s := NewSelector(DefaultParams(), dotOracle)
	points := s.Select(records)
	if len(points) == 0 {
		t.Fatal("expected split points for a long document")
	}
	for i := 1; i < len(points); i++ {
		if points[i] <= points[i-1] {
			t.Fatalf("split points not strictly ascending: %v", points)
		}
	}
	for _, sp := range points {
		if sp <= 0 || sp >= len(records) {
			t.Fatalf("split point %d out of range", sp)
		}
	}
}

func TestScore_HeadingAfterPenalty(t *testing.T) {
	// Splitting directly after a heading is penalized even with empty
	// paragraphs between.
	records := []element.Record{
		heading("第一章 绪论"),
		para("", 0),
		para("section body right after the heading.", 600),
	}
	params := DefaultParams()
	params.ForceSplitBeforeHeading = false
	s := NewSelector(params, allBoundary)

	withPenalty := s.score(2, records, 600, nil)

	plain := []element.Record{
		para("ordinary predecessor text.", 600),
		para("", 0),
		para("section body right after the heading.", 600),
	}
	withoutPenalty := s.score(2, plain, 600, nil)

	if diff := withoutPenalty - withPenalty; diff != params.HeadingAfterPenalty {
		t.Errorf("expected heading penalty %v, got difference %v", params.HeadingAfterPenalty, diff)
	}
}
