package splitter

import (
	"testing"

	"github.com/dgallion1/docsplit/internal/element"
)

func TestRefine_NudgeToNearestBoundary(t *testing.T) {
	boundary := oracleFunc(func(before, _ string) bool {
		return before == "A"
	})
	records := []element.Record{
		para("A", 400),
		para("B", 400),
		para("C", 400),
		para("D", 400),
	}

	r := NewRefiner(DefaultParams(), boundary)
	got := r.Refine(records, []int{2})

	// The junction before index 2 is mid-sentence; the nearest confirmed
	// boundary is before index 1.
	assertPoints(t, got, []int{1})
}

func TestRefine_BoundaryPointKept(t *testing.T) {
	records := []element.Record{
		para("first sentence.", 400),
		para("second sentence.", 400),
		para("third sentence.", 400),
	}
	r := NewRefiner(DefaultParams(), dotOracle)
	got := r.Refine(records, []int{1})
	assertPoints(t, got, []int{1})
}

func TestRefine_HeadingPointPinned(t *testing.T) {
	records := []element.Record{
		para("body before.", 400),
		heading("第一章 绪论"),
		para("section body.", 400),
		para("more section body.", 400),
	}
	r := NewRefiner(DefaultParams(), noBoundary)
	got := r.Refine(records, []int{1})
	// A split point on a heading is never nudged and never merged away.
	assertPoints(t, got, []int{1})
}

func TestRefine_DropsPointSeparatingHeadingFromBody(t *testing.T) {
	records := []element.Record{
		para("body before.", 400),
		heading("第一章 绪论"),
		para("section body.", 400),
	}
	r := NewRefiner(DefaultParams(), allBoundary)
	got := r.Refine(records, []int{2})
	if len(got) != 0 {
		t.Errorf("expected point between heading and body to be dropped, got %v", got)
	}
}

func TestRefine_MergeSkipsEmptyElements(t *testing.T) {
	records := []element.Record{
		heading("第一章 绪论"),
		para("", 0),
		para("section body.", 400),
	}
	r := NewRefiner(DefaultParams(), allBoundary)
	got := r.Refine(records, []int{2})
	if len(got) != 0 {
		t.Errorf("expected point after heading and gap to be dropped, got %v", got)
	}
}

func TestRefine_Idempotent(t *testing.T) {
	boundary := oracleFunc(func(before, _ string) bool {
		return before == "A"
	})
	records := []element.Record{
		para("A", 400),
		para("B", 400),
		para("C", 400),
		para("D", 400),
	}
	r := NewRefiner(DefaultParams(), boundary)
	once := r.Refine(records, []int{2})
	twice := r.Refine(records, once)
	assertPoints(t, twice, once)
}

func TestRefine_OutOfRangeDropped(t *testing.T) {
	records := []element.Record{
		para("only.", 400),
		para("two.", 400),
	}
	r := NewRefiner(DefaultParams(), dotOracle)
	got := r.Refine(records, []int{-1, 5})
	if len(got) != 0 {
		t.Errorf("expected out-of-range points to be dropped, got %v", got)
	}
}

func TestRefine_DeduplicatesNudgedPoints(t *testing.T) {
	boundary := oracleFunc(func(before, _ string) bool {
		return before == "A"
	})
	records := []element.Record{
		para("A", 400),
		para("B", 400),
		para("C", 400),
		para("D", 400),
	}
	r := NewRefiner(DefaultParams(), boundary)
	// Both points nudge to the same boundary.
	got := r.Refine(records, []int{2, 3})
	assertPoints(t, got, []int{1})
}
