package analyze

import "testing"

func TestBoundary_TerminatorFastPath(t *testing.T) {
	o := NewBoundaryOracle()
	tests := []struct {
		before, after string
	}{
		{"The sentence ends here.", "A new one begins"},
		{"Really?", "Yes"},
		{"上一句到此结束。", "新的一句开始"},
		{"真的吗？", "是的"},
	}
	for _, tt := range tests {
		if !o.Boundary(tt.before, tt.after) {
			t.Errorf("Boundary(%q, %q) = false, want true", tt.before, tt.after)
		}
	}
}

func TestBoundary_MidSentenceLatin(t *testing.T) {
	o := NewBoundaryOracle()
	// The junction sits inside a clause; no tokenizer should call this a
	// sentence boundary.
	if o.Boundary("The quick brown", "fox jumps over the lazy dog") {
		t.Error("expected mid-clause junction to be a non-boundary")
	}
}

func TestBoundary_Memoized(t *testing.T) {
	o := NewBoundaryOracle()
	before, after := "The quick brown", "fox jumps"
	first := o.Boundary(before, after)
	second := o.Boundary(before, after)
	if first != second {
		t.Errorf("expected memoized result to be stable, got %v then %v", first, second)
	}
}
