package analyze

import "testing"

func TestEndsWithTerminator(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"A plain sentence.", true},
		{"Is this one?", true},
		{"Definitely!", true},
		{"trailing semicolon;", true},
		{"这是一个完整的句子。", true},
		{"这是问题吗？", true},
		{"感叹！", true},
		{"中文分号；", true},
		{"no terminator here", false},
		{"中间没有结束", false},
		{"comma,", false},
	}
	for _, tt := range tests {
		if got := EndsWithTerminator(tt.text); got != tt.want {
			t.Errorf("EndsWithTerminator(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestContainsCJK(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"plain ascii", false},
		{"café résumé", false},
		{"混合 mixed text", true},
		{"纯中文", true},
	}
	for _, tt := range tests {
		if got := ContainsCJK(tt.text); got != tt.want {
			t.Errorf("ContainsCJK(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsTerminatorToken(t *testing.T) {
	if !isTerminatorToken("。") {
		t.Error("expected single CJK period to count as terminator token")
	}
	if isTerminatorToken("。。") {
		t.Error("expected multi-rune token to be rejected")
	}
	if isTerminatorToken("a") {
		t.Error("expected letter to be rejected")
	}
}
