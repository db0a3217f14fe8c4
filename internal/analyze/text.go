package analyze

import "strings"

// terminators is the sentence-terminator set shared by the heading
// classifier, the extractor and the boundary oracle. Both CJK and
// Latin-script punctuation count.
const terminators = "。！？.!?；;"

// EndsWithTerminator reports whether s ends with a sentence terminator.
func EndsWithTerminator(s string) bool {
	if s == "" {
		return false
	}
	rs := []rune(s)
	return strings.ContainsRune(terminators, rs[len(rs)-1])
}

func isTerminatorToken(tok string) bool {
	rs := []rune(tok)
	return len(rs) == 1 && strings.ContainsRune(terminators, rs[0])
}

// ContainsCJK reports whether s contains any CJK unified ideograph.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
