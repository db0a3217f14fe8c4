package analyze

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxHeadingRunes rejects long paragraphs outright: real headings are
// short, and a long match against the outline patterns is almost always a
// numbered body paragraph.
const maxHeadingRunes = 50

// defaultHeadingPatterns are tried in order against trimmed text. The
// list mixes CJK chapter markers, CJK/Latin enumerations, parenthesised
// numerals and dotted outline numbers.
var defaultHeadingPatterns = []string{
	`^第[一二三四五六七八九十百千]+[章节]`,
	`^[一二三四五六七八九十]+[、.]`,
	`^\d+(\.\d+)*\s*[\x{4e00}-\x{9fff}]{0,30}$`,
	`^[(（][一二三四五六七八九十]+[)）]`,
	`^[(（]?\d+[)）]`,
}

// HeadingClassifier decides whether a text span is a heading, from a
// style-name hint or from content heuristics.
type HeadingClassifier struct {
	patterns []*regexp.Regexp
}

// NewHeadingClassifier compiles the default heading patterns plus any
// operator-supplied custom patterns, appended after the defaults so the
// defaults keep precedence.
func NewHeadingClassifier(custom []string) (*HeadingClassifier, error) {
	exprs := make([]string, 0, len(defaultHeadingPatterns)+len(custom))
	exprs = append(exprs, defaultHeadingPatterns...)
	exprs = append(exprs, custom...)

	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		p, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile heading pattern %q: %w", expr, err)
		}
		patterns = append(patterns, p)
	}
	return &HeadingClassifier{patterns: patterns}, nil
}

// IsHeadingStyle reports whether a paragraph style name marks a heading.
func IsHeadingStyle(styleName string) bool {
	return strings.HasPrefix(styleName, "Heading") ||
		strings.HasPrefix(styleName, "heading") ||
		strings.HasPrefix(styleName, "标题")
}

// IsHeading classifies trimmed paragraph text. A heading style hint wins
// immediately; otherwise overlong text and terminator-final text are body
// text, and the first matching pattern decides.
func (c *HeadingClassifier) IsHeading(text, styleName string) bool {
	if IsHeadingStyle(styleName) {
		return true
	}
	if text == "" {
		return false
	}
	if utf8.RuneCountInString(text) > maxHeadingRunes || EndsWithTerminator(text) {
		return false
	}
	stripped := strings.TrimSpace(text)
	for _, p := range c.patterns {
		if p.MatchString(stripped) {
			return true
		}
	}
	return false
}
