package analyze

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-ego/gse"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// boundaryCacheSize bounds the memoization table. Refinement probes the
// same junctions repeatedly inside its search window, so hit rates are
// high even with a small cache.
const boundaryCacheSize = 1024

// boundaryPrefixTolerance is how far (in runes) a terminator token may
// sit from the junction for CJK text and still count as a boundary.
const boundaryPrefixTolerance = 5

type boundaryKey struct {
	before, after string
}

// BoundaryOracle decides whether the junction between two text spans is a
// sentence boundary. It is language-aware: CJK text goes through
// word-level segmentation, everything else through sentence-level
// segmentation. Results are memoized by the literal string pair.
//
// The oracle is pure and fail-safe: any internal segmentation error makes
// the junction a non-boundary, it never panics.
type BoundaryOracle struct {
	cache *lru.Cache[boundaryKey, bool]

	cjkOnce sync.Once
	cjkSeg  gse.Segmenter
	cjkOK   bool

	latinOnce sync.Once
	latinTok  *sentences.DefaultSentenceTokenizer
}

// NewBoundaryOracle creates an oracle. Segmenter dictionaries are loaded
// lazily on first use of each language path.
func NewBoundaryOracle() *BoundaryOracle {
	cache, _ := lru.New[boundaryKey, bool](boundaryCacheSize)
	return &BoundaryOracle{cache: cache}
}

// Boundary reports whether before|after is a sentence boundary.
func (o *BoundaryOracle) Boundary(before, after string) bool {
	if EndsWithTerminator(before) {
		return true
	}

	key := boundaryKey{before: before, after: after}
	if v, ok := o.cache.Get(key); ok {
		return v
	}

	combined := before + " " + after
	var result bool
	if ContainsCJK(combined) {
		result = o.cjkBoundary(combined, before)
	} else {
		result = o.latinBoundary(combined, before, after)
	}

	o.cache.Add(key, result)
	return result
}

// cjkBoundary segments the joined text and looks for a terminator token
// whose reconstructed prefix ends close enough to the junction.
func (o *BoundaryOracle) cjkBoundary(combined, before string) bool {
	o.cjkOnce.Do(func() {
		o.cjkOK = o.cjkSeg.LoadDict() == nil
	})
	if !o.cjkOK {
		return false
	}

	words := o.cjkSeg.Cut(combined, true)
	if len(words) < 2 {
		return false
	}

	beforeLen := utf8.RuneCountInString(before)
	prefix := 0
	for _, w := range words[:len(words)-1] {
		prefix += utf8.RuneCountInString(w)
		if !isTerminatorToken(w) {
			continue
		}
		d := prefix - beforeLen
		if d < 0 {
			d = -d
		}
		if d < boundaryPrefixTolerance {
			return true
		}
	}
	return false
}

// latinBoundary runs sentence segmentation on the joined text and checks
// whether any detected sentence aligns with the junction.
func (o *BoundaryOracle) latinBoundary(combined, before, after string) bool {
	o.latinOnce.Do(func() {
		tok, err := english.NewSentenceTokenizer(nil)
		if err == nil {
			o.latinTok = tok
		}
	})
	if o.latinTok == nil {
		return false
	}

	for _, s := range o.latinTok.Tokenize(combined) {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		if strings.HasSuffix(before, t) || strings.HasPrefix(after, t) {
			return true
		}
	}
	return false
}
