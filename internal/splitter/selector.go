package splitter

import (
	"github.com/dgallion1/docsplit/internal/element"
)

// BoundaryOracle is the sentence-boundary decision the selector and
// refiner consult. analyze.BoundaryOracle satisfies it.
type BoundaryOracle interface {
	Boundary(before, after string) bool
}

// hardOverflowRatio: once the accumulator passes MaxLength times this,
// the selector stops waiting for a good score and falls back to the
// nearest confirmed sentence boundary.
const hardOverflowRatio = 1.5

// forcedSplitGap is the minimum distance from the last split before the
// overflow fallback may split at the current element without a boundary.
const forcedSplitGap = 3

// proximityGap is the distance below which a fresh split point penalizes
// the score of the next candidate.
const proximityGap = 3

// Selector produces the raw ordered split set in a single forward scan.
type Selector struct {
	params Params
	oracle BoundaryOracle
}

// NewSelector builds a selector for one run's parameters.
func NewSelector(params Params, oracle BoundaryOracle) *Selector {
	return &Selector{params: params, oracle: oracle}
}

// Select scans the records and returns the raw split indices, strictly
// ascending. Index 0 is never a candidate; its length still counts
// toward the accumulator.
func (s *Selector) Select(records []element.Record) []int {
	var points []int
	acc := 0
	lastSplit := -1
	cooldown := 0

	for i, rec := range records {
		if i == 0 {
			acc += rec.WeightedLength
			continue
		}

		// Forced split before every heading, followed by a cooldown
		// window in which scoring is suppressed.
		if s.params.ForceSplitBeforeHeading && rec.IsHeading {
			if len(points) == 0 || points[len(points)-1] != i {
				points = append(points, i)
			}
			acc = 0
			lastSplit = i
			cooldown = s.params.HeadingCooldownElements
			continue
		}

		// Empty elements accumulate, never score, never burn cooldown.
		if rec.Empty() {
			acc += rec.WeightedLength
			continue
		}

		if cooldown > 0 {
			acc += rec.WeightedLength
			cooldown--
			continue
		}

		acc += rec.WeightedLength
		score := s.score(i, records, acc, points)

		if score >= s.params.MinSplitScore {
			points = append(points, i)
			acc = 0
			lastSplit = i
			continue
		}

		if float64(acc) > float64(s.params.MaxLength)*hardOverflowRatio {
			best := nearestBoundary(records, i, s.params.SearchWindow, s.oracle)
			if best >= 0 && best > lastSplit && (len(points) == 0 || best > points[len(points)-1]) {
				points = append(points, best)
				acc = 0
				lastSplit = best
			} else if i-lastSplit > forcedSplitGap {
				points = append(points, i)
				acc = 0
				lastSplit = i
			}
		}
	}

	return points
}

// score computes the additive split score for records[i] with the
// current accumulated length.
func (s *Selector) score(i int, records []element.Record, acc int, points []int) float64 {
	rec := records[i]
	score := 0.0

	if rec.Kind == element.Paragraph {
		if rec.IsHeading {
			score += s.params.HeadingScoreBonus
		}
		if rec.EndsWithTerminator {
			score += s.params.SentenceEndScoreBonus
		}

		// Continuity against the nearest non-empty predecessor: a
		// confirmed boundary earns the integrity weight, a broken
		// sentence costs a flat 10.
		// Table predecessors never break a sentence, so the term only
		// fires between two paragraphs.
		if prev := prevNonEmpty(records, i); prev >= 0 && records[prev].Kind == element.Paragraph {
			if s.oracle.Boundary(records[prev].Text, rec.Text) {
				score += s.params.SentenceIntegrityWeight
			} else {
				score -= 10
			}
		}
	} else {
		score += 6
	}

	// Splitting right after a heading strands it.
	if prev := prevNonEmptyParagraphSkip(records, i); prev >= 0 && records[prev].IsHeading {
		score -= s.params.HeadingAfterPenalty
	}

	// Length shaping.
	if acc >= s.params.MinLength {
		bonus := (acc - s.params.MinLength) / s.params.LengthScoreFactor
		if bonus > 4 {
			bonus = 4
		}
		score += float64(bonus)
	} else if float64(acc) < 0.7*float64(s.params.MinLength) {
		score -= 5
	}

	// Too close to the previous split.
	if len(points) > 0 && i-points[len(points)-1] < proximityGap {
		score -= 8
	}

	// Already over the hard target: lean toward splitting.
	if acc > s.params.MaxLength {
		score += 4
	}

	return score
}

// prevNonEmpty returns the nearest predecessor with weighted length > 0,
// of any kind, or -1.
func prevNonEmpty(records []element.Record, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !records[j].Empty() {
			return j
		}
	}
	return -1
}

// prevNonEmptyParagraphSkip walks backward over zero-length paragraphs
// only, returning the first element that is not one, or -1. A table stops
// the walk even when its weighted length is zero.
func prevNonEmptyParagraphSkip(records []element.Record, i int) int {
	j := i - 1
	for j >= 0 && records[j].Kind == element.Paragraph && records[j].Empty() {
		j--
	}
	if j < 0 {
		return -1
	}
	return j
}

// nearestBoundary scans up to window elements backward then forward from
// cur for the junction the oracle confirms, preferring the smaller
// distance; at equal distance the backward candidate wins because it is
// checked first.
func nearestBoundary(records []element.Record, cur, window int, oracle BoundaryOracle) int {
	best := -1
	minDist := int(^uint(0) >> 1)

	lo := cur - window
	if lo < 0 {
		lo = 0
	}
	for i := lo; i <= cur; i++ {
		if i > 0 && oracle.Boundary(records[i-1].Text, records[i].Text) {
			if d := cur - i; d < minDist {
				minDist = d
				best = i
			}
		}
	}

	hi := cur + window + 1
	if hi > len(records) {
		hi = len(records)
	}
	for i := cur + 1; i < hi; i++ {
		if oracle.Boundary(records[i-1].Text, records[i].Text) {
			if d := i - cur; d < minDist {
				minDist = d
				best = i
			}
		}
	}

	return best
}
