package splitter

import (
	"sort"

	"github.com/dgallion1/docsplit/internal/element"
)

// Refiner post-processes the raw split set: first a sentence-boundary
// nudge, then a pass that keeps headings glued to their first content
// block. Running it twice over the same input yields the same output.
type Refiner struct {
	params Params
	oracle BoundaryOracle
}

// NewRefiner builds a refiner for one run's parameters.
func NewRefiner(params Params, oracle BoundaryOracle) *Refiner {
	return &Refiner{params: params, oracle: oracle}
}

// Refine applies both passes and returns the final split set, unique and
// strictly ascending.
func (r *Refiner) Refine(records []element.Record, points []int) []int {
	nudged := r.nudgeToBoundaries(records, points)
	return mergeHeadingWithBody(records, nudged)
}

// nudgeToBoundaries moves split points that land mid-sentence to the
// nearest confirmed boundary within the search window. Points at or
// directly after a heading are pinned.
func (r *Refiner) nudgeToBoundaries(records []element.Record, points []int) []int {
	var refined []int

	for _, sp := range points {
		if sp < 0 || sp >= len(records) {
			continue
		}
		if records[sp].IsHeading || (sp > 0 && records[sp-1].IsHeading) {
			refined = append(refined, sp)
			continue
		}

		needAdjust := false
		if sp > 0 &&
			records[sp-1].Kind == element.Paragraph &&
			records[sp].Kind == element.Paragraph {
			needAdjust = !r.oracle.Boundary(records[sp-1].Text, records[sp].Text)
		}

		if needAdjust {
			if best := nearestBoundary(records, sp, r.params.SearchWindow, r.oracle); best >= 0 {
				refined = append(refined, best)
			} else {
				refined = append(refined, sp)
			}
		} else {
			refined = append(refined, sp)
		}
	}

	return dedupSorted(refined)
}

// mergeHeadingWithBody drops any split point that would separate a
// heading from its first non-empty following element, regardless of the
// empty elements between them.
func mergeHeadingWithBody(records []element.Record, points []int) []int {
	if len(points) == 0 {
		return nil
	}

	keep := make(map[int]bool, len(points))
	for _, sp := range points {
		keep[sp] = true
	}

	for _, sp := range points {
		i := sp - 1
		for i >= 0 && records[i].Empty() {
			i--
		}
		if i < 0 || !records[i].IsHeading {
			continue
		}
		headingIdx := i

		j := headingIdx + 1
		for j < len(records) && records[j].Empty() {
			j++
		}
		firstContentIdx := j

		if headingIdx < sp && sp <= firstContentIdx {
			delete(keep, sp)
		}
	}

	out := make([]int, 0, len(keep))
	for sp := range keep {
		out = append(out, sp)
	}
	sort.Ints(out)
	return out
}

func dedupSorted(points []int) []int {
	if len(points) == 0 {
		return nil
	}
	sort.Ints(points)
	out := points[:1]
	for _, sp := range points[1:] {
		if sp != out[len(out)-1] {
			out = append(out, sp)
		}
	}
	return out
}
