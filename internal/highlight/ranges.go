package highlight

import (
	"sort"

	"github.com/essayflow/essayflow/internal/model"
)

// Range is a resolved quote anchor: a position-bound slice of the essay
// tagged with the feedback item it belongs to and its display color.
// Ranges are derived state, recomputed whenever the essay or the analysis
// result changes.
type Range struct {
	Start      int    `json:"start"`
	End        int    `json:"end"` // exclusive
	FeedbackID int    `json:"feedback_id"`
	Color      string `json:"color"`
}

// BuildRanges locates every quoted feedback item in the essay text and
// returns the ranges sorted by start offset. Items whose quote cannot be
// located are dropped silently: they stay valid as general notes, they
// just have nothing to highlight. Ties on start keep the original
// feedback order (stable sort), which the renderer relies on.
//
// Overlapping ranges are passed through untouched; the segmenter resolves
// them. Quotes are usually disjoint, so overlap is rare but legal.
func BuildRanges(text string, feedback []model.FeedbackItem) []Range {
	var ranges []Range
	for i, item := range feedback {
		m, ok := Locate(text, item.Quote)
		if !ok {
			continue
		}
		ranges = append(ranges, Range{
			Start:      m.Start,
			End:        m.End(),
			FeedbackID: item.ID,
			Color:      ColorFor(item.Category, i),
		})
	}

	sort.SliceStable(ranges, func(a, b int) bool {
		return ranges[a].Start < ranges[b].Start
	})

	return ranges
}
