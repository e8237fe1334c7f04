package model

// Filter selects a view of the feedback list by score band.
type Filter int

const (
	FilterAll Filter = iota
	FilterCritical
	FilterHighImpact
)

// Score thresholds for the filter bands. Fixed on purpose: the UI
// vocabulary stays small and the bands mean the same thing everywhere.
const (
	CriticalBelow  = 75
	HighImpactFrom = 90
)

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterCritical:
		return "critical"
	case FilterHighImpact:
		return "high-impact"
	default:
		return "unknown"
	}
}

// Next cycles to the following filter, wrapping after high-impact.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterCritical
	case FilterCritical:
		return FilterHighImpact
	default:
		return FilterAll
	}
}

// Matches reports whether the item passes the filter.
func (f Filter) Matches(item FeedbackItem) bool {
	switch f {
	case FilterCritical:
		return item.Score < CriticalBelow
	case FilterHighImpact:
		return item.Score >= HighImpactFrom
	default:
		return true
	}
}

// Apply returns the order-preserving subsequence of feedback passing the
// filter. The input slice is never modified.
func (f Filter) Apply(feedback []FeedbackItem) []FeedbackItem {
	if f == FilterAll {
		out := make([]FeedbackItem, len(feedback))
		copy(out, feedback)
		return out
	}
	var out []FeedbackItem
	for _, item := range feedback {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
