package highlight

// Segment is a contiguous slice of the essay, classified as plain text or
// as a highlight carrying its feedback id and color. Concatenating the
// Text of every segment, in order, reproduces the essay exactly.
type Segment struct {
	Text       string `json:"text"`
	Highlight  bool   `json:"highlight"`
	FeedbackID int    `json:"feedback_id,omitempty"`
	Color      string `json:"color,omitempty"`
}

// Split partitions text into segments according to ranges, which must be
// sorted by Start (BuildRanges output). A range that begins inside an
// already-emitted highlight is clamped to start where that highlight
// ended; if clamping empties it, no highlight is emitted for it at all.
// The earlier, overlapping quote wins and the later item remains card-only.
func Split(text string, ranges []Range) []Segment {
	var segments []Segment
	cursor := 0

	for _, r := range ranges {
		start, end := r.Start, r.End
		if start < cursor {
			start = cursor
		}
		if end <= start {
			continue // fully superseded by an earlier highlight
		}
		if start > cursor {
			segments = append(segments, Segment{Text: text[cursor:start]})
		}
		segments = append(segments, Segment{
			Text:       text[start:end],
			Highlight:  true,
			FeedbackID: r.FeedbackID,
			Color:      r.Color,
		})
		cursor = end
	}

	if cursor < len(text) {
		segments = append(segments, Segment{Text: text[cursor:]})
	}

	return segments
}
