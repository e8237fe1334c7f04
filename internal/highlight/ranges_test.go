package highlight

import (
	"testing"

	"github.com/essayflow/essayflow/internal/model"
)

func TestBuildRangesDropsUnlocatable(t *testing.T) {
	text := "I walked into the lab. It was loud."
	feedback := []model.FeedbackItem{
		{ID: 1, Quote: "walked into the lab"},
		{ID: 2, Quote: "nonexistent phrase"},
	}

	ranges := BuildRanges(text, feedback)
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}

	r := ranges[0]
	if r.FeedbackID != 1 {
		t.Errorf("expected feedback id 1, got %d", r.FeedbackID)
	}
	if r.Start != 2 {
		t.Errorf("expected start 2, got %d", r.Start)
	}
	if r.End-r.Start != 19 {
		t.Errorf("expected length 19, got %d", r.End-r.Start)
	}
}

func TestBuildRangesSortsByStart(t *testing.T) {
	text := "alpha beta gamma delta"
	feedback := []model.FeedbackItem{
		{ID: 1, Quote: "delta"},
		{ID: 2, Quote: "alpha"},
		{ID: 3, Quote: "gamma"},
	}

	ranges := BuildRanges(text, feedback)
	if len(ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(ranges))
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Start < ranges[i-1].Start {
			t.Fatalf("ranges not sorted: %v", ranges)
		}
	}
	if ranges[0].FeedbackID != 2 || ranges[2].FeedbackID != 1 {
		t.Errorf("unexpected order: %v", ranges)
	}
}

func TestBuildRangesStableOnEqualStart(t *testing.T) {
	// Two items quoting the same passage resolve to the same start; their
	// relative input order must survive the sort.
	text := "the lab was loud"
	feedback := []model.FeedbackItem{
		{ID: 5, Quote: "the lab"},
		{ID: 9, Quote: "the lab was"},
	}

	ranges := BuildRanges(text, feedback)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if ranges[0].FeedbackID != 5 || ranges[1].FeedbackID != 9 {
		t.Errorf("equal-start tie broke input order: %v", ranges)
	}
}

func TestBuildRangesEmptyQuoteSkipped(t *testing.T) {
	text := "some essay"
	feedback := []model.FeedbackItem{
		{ID: 1, Quote: ""},
		{ID: 2, Quote: "essay"},
	}

	ranges := BuildRanges(text, feedback)
	if len(ranges) != 1 || ranges[0].FeedbackID != 2 {
		t.Fatalf("expected only the quoted item, got %v", ranges)
	}
}

func TestColorForCategoryTable(t *testing.T) {
	// Category table wins over the palette.
	if got := ColorFor("Blue Jay Insider", 0); got != "#8be9fd" {
		t.Errorf("Blue Jay Insider: got %s", got)
	}
	if got := ColorFor("Narrative Arc", 3); got != "#bd93f9" {
		t.Errorf("Narrative Arc: got %s", got)
	}
}

func TestColorForPaletteCycles(t *testing.T) {
	if got := ColorFor("Something Else", 0); got != Palette[0] {
		t.Errorf("position 0: got %s, want %s", got, Palette[0])
	}
	if got := ColorFor("Something Else", len(Palette)); got != Palette[0] {
		t.Errorf("wraparound: got %s, want %s", got, Palette[0])
	}
	if got := ColorFor("Something Else", 3); got != Palette[3] {
		t.Errorf("position 3: got %s, want %s", got, Palette[3])
	}
}
