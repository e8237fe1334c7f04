package model

import (
	"testing"
)

func TestFilterString(t *testing.T) {
	tests := []struct {
		filter Filter
		want   string
	}{
		{FilterAll, "all"},
		{FilterCritical, "critical"},
		{FilterHighImpact, "high-impact"},
		{Filter(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.filter.String(); got != tt.want {
			t.Errorf("Filter(%d).String() = %q, want %q", tt.filter, got, tt.want)
		}
	}
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterAll
	order := []Filter{FilterCritical, FilterHighImpact, FilterAll}
	for i, want := range order {
		f = f.Next()
		if f != want {
			t.Fatalf("step %d: got %v, want %v", i, f, want)
		}
	}
}

func TestFilterApply(t *testing.T) {
	feedback := []FeedbackItem{
		{ID: 1, Score: 95},
		{ID: 2, Score: 74},
		{ID: 3, Score: 90},
		{ID: 4, Score: 75},
		{ID: 5, Score: 10},
	}

	all := FilterAll.Apply(feedback)
	if len(all) != len(feedback) {
		t.Fatalf("all filter: expected %d items, got %d", len(feedback), len(all))
	}

	critical := FilterCritical.Apply(feedback)
	wantCritical := []int{2, 5}
	if len(critical) != len(wantCritical) {
		t.Fatalf("critical: expected %d items, got %d", len(wantCritical), len(critical))
	}
	for i, id := range wantCritical {
		if critical[i].ID != id {
			t.Errorf("critical[%d].ID = %d, want %d", i, critical[i].ID, id)
		}
	}

	high := FilterHighImpact.Apply(feedback)
	wantHigh := []int{1, 3}
	if len(high) != len(wantHigh) {
		t.Fatalf("high-impact: expected %d items, got %d", len(wantHigh), len(high))
	}
	for i, id := range wantHigh {
		if high[i].ID != id {
			t.Errorf("high[%d].ID = %d, want %d", i, high[i].ID, id)
		}
	}
}

func TestFilterApplyDoesNotMutate(t *testing.T) {
	feedback := []FeedbackItem{{ID: 1, Score: 50}, {ID: 2, Score: 95}}
	FilterCritical.Apply(feedback)
	if feedback[0].ID != 1 || feedback[1].ID != 2 {
		t.Error("Apply mutated its input")
	}

	all := FilterAll.Apply(feedback)
	all[0].ID = 99
	if feedback[0].ID != 1 {
		t.Error("FilterAll.Apply returned a view sharing the backing array")
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"I walked into the lab.", 5},
		{"tabs\tand\nnewlines count", 4},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestSchoolByID(t *testing.T) {
	s, ok := SchoolByID("jhu")
	if !ok {
		t.Fatal("expected jhu to exist")
	}
	if s.Name != "Johns Hopkins" {
		t.Errorf("expected Johns Hopkins, got %q", s.Name)
	}

	if _, ok := SchoolByID("nope"); ok {
		t.Error("expected unknown id to be absent")
	}
}

func TestSchoolsByIDsCapsAtMax(t *testing.T) {
	schools := SchoolsByIDs([]string{"jhu", "bogus", "mit", "yale", "brown"})
	if len(schools) != MaxSchools {
		t.Fatalf("expected %d schools, got %d", MaxSchools, len(schools))
	}
	if schools[0].ID != "jhu" || schools[1].ID != "mit" || schools[2].ID != "yale" {
		t.Errorf("unexpected school order: %v", schools)
	}
}

func TestItemLookup(t *testing.T) {
	r := &AnalysisResult{Feedback: []FeedbackItem{{ID: 7, Title: "Hook"}}}
	item, ok := r.Item(7)
	if !ok || item.Title != "Hook" {
		t.Errorf("Item(7) = %+v, %v", item, ok)
	}
	if _, ok := r.Item(8); ok {
		t.Error("Item(8) should be absent")
	}
}
