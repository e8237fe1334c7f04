// Package model defines the core data types shared across essayflow.
package model

import "strings"

// FeedbackItem is a single piece of feedback returned by the counselor model.
// Quote is the substring of the essay the feedback refers to; empty means
// general feedback with no anchor in the text.
type FeedbackItem struct {
	ID                int    `json:"id"`
	Category          string `json:"category"`
	Score             int    `json:"score"`
	Title             string `json:"title"`
	Summary           string `json:"summary"`
	Details           string `json:"details"`
	Quote             string `json:"quote"`
	Action            string `json:"action"`
	RewriteSuggestion string `json:"rewriteSuggestion,omitempty"`
}

// HasQuote reports whether the item is anchored to a passage of the essay.
func (f FeedbackItem) HasQuote() bool {
	return strings.TrimSpace(f.Quote) != ""
}

// AnalysisResult is the full response for one analysis run. Exactly one
// result is live per session; a re-analysis replaces it wholesale.
type AnalysisResult struct {
	WordCount        int            `json:"wordCount"`
	OverallScore     int            `json:"overallScore"`
	AIProbability    int            `json:"aiProbability"`
	ReadabilityGrade string         `json:"readabilityGrade"`
	Sentiment        string         `json:"sentiment"`
	UniquenessScore  string         `json:"uniquenessScore"`
	Summary          string         `json:"summary"`
	Feedback         []FeedbackItem `json:"feedback"`
}

// Item returns the feedback item with the given id, if present.
func (r *AnalysisResult) Item(id int) (FeedbackItem, bool) {
	for _, f := range r.Feedback {
		if f.ID == id {
			return f, true
		}
	}
	return FeedbackItem{}, false
}

// WordCount counts whitespace-separated words in an essay draft.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// MinEssayLen is the minimum draft length (in bytes) accepted for analysis.
const MinEssayLen = 50
