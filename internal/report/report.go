// Package report renders an analysis result for export: plain text for
// email bodies and files, markdown for tooling. Print/PDF layout is left
// to whatever consumes the text.
package report

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/essayflow/essayflow/internal/model"
)

// Subject is the email subject line for shared reports.
const Subject = "Your Essay Lab Analysis"

// RenderText produces the plain-text report used for email bodies and
// text export.
func RenderText(result *model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("ESSAY LAB REPORT\n")
	b.WriteString("================\n\n")

	b.WriteString("SUMMARY\n")
	b.WriteString(result.Summary)
	b.WriteString("\n\n")

	b.WriteString("METRICS\n")
	fmt.Fprintf(&b, "* Score: %d/100\n", result.OverallScore)
	fmt.Fprintf(&b, "* Readability: %s\n", result.ReadabilityGrade)
	fmt.Fprintf(&b, "* Uniqueness: %s\n", result.UniquenessScore)
	fmt.Fprintf(&b, "* AI Probability: %d%%\n", result.AIProbability)
	fmt.Fprintf(&b, "* Words: %d\n", result.WordCount)
	b.WriteString("\n")

	b.WriteString("DETAILED FEEDBACK\n")
	b.WriteString("=================\n")
	for _, f := range result.Feedback {
		fmt.Fprintf(&b, "\n%s (%d/100)\n", strings.ToUpper(f.Category), f.Score)
		fmt.Fprintf(&b, "%q\n", f.Title)
		b.WriteString(f.Summary)
		b.WriteString("\n")
		if f.HasQuote() {
			fmt.Fprintf(&b, "> QUOTE: %q\n", f.Quote)
		}
		fmt.Fprintf(&b, "> ACTION: %s\n", f.Action)
		if f.RewriteSuggestion != "" {
			fmt.Fprintf(&b, "> REWRITE: %s\n", f.RewriteSuggestion)
		}
	}

	b.WriteString("\n------------------------------------------------\n")
	b.WriteString("Generated by essayflow\n")

	return b.String()
}

// RenderMarkdown produces a markdown report for check --format markdown.
func RenderMarkdown(result *model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Essay Analysis Report\n\n")
	b.WriteString(result.Summary)
	b.WriteString("\n\n")

	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Overall score | %d/100 |\n", result.OverallScore)
	fmt.Fprintf(&b, "| Readability | %s |\n", result.ReadabilityGrade)
	fmt.Fprintf(&b, "| Sentiment | %s |\n", result.Sentiment)
	fmt.Fprintf(&b, "| Uniqueness | %s |\n", result.UniquenessScore)
	fmt.Fprintf(&b, "| AI probability | %d%% |\n", result.AIProbability)
	fmt.Fprintf(&b, "| Word count | %d |\n\n", result.WordCount)

	b.WriteString("## Feedback\n")
	for _, f := range result.Feedback {
		fmt.Fprintf(&b, "\n### %s — %s (%d/100)\n\n", f.Category, f.Title, f.Score)
		b.WriteString(f.Details)
		b.WriteString("\n")
		if f.HasQuote() {
			fmt.Fprintf(&b, "\n> %s\n", f.Quote)
		}
		fmt.Fprintf(&b, "\n**Action:** %s\n", f.Action)
		if f.RewriteSuggestion != "" {
			fmt.Fprintf(&b, "\n**Suggested rewrite:** %s\n", f.RewriteSuggestion)
		}
	}

	return b.String()
}

// MailtoURL composes a mailto: link carrying the plain-text report, for
// handing to the platform's default mail composer. to may be empty.
func MailtoURL(to string, result *model.AnalysisResult) string {
	q := url.Values{}
	q.Set("subject", Subject)
	q.Set("body", RenderText(result))
	// url.Values encodes spaces as "+", which mail clients read literally.
	encoded := strings.ReplaceAll(q.Encode(), "+", "%20")
	return "mailto:" + to + "?" + encoded
}
