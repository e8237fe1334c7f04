package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/essayflow/essayflow/internal/highlight"
	"github.com/essayflow/essayflow/internal/model"
)

// span is a run of essay text sharing one highlight state.
type span struct {
	text       string
	highlight  bool
	feedbackID int
	color      string
}

// essayLine is a single display line of the wrapped essay.
type essayLine struct {
	spans []span
}

// wrapSegments hard-wraps highlighted segments into display lines of at
// most width runes, preserving segment boundaries across line breaks.
// The returned map gives the first line each highlighted feedback item
// appears on, for scroll-to-highlight.
func wrapSegments(segments []highlight.Segment, width int) ([]essayLine, map[int]int) {
	if width < 1 {
		width = 1
	}

	var lines []essayLine
	firstLine := make(map[int]int)

	var cur essayLine
	curWidth := 0

	flush := func() {
		lines = append(lines, cur)
		cur = essayLine{}
		curWidth = 0
	}

	for _, seg := range segments {
		chunks := strings.Split(seg.Text, "\n")
		for ci, chunk := range chunks {
			if ci > 0 {
				flush()
			}
			runes := []rune(chunk)
			for len(runes) > 0 {
				room := width - curWidth
				if room <= 0 {
					flush()
					room = width
				}
				take := len(runes)
				if take > room {
					take = room
				}
				if seg.Highlight {
					if _, seen := firstLine[seg.FeedbackID]; !seen {
						firstLine[seg.FeedbackID] = len(lines)
					}
				}
				cur.spans = append(cur.spans, span{
					text:       string(runes[:take]),
					highlight:  seg.Highlight,
					feedbackID: seg.FeedbackID,
					color:      seg.Color,
				})
				curWidth += take
				runes = runes[take:]
			}
		}
	}
	if len(cur.spans) > 0 || len(lines) == 0 {
		flush()
	}

	return lines, firstLine
}

// styleEssayLine renders one wrapped line, painting highlighted spans
// with their range color. The active item's spans are inverted so the
// selected passage stands out from the other highlights.
func styleEssayLine(line essayLine, activeID int, hasActive bool) string {
	var b strings.Builder
	for _, sp := range line.spans {
		if !sp.highlight {
			b.WriteString(essayTextStyle.Render(sp.text))
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(sp.color)).
			Underline(true)
		if hasActive && sp.feedbackID == activeID {
			style = lipgloss.NewStyle().
				Foreground(colorInk).
				Background(lipgloss.Color(sp.color)).
				Bold(true)
		}
		b.WriteString(style.Render(sp.text))
	}
	return b.String()
}

// renderCard renders one feedback card. The active card is expanded to
// show details, the action step, and any rewrite suggestion.
func renderCard(item model.FeedbackItem, color string, anchored, selected, active bool, width int) string {
	var b strings.Builder

	score := scoreStyle(item.Score).Render(fmt.Sprintf("%3d", item.Score))
	title := cardTitleStyle.Render(truncate(item.Title, width-10))
	b.WriteString(fmt.Sprintf("%s  %s\n", score, title))
	b.WriteString(cardCategoryStyle.Render(item.Category))
	if !anchored && item.HasQuote() {
		b.WriteString("  " + unanchoredStyle.Render("(quote not found)"))
	}
	b.WriteByte('\n')
	b.WriteString(cardBodyStyle.Render(wrapText(item.Summary, width-4)))

	if active {
		if item.Details != "" {
			b.WriteByte('\n')
			b.WriteString(cardLabelStyle.Render("Details: "))
			b.WriteString(wrapText(item.Details, width-4))
		}
		if item.HasQuote() {
			b.WriteByte('\n')
			b.WriteString(cardQuoteStyle.Render("“" + truncate(item.Quote, width-8) + "”"))
		}
		if item.Action != "" {
			b.WriteByte('\n')
			b.WriteString(cardLabelStyle.Render("Try: "))
			b.WriteString(wrapText(item.Action, width-4))
		}
		if item.RewriteSuggestion != "" {
			b.WriteByte('\n')
			b.WriteString(cardLabelStyle.Render("Rewrite: "))
			b.WriteString(cardQuoteStyle.Render(wrapText(item.RewriteSuggestion, width-4)))
		}
	}

	border := colorDim
	if anchored {
		border = lipgloss.Color(color)
	}
	style := cardStyle.BorderForeground(border)
	if selected {
		style = style.Background(colorBgLight)
	}
	return style.Width(width).Render(b.String())
}

// wrapText greedily word-wraps plain text to the given width.
func wrapText(s string, width int) string {
	if width < 8 {
		width = 8
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		wl := len([]rune(w))
		if i > 0 {
			if lineLen+1+wl > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += wl
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return s
}
