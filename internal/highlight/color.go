package highlight

import "strings"

// Palette cycled through for highlights whose category has no dedicated
// color. Hex values are understood by both lipgloss and the web UI.
var Palette = []string{
	"#f1fa8c", // yellow
	"#50fa7b", // green
	"#8be9fd", // blue
	"#bd93f9", // purple
	"#ff79c6", // pink
	"#ffb86c", // orange
	"#66d9ef", // cyan
	"#a4e400", // lime
}

// categoryColors maps category keywords to colors. Ordered slice, not a
// map: lookup is first-match-wins over a case-sensitive substring test,
// and iteration order must be deterministic.
var categoryColors = []struct {
	keyword string
	color   string
}{
	{"Blue Jay", "#8be9fd"},
	{"School Fit", "#8be9fd"},
	{"Narrative", "#bd93f9"},
	{"Hook", "#ffb86c"},
	{"Clich", "#ff79c6"}, // matches Cliché regardless of accent handling upstream
	{"Tone", "#50fa7b"},
}

// ColorFor picks the display color for a feedback item: the category table
// takes precedence, otherwise the palette is cycled by the item's position
// in the original feedback order.
func ColorFor(category string, position int) string {
	for _, cc := range categoryColors {
		if strings.Contains(category, cc.keyword) {
			return cc.color
		}
	}
	return Palette[position%len(Palette)]
}
