package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed     = lipgloss.Color("#ff5555")
	colorGreen   = lipgloss.Color("#50fa7b")
	colorYellow  = lipgloss.Color("#f1fa8c")
	colorBlue    = lipgloss.Color("#8be9fd")
	colorPurple  = lipgloss.Color("#bd93f9")
	colorDim     = lipgloss.Color("#6272a4")
	colorBgLight = lipgloss.Color("#343746")
	colorFg      = lipgloss.Color("#f8f8f2")
	colorBorder  = lipgloss.Color("#44475a")
	colorInk     = lipgloss.Color("#282a36")
)

// Style definitions.
var (
	// Essay panel styles
	essayPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	essayTextStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	panelHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true).
				Padding(0, 0, 1, 0)

	// Feedback card styles
	cardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorDim).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true)

	cardCategoryStyle = lipgloss.NewStyle().
				Foreground(colorPurple)

	cardBodyStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)

	cardQuoteStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Italic(true)

	unanchoredStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	scoreHighStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	scoreMidStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	scoreLowStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	// Draft editor styles
	schoolPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	schoolPickedStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	schoolCursorStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Background(colorBorder)

	schoolVibeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Background(colorBgLight).
			Bold(true)

	// Analyzing screen
	analyzingStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(2, 4)

	// Help bar
	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

// scoreStyle maps a rubric score to a severity style.
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 90:
		return scoreHighStyle
	case score >= 75:
		return scoreMidStyle
	default:
		return scoreLowStyle
	}
}
