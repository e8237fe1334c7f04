package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/essayflow/essayflow/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	switch m.state {
	case stateSchools:
		return m.renderSchools()
	case stateAnalyzing:
		return analyzingStyle.Render(m.spin.View() + " Analyzing your essay...")
	case stateResults:
		return m.renderResults()
	default:
		return m.renderDraft()
	}
}

func (m Model) renderDraft() string {
	var b strings.Builder

	b.WriteString(panelHeaderStyle.Render("essayflow — Essay Lab"))
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')

	words := model.WordCount(m.input.Value())
	left := fmt.Sprintf(" %d words", words)
	if n := len(m.pickedSchools()); n > 0 {
		names := make([]string, 0, n)
		for _, s := range m.pickedSchools() {
			names = append(names, s.Name)
		}
		left += "  targeting " + strings.Join(names, ", ")
	}
	b.WriteString(m.statusBar(left, "ctrl+s analyze  ctrl+t schools  ctrl+c quit"))

	return b.String()
}

func (m Model) renderSchools() string {
	var b strings.Builder

	b.WriteString(panelHeaderStyle.Render(
		fmt.Sprintf("Target Schools (up to %d)", model.MaxSchools)))
	b.WriteByte('\n')

	for i, s := range model.Universities {
		mark := "[ ]"
		if m.picked[s.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  %s", mark, s.Name, schoolVibeStyle.Render(s.Vibe))

		switch {
		case i == m.schoolCursor:
			b.WriteString(schoolCursorStyle.Render(line))
		case m.picked[s.ID]:
			b.WriteString(schoolPickedStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(helpBarStyle.Render("space pick  enter done  q quit"))

	return schoolPanelStyle.Width(m.width - 2).Render(b.String())
}

func (m Model) renderResults() string {
	essayWidth := m.essayWidth()
	cardWidth := m.width - essayWidth - 1
	bodyHeight := m.height - 2

	essay := m.renderEssayPanel(essayWidth, bodyHeight)
	cards := m.renderCardPanel(cardWidth, bodyHeight)

	main := lipgloss.JoinHorizontal(lipgloss.Top, essay, " ", cards)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderResultsBar())
}

func (m Model) renderEssayPanel(width, height int) string {
	innerHeight := height - 2

	var b strings.Builder
	b.WriteString(panelHeaderStyle.Render("Your Essay"))
	b.WriteByte('\n')

	activeID, hasActive := m.sel.Active()

	visibleLines := innerHeight - 2
	if visibleLines < 1 {
		visibleLines = 1
	}
	end := m.essayOffset + visibleLines
	if end > len(m.essayLines) {
		end = len(m.essayLines)
	}
	for i := m.essayOffset; i < end; i++ {
		b.WriteString(styleEssayLine(m.essayLines[i], activeID, hasActive))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	return essayPanelStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderCardPanel(width, height int) string {
	innerWidth := width - 4
	innerHeight := height - 2

	var b strings.Builder
	b.WriteString(panelHeaderStyle.Render(
		fmt.Sprintf("Feedback — %s", m.filter.String())))
	b.WriteByte('\n')

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(unanchoredStyle.Render("No feedback matches this filter."))
		return cardPanelStyle.Width(width).Height(innerHeight).Render(b.String())
	}

	var cards []string
	for i, item := range visible {
		_, anchored := m.colorByID[item.ID]
		cards = append(cards, renderCard(
			item,
			m.colorByID[item.ID],
			anchored,
			i == m.cardCursor,
			m.sel.IsActive(item.ID),
			innerWidth,
		))
	}

	content := strings.Join(cards, "\n")
	lines := strings.Split(content, "\n")

	// Keep the selected card in view.
	offset := m.cardOffset
	start := 0
	for i := 0; i < m.cardCursor && i < len(cards); i++ {
		start += strings.Count(cards[i], "\n") + 2
	}
	if start < offset {
		offset = start
	}
	visibleLines := innerHeight - 2
	if visibleLines < 1 {
		visibleLines = 1
	}
	if start >= offset+visibleLines {
		offset = start - visibleLines + 1
	}

	end := offset + visibleLines
	if end > len(lines) {
		end = len(lines)
	}
	if offset > end {
		offset = end
	}
	b.WriteString(strings.Join(lines[offset:end], "\n"))

	return cardPanelStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderResultsBar() string {
	r := m.result

	left := fmt.Sprintf(" Score %d  %d words  AI %d%%",
		r.OverallScore, r.WordCount, r.AIProbability)
	if m.status != "" {
		left += "  " + m.status
	}

	right := fmt.Sprintf("%d/%d shown  f filter  e export  ? help ",
		len(m.visible()), len(r.Feedback))

	if m.errText != "" {
		return statusErrStyle.Width(m.width).Render(" " + m.errText)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) statusBar(left, right string) string {
	if m.errText != "" {
		return statusErrStyle.Width(m.width).Render(" " + m.errText)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(panelHeaderStyle.Render("essayflow — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"ctrl+s", "Analyze the draft"},
		{"ctrl+t", "Pick target schools"},
		{"↑/k", "Scroll essay up"},
		{"↓/j", "Scroll essay down"},
		{"n/Tab", "Next feedback card"},
		{"N/S-Tab", "Previous feedback card"},
		{"]", "Next highlight"},
		{"[", "Previous highlight"},
		{"enter", "Expand/collapse card"},
		{"f", "Cycle feedback filter"},
		{"e", "Export report to file"},
		{"m", "Copy mailto link"},
		{"x", "Back to draft"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press any key to close help"))

	return b.String()
}
