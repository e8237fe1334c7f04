package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/essayflow/essayflow/internal/model"
	"github.com/essayflow/essayflow/internal/report"
)

type exportedMsg struct {
	path   string
	mailto bool
	err    error
}

// exportReport writes the plain-text report for the current session to
// a timestamped file in the working directory.
func exportReport(result *model.AnalysisResult) tea.Cmd {
	return func() tea.Msg {
		path := fmt.Sprintf("essayflow-report-%s.txt", time.Now().Format("20060102-150405"))
		body := report.RenderText(result)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

// exportMailto puts a mailto: URL carrying the report on the clipboard,
// ready to paste into a browser or mail client. The recipient is left
// blank for the composer to fill in.
func exportMailto(result *model.AnalysisResult) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(report.MailtoURL("", result)); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{mailto: true}
	}
}
