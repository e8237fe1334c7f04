// Package tui implements the Bubble Tea terminal user interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/essayflow/essayflow/internal/analyze"
	"github.com/essayflow/essayflow/internal/highlight"
	"github.com/essayflow/essayflow/internal/model"
	"github.com/essayflow/essayflow/internal/selection"
)

type state int

const (
	stateDraft state = iota
	stateSchools
	stateAnalyzing
	stateResults
)

// analysisMsg carries a finished analysis back into the update loop.
// gen ties it to the request that started it; results from a superseded
// request are dropped.
type analysisMsg struct {
	gen    uuid.UUID
	result *model.AnalysisResult
	err    error
}

// DraftReloadedMsg is sent from outside the program (the file watcher)
// when the draft file changes on disk.
type DraftReloadedMsg struct {
	Text string
}

// Model is the top-level Bubble Tea model for essayflow.
type Model struct {
	client *analyze.Client

	state  state
	width  int
	height int

	// Draft editor
	input textarea.Model
	draft string

	// School targeting
	schoolCursor int
	picked       map[string]bool

	// In-flight analysis
	spin spinner.Model
	gen  uuid.UUID

	// Results
	essay         string
	result        *model.AnalysisResult
	ranges        []highlight.Range
	segments      []highlight.Segment
	essayLines    []essayLine
	highlightLine map[int]int
	colorByID     map[int]string

	filter model.Filter
	sel    selection.Controller

	cardCursor  int // index into the visible card list
	essayOffset int
	cardOffset  int

	showHelp bool
	status   string
	errText  string
}

// New creates a TUI model. A non-empty draft that clears the length
// floor starts analyzing immediately.
func New(client *analyze.Client, draft string, schoolIDs []string) Model {
	input := textarea.New()
	input.Placeholder = "Paste your essay draft here..."
	input.CharLimit = 0
	input.SetValue(draft)
	input.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorPurple)),
	)

	picked := make(map[string]bool)
	for _, id := range schoolIDs {
		if _, ok := model.SchoolByID(id); ok && len(pickedIDs(picked)) < model.MaxSchools {
			picked[id] = true
		}
	}

	m := Model{
		client: client,
		input:  input,
		draft:  draft,
		spin:   spin,
		picked: picked,
	}
	if client != nil && len(strings.TrimSpace(draft)) >= model.MinEssayLen {
		m.state = stateAnalyzing
		m.gen = uuid.New()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.state == stateAnalyzing {
		return tea.Batch(m.spin.Tick, runAnalysis(m.client, m.gen, m.draft, m.pickedSchools()))
	}
	return textarea.Blink
}

func runAnalysis(client *analyze.Client, gen uuid.UUID, essay string, schools []model.School) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Analyze(context.Background(), essay, schools)
		return analysisMsg{gen: gen, result: result, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(m.width - 30)
		m.input.SetHeight(m.height - 6)
		if m.result != nil {
			m.rewrap()
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != stateAnalyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case analysisMsg:
		if msg.gen != m.gen {
			return m, nil // superseded request
		}
		if msg.err != nil {
			m.state = stateDraft
			m.errText = friendlyError(msg.err)
			return m, nil
		}
		m.applyResult(m.draft, msg.result)
		return m, nil

	case DraftReloadedMsg:
		m.input.SetValue(msg.Text)
		m.draft = msg.Text
		m.errText = ""
		if m.client != nil && len(strings.TrimSpace(msg.Text)) >= model.MinEssayLen {
			cmd := m.startAnalysis()
			return m, cmd
		}
		m.state = stateDraft
		return m, nil

	case exportedMsg:
		switch {
		case msg.err != nil:
			m.errText = "export failed: " + msg.err.Error()
		case msg.mailto:
			m.status = "mailto link copied to clipboard"
		default:
			m.status = "report written to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.state {
	case stateDraft:
		return m.handleDraftKey(msg)
	case stateSchools:
		return m.handleSchoolsKey(msg)
	case stateAnalyzing:
		if msg.Type == tea.KeyEsc {
			// Orphan the in-flight request; its result will not match.
			m.gen = uuid.New()
			m.state = stateDraft
		}
		return m, nil
	case stateResults:
		return m.handleResultsKey(msg)
	}
	return m, nil
}

func (m Model) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Analyze):
		essay := m.input.Value()
		if m.client == nil {
			m.errText = "no API key configured (run: essayflow key set)"
			return m, nil
		}
		if len(strings.TrimSpace(essay)) < model.MinEssayLen {
			m.errText = fmt.Sprintf("essay must be at least %d characters", model.MinEssayLen)
			return m, nil
		}
		m.draft = essay
		cmd := m.startAnalysis()
		return m, cmd

	case key.Matches(msg, keys.Schools):
		m.state = stateSchools
		return m, nil

	case key.Matches(msg, keys.Help) && m.input.Value() == "":
		m.showHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSchoolsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Down):
		if m.schoolCursor < len(model.Universities)-1 {
			m.schoolCursor++
		}

	case key.Matches(msg, keys.Up):
		if m.schoolCursor > 0 {
			m.schoolCursor--
		}

	case key.Matches(msg, keys.Pick):
		id := model.Universities[m.schoolCursor].ID
		if m.picked[id] {
			delete(m.picked, id)
		} else if len(pickedIDs(m.picked)) < model.MaxSchools {
			m.picked[id] = true
		} else {
			m.errText = fmt.Sprintf("pick at most %d schools", model.MaxSchools)
		}

	case msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc || key.Matches(msg, keys.Schools):
		m.state = stateDraft
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Down):
		if m.essayOffset < len(m.essayLines)-1 {
			m.essayOffset++
		}

	case key.Matches(msg, keys.Up):
		if m.essayOffset > 0 {
			m.essayOffset--
		}

	case key.Matches(msg, keys.NextCard):
		if m.cardCursor < len(m.visible())-1 {
			m.cardCursor++
		}

	case key.Matches(msg, keys.PrevCard):
		if m.cardCursor > 0 {
			m.cardCursor--
		}

	case key.Matches(msg, keys.NextHighlight):
		m.jumpHighlight(1)

	case key.Matches(msg, keys.PrevHighlight):
		m.jumpHighlight(-1)

	case key.Matches(msg, keys.Toggle):
		visible := m.visible()
		if m.cardCursor < len(visible) {
			req := m.sel.ToggleFromCard(visible[m.cardCursor].ID)
			m.applyScroll(req)
		}

	case key.Matches(msg, keys.Filter):
		m.cycleFilter()

	case key.Matches(msg, keys.Export):
		return m, exportReport(m.result)

	case key.Matches(msg, keys.Mailto):
		return m, exportMailto(m.result)

	case key.Matches(msg, keys.NewDraft):
		m.result = nil
		m.sel.Reset()
		m.filter = model.FilterAll
		m.state = stateDraft
		m.status = ""
		m.errText = ""

	case key.Matches(msg, keys.Help):
		m.showHelp = true
	}
	return m, nil
}

func (m *Model) startAnalysis() tea.Cmd {
	m.gen = uuid.New()
	m.state = stateAnalyzing
	m.errText = ""
	m.status = ""
	return tea.Batch(m.spin.Tick, runAnalysis(m.client, m.gen, m.draft, m.pickedSchools()))
}

func (m *Model) applyResult(essay string, result *model.AnalysisResult) {
	m.essay = essay
	m.result = result
	m.ranges = highlight.BuildRanges(essay, result.Feedback)
	m.segments = highlight.Split(essay, m.ranges)
	m.colorByID = make(map[int]string, len(m.ranges))
	for _, r := range m.ranges {
		m.colorByID[r.FeedbackID] = r.Color
	}
	m.filter = model.FilterAll
	m.sel.Reset()
	m.cardCursor = 0
	m.essayOffset = 0
	m.cardOffset = 0
	m.state = stateResults
	m.rewrap()
}

func (m *Model) rewrap() {
	m.essayLines, m.highlightLine = wrapSegments(m.segments, m.essayWidth()-4)
}

func (m *Model) cycleFilter() {
	m.filter = m.filter.Next()
	m.sel.ReconcileFilter(func(id int) bool {
		item, ok := m.result.Item(id)
		return ok && m.filter.Matches(item)
	})
	if n := len(m.visible()); m.cardCursor >= n {
		m.cardCursor = n - 1
		if m.cardCursor < 0 {
			m.cardCursor = 0
		}
	}
	m.cardOffset = 0
}

// jumpHighlight moves to the next (dir 1) or previous (dir -1) anchored
// highlight in text order and activates it from the highlight side, so
// the card pane scrolls to the matching card. Highlights whose item is
// hidden by the current filter are skipped.
func (m *Model) jumpHighlight(dir int) {
	if len(m.ranges) == 0 {
		return
	}

	idx := -1
	if id, ok := m.sel.Active(); ok {
		for i, r := range m.ranges {
			if r.FeedbackID == id {
				idx = i
				break
			}
		}
	}
	if idx == -1 && dir < 0 {
		idx = len(m.ranges)
	}

	for idx += dir; idx >= 0 && idx < len(m.ranges); idx += dir {
		item, ok := m.result.Item(m.ranges[idx].FeedbackID)
		if !ok || !m.filter.Matches(item) {
			continue
		}
		id := m.ranges[idx].FeedbackID
		req := m.sel.ActivateFromHighlight(id)
		if line, ok := m.highlightLine[id]; ok {
			m.essayOffset = line
		}
		m.applyScroll(req)
		return
	}
}

func (m *Model) applyScroll(req selection.ScrollRequest) {
	switch req.Target {
	case selection.ScrollToHighlight:
		if line, ok := m.highlightLine[req.ID]; ok {
			m.essayOffset = line
		}
	case selection.ScrollToCard:
		for i, item := range m.visible() {
			if item.ID == req.ID {
				m.cardCursor = i
				m.cardOffset = 0
				break
			}
		}
	}
}

func (m Model) visible() []model.FeedbackItem {
	if m.result == nil {
		return nil
	}
	return m.filter.Apply(m.result.Feedback)
}

func (m Model) pickedSchools() []model.School {
	return model.SchoolsByIDs(pickedIDs(m.picked))
}

// pickedIDs returns chosen school ids in the catalog's order so the
// prompt is stable across runs.
func pickedIDs(picked map[string]bool) []string {
	var ids []string
	for _, s := range model.Universities {
		if picked[s.ID] {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func (m Model) essayWidth() int {
	w := m.width * 3 / 5
	if w < 30 {
		w = 30
	}
	return w
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, analyze.ErrEssayTooShort):
		return fmt.Sprintf("essay must be at least %d characters", model.MinEssayLen)
	case errors.Is(err, analyze.ErrMissingCredential):
		return "API key rejected (run: essayflow key set)"
	case errors.Is(err, analyze.ErrUnsupportedModel):
		return "model unavailable, try again later or set a different model"
	case errors.Is(err, analyze.ErrMalformedResponse):
		return "the model returned an unreadable response, try again"
	default:
		return err.Error()
	}
}

// Run starts the TUI application.
func Run(client *analyze.Client, draft string, schoolIDs []string) error {
	_, err := NewProgram(client, draft, schoolIDs).Run()
	return err
}

// NewProgram builds the Bubble Tea program without starting it, so
// callers can Send messages in (the draft file watcher does).
func NewProgram(client *analyze.Client, draft string, schoolIDs []string) *tea.Program {
	return tea.NewProgram(New(client, draft, schoolIDs), tea.WithAltScreen())
}
