package tui

import (
	"fmt"
	"strings"

	"trademind/internal/domain"
	"trademind/internal/journal"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type tradeFocus int

const (
	focusNone tradeFocus = iota
	focusNotes
	focusPath
)

// TradeModel is the per-trade screen: notes, screenshot upload and AI
// feedback for the selected trade.
type TradeModel struct {
	services Services
	state    *journal.State

	notes textarea.Model
	path  textinput.Model
	focus tradeFocus

	busy   bool
	notice string
	err    error

	width  int
	height int
}

// NewTradeModel creates the trade screen over a shared state.
func NewTradeModel(svc Services, state *journal.State) TradeModel {
	ta := textarea.New()
	ta.Placeholder = "What was the plan? How did you manage it?"
	ta.ShowLineNumbers = false
	ta.SetHeight(5)

	ti := textinput.New()
	ti.Prompt = "Screenshot file: "
	ti.Placeholder = "/path/to/chart.png"
	ti.CharLimit = 512

	return TradeModel{services: svc, state: state, notes: ta, path: ti}
}

// Update handles incoming messages.
func (m TradeModel) Update(msg tea.Msg) (TradeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tradesMsg:
		m.ensureSelection()
		return m, nil

	case selectTradeMsg:
		m.selectTrade(msg.id)
		return m, nil

	case actionMsg:
		m.busy = false
		if msg.err != nil {
			m.notice = ""
			m.err = fmt.Errorf("%s failed: %w", msg.kind, msg.err)
		} else {
			m.err = nil
			m.notice = msg.result
			if msg.kind == actionAnalyze {
				m.notice = "AI feedback saved"
			}
			if msg.kind == actionScreenshot {
				m.path.SetValue("")
			}
		}
		m.ensureSelection()
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusNotes:
			return m.updateNotes(msg)
		case focusPath:
			return m.updatePath(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m TradeModel) updateKeys(msg tea.KeyMsg) (TradeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Down):
		m.step(1)
	case key.Matches(msg, DefaultKeyMap.Up):
		m.step(-1)
	case key.Matches(msg, DefaultKeyMap.Refresh):
		return m, loadTradesCmd(m.state, m.services.Journal)
	}

	t, ok := m.state.Selected()
	if !ok || m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, DefaultKeyMap.Notes):
		m.focus = focusNotes
		return m, m.notes.Focus()
	case key.Matches(msg, DefaultKeyMap.Screenshot):
		m.focus = focusPath
		return m, m.path.Focus()
	case key.Matches(msg, DefaultKeyMap.Analyze):
		m.start("Requesting AI feedback...")
		return m, analyzeCmd(m.state, m.services.Journal, t.ID)
	}
	return m, nil
}

func (m TradeModel) updateNotes(msg tea.KeyMsg) (TradeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Cancel):
		m.blur()
		m.resetNotes()
		return m, nil
	case key.Matches(msg, DefaultKeyMap.Save):
		t, ok := m.state.Selected()
		m.blur()
		if !ok {
			return m, nil
		}
		m.start("Saving notes...")
		return m, saveNotesCmd(m.state, m.services.Journal, t.ID, m.notes.Value())
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m TradeModel) updatePath(msg tea.KeyMsg) (TradeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Cancel):
		m.blur()
		return m, nil
	case msg.Type == tea.KeyEnter:
		t, ok := m.state.Selected()
		m.blur()
		if !ok {
			return m, nil
		}
		m.start("Uploading screenshot...")
		return m, attachScreenshotCmd(m.state, m.services.Journal, m.services.ReadFile, t.ID, m.path.Value())
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

// View renders the trade screen.
func (m TradeModel) View() string {
	var sections []string
	sections = append(sections, HeaderStyle.Render("  Trade"))

	t, ok := m.state.Selected()
	if !ok {
		msg := m.state.EmptyMessage()
		if msg == "" {
			msg = "Select a trade with j/k"
		}
		sections = append(sections, SubtextStyle.Render("  "+msg))
		return strings.Join(sections, "\n")
	}

	visible := m.state.Visible()
	pos := indexOf(visible, t.ID)
	position := "not in current filter"
	if pos >= 0 {
		position = fmt.Sprintf("%d of %d", pos+1, len(visible))
	}
	sections = append(sections,
		"  "+FormatTrade(t, m.state.Location())+"  "+SubtextStyle.Render("("+position+")"),
		BorderStyle.Width(max(m.width-4, 40)).Render(RenderTradeDetail(t)),
		"",
		HeaderStyle.Render("  Notes"),
		m.notes.View(),
		"",
		"  "+m.path.View(),
	)

	if m.busy {
		sections = append(sections, NoticeStyle.Render("  "+m.notice))
	} else if m.err != nil {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	} else if m.notice != "" {
		sections = append(sections, NoticeStyle.Render("  "+m.notice))
	}

	help := "  [j/k] select  [n] notes  [s] screenshot  [a] AI feedback  [R] refresh"
	switch m.focus {
	case focusNotes:
		help = "  [ctrl+s] save  [esc] cancel"
	case focusPath:
		help = "  [enter] upload  [esc] cancel"
	}
	sections = append(sections, "", SubtextStyle.Render(help))
	return strings.Join(sections, "\n")
}

// SetSize updates the model dimensions.
func (m *TradeModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.notes.SetWidth(max(w-4, 20))
}

// Capturing reports whether a text input owns the keyboard.
func (m TradeModel) Capturing() bool { return m.focus != focusNone }

// Notice returns the last action outcome (for testing).
func (m TradeModel) Notice() (string, error) { return m.notice, m.err }

func (m *TradeModel) start(notice string) {
	m.busy = true
	m.err = nil
	m.notice = notice
}

func (m *TradeModel) blur() {
	m.focus = focusNone
	m.notes.Blur()
	m.path.Blur()
}

func (m *TradeModel) step(delta int) {
	visible := m.state.Visible()
	if len(visible) == 0 {
		return
	}
	pos := 0
	if t, ok := m.state.Selected(); ok {
		if i := indexOf(visible, t.ID); i >= 0 {
			pos = (i + delta + len(visible)) % len(visible)
		}
	}
	m.selectTrade(visible[pos].ID)
}

func (m *TradeModel) selectTrade(id domain.ID) {
	if m.state.Select(id) {
		m.err = nil
		m.notice = ""
		m.resetNotes()
	}
}

// ensureSelection keeps a valid selection after reloads and refreshes the
// editor unless the user is typing in it.
func (m *TradeModel) ensureSelection() {
	if _, ok := m.state.Selected(); !ok {
		if visible := m.state.Visible(); len(visible) > 0 {
			m.state.Select(visible[0].ID)
		}
	}
	if m.focus != focusNotes {
		m.resetNotes()
	}
}

func (m *TradeModel) resetNotes() {
	t, _ := m.state.Selected()
	m.notes.SetValue(domain.Deref(t.Notes))
}

func indexOf(trades []domain.Trade, id domain.ID) int {
	for i, t := range trades {
		if t.ID == id {
			return i
		}
	}
	return -1
}
