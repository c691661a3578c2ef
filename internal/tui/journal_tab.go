package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type editField int

const (
	editNone editField = iota
	editSearch
	editFrom
	editTo
)

var (
	directionOptions   = []string{journal.All, string(domain.DirectionLong), string(domain.DirectionShort)}
	performanceOptions = []journal.Performance{journal.PerformanceAll, journal.PerformanceWinners, journal.PerformanceLosers}
)

// JournalModel is the trade list screen: stats, filters and the list.
type JournalModel struct {
	state    *journal.State
	store    journal.Store
	cursor   int
	offset   int
	expanded bool
	loading  bool

	editing  editField
	input    textinput.Model
	inputErr string

	width  int
	height int
}

// NewJournalModel creates the journal screen over a shared state.
func NewJournalModel(state *journal.State, store journal.Store) JournalModel {
	ti := textinput.New()
	ti.CharLimit = 120
	return JournalModel{state: state, store: store, loading: true, input: ti}
}

// Update handles incoming messages.
func (m JournalModel) Update(msg tea.Msg) (JournalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tradesMsg:
		m.loading = false
		m.clamp()
		return m, nil

	case actionMsg:
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		if m.editing != editNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m JournalModel) updateKeys(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	visible := m.state.Visible()
	f := m.state.Filter()

	switch {
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
		m.scroll()
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scroll()
	case key.Matches(msg, DefaultKeyMap.Expand):
		m.expanded = !m.expanded
	case key.Matches(msg, DefaultKeyMap.Open):
		if m.cursor < len(visible) {
			id := visible[m.cursor].ID
			return m, func() tea.Msg { return selectTradeMsg{id: id} }
		}
	case key.Matches(msg, DefaultKeyMap.Instrument):
		f.Instrument = cycle(append([]string{journal.All}, m.state.Instruments()...), f.Instrument)
		m.applyFilter(f)
	case key.Matches(msg, DefaultKeyMap.Direction):
		f.Direction = cycle(directionOptions, f.Direction)
		m.applyFilter(f)
	case key.Matches(msg, DefaultKeyMap.Performance):
		f.Performance = cycle(performanceOptions, f.Performance)
		m.applyFilter(f)
	case key.Matches(msg, DefaultKeyMap.Search):
		return m, m.beginEdit(editSearch, f.Text)
	case key.Matches(msg, DefaultKeyMap.From):
		return m, m.beginEdit(editFrom, dayValue(f.From))
	case key.Matches(msg, DefaultKeyMap.To):
		return m, m.beginEdit(editTo, dayValue(f.To))
	case key.Matches(msg, DefaultKeyMap.Reset):
		m.state.ResetFilter()
		m.cursor, m.offset = 0, 0
	case key.Matches(msg, DefaultKeyMap.Refresh):
		m.loading = true
		return m, loadTradesCmd(m.state, m.store)
	}
	return m, nil
}

func (m *JournalModel) beginEdit(field editField, value string) tea.Cmd {
	m.editing = field
	m.inputErr = ""
	switch field {
	case editSearch:
		m.input.Prompt = "Search notes: "
		m.input.Placeholder = "text in notes or AI feedback"
	case editFrom:
		m.input.Prompt = "From: "
		m.input.Placeholder = "YYYY-MM-DD, empty for open"
	case editTo:
		m.input.Prompt = "To: "
		m.input.Placeholder = "YYYY-MM-DD, empty for open"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m JournalModel) updateInput(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Cancel):
		m.endEdit()
		return m, nil
	case msg.Type == tea.KeyEnter:
		f := m.state.Filter()
		switch m.editing {
		case editSearch:
			f.Text = m.input.Value()
		case editFrom, editTo:
			day, err := parseDay(strings.TrimSpace(m.input.Value()), m.state.Location())
			if err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			if m.editing == editFrom {
				f.From = day
			} else {
				f.To = day
			}
		}
		m.applyFilter(f)
		m.endEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *JournalModel) endEdit() {
	m.editing = editNone
	m.inputErr = ""
	m.input.Blur()
}

func (m *JournalModel) applyFilter(f journal.Filter) {
	m.state.SetFilter(f)
	m.cursor, m.offset = 0, 0
}

// View renders the journal screen.
func (m JournalModel) View() string {
	sections := []string{RenderStats(m.state.Stats()), m.renderFilters()}

	if m.editing != editNone {
		sections = append(sections, "  "+m.input.View())
		if m.inputErr != "" {
			sections = append(sections, ErrorStyle.Render("  "+m.inputErr))
		}
	}
	sections = append(sections, SubtextStyle.Render(strings.Repeat("─", max(m.width-2, 10))))

	if err := m.state.LoadErr(); err != nil {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("  Error loading trades: %v", err)))
	}

	switch {
	case m.loading && len(m.state.Trades()) == 0:
		sections = append(sections, SubtextStyle.Render("  Loading trades..."))
	case m.state.EmptyMessage() != "":
		sections = append(sections, SubtextStyle.Render("  "+m.state.EmptyMessage()))
	default:
		sections = append(sections, m.renderList())
	}

	sections = append(sections, "", SubtextStyle.Render(
		"  [j/k] move  [enter] details  [e] open  [i/d/p] filters  [/] search  [f/t] dates  [x] reset  [R] refresh"))
	return strings.Join(sections, "\n")
}

func (m JournalModel) renderFilters() string {
	f := m.state.Filter()
	def := journal.DefaultFilter(m.state.Trades(), m.state.Location())
	text := f.Text
	if text == "" {
		text = "-"
	}
	chips := []string{
		RenderChip("From", formatDay(f.From), !f.From.Equal(def.From)),
		RenderChip("To", formatDay(f.To), !f.To.Equal(def.To)),
		RenderChip("Instrument", orAll(f.Instrument), !isAllValue(f.Instrument)),
		RenderChip("Direction", orAll(f.Direction), !isAllValue(f.Direction)),
		RenderChip("Performance", orAll(string(f.Performance)), !isAllValue(string(f.Performance))),
		RenderChip("Search", text, f.Text != ""),
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m JournalModel) renderList() string {
	visible := m.state.Visible()
	rows := m.visibleRows()
	end := min(m.offset+rows, len(visible))

	var lines []string
	for i := m.offset; i < end; i++ {
		line := "  " + FormatTrade(visible[i], m.state.Location())
		if i == m.cursor {
			line = SelectedStyle.Render("›") + " " + FormatTrade(visible[i], m.state.Location())
		}
		lines = append(lines, line)
		if i == m.cursor && m.expanded {
			lines = append(lines, BorderStyle.Width(max(m.width-6, 40)).Render(RenderTradeDetail(visible[i])))
		}
	}
	if len(visible) > rows {
		lines = append(lines, SubtextStyle.Render(
			fmt.Sprintf("  Showing %d-%d of %d", m.offset+1, end, len(visible))))
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the model dimensions.
func (m *JournalModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.scroll()
}

// Capturing reports whether a text input owns the keyboard.
func (m JournalModel) Capturing() bool { return m.editing != editNone }

// Cursor returns the highlighted row (for testing).
func (m JournalModel) Cursor() int { return m.cursor }

func (m JournalModel) visibleRows() int {
	rows := m.height - 14
	if m.expanded {
		rows -= 6
	}
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m *JournalModel) clamp() {
	n := len(m.state.Visible())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.scroll()
}

func (m *JournalModel) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func cycle[T comparable](options []T, current T) T {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

func parseDay(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD")
	}
	return day, nil
}

func dayValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func isAllValue(v string) bool { return v == "" || strings.EqualFold(v, journal.All) }

func orAll(v string) string {
	if isAllValue(v) {
		return journal.All
	}
	return v
}
