package tui

import (
	"trademind/internal/journal"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab represents a screen tab in the TUI.
type Tab int

const (
	TabJournal Tab = iota
	TabTrade
	TabStructures
)

var tabNames = []string{"1:Journal", "2:Trade", "3:Structures"}

// AppModel is the root Bubble Tea model. It owns the journal state shared by
// the journal and trade screens; fetched data is applied to it here, on the
// UI loop.
type AppModel struct {
	services   Services
	state      *journal.State
	activeTab  Tab
	journal    JournalModel
	trade      TradeModel
	structures StructuresModel
	width      int
	height     int
	quitting   bool
}

// NewAppModel creates the root application model with all child screens.
func NewAppModel(svc Services) AppModel {
	state := journal.NewState(svc.Journal, svc.Location)
	return AppModel{
		services:   svc,
		state:      state,
		activeTab:  TabJournal,
		journal:    NewJournalModel(state, svc.Journal),
		trade:      NewTradeModel(svc, state),
		structures: NewStructuresModel(svc),
	}
}

// Init fires the initial fetches.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		loadTradesCmd(m.state, m.services.Journal),
		m.structures.Init(),
	)
}

// Update handles incoming messages, routing to the active tab.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.capturing() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, DefaultKeyMap.Tab):
				m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
				return m, nil
			case key.Matches(msg, DefaultKeyMap.ShiftTab):
				m.activeTab = Tab((int(m.activeTab) + len(tabNames) - 1) % len(tabNames))
				return m, nil
			case msg.String() == "1":
				m.activeTab = TabJournal
				return m, nil
			case msg.String() == "2":
				m.activeTab = TabTrade
				return m, nil
			case msg.String() == "3":
				m.activeTab = TabStructures
				return m, nil
			}
		}

	case tradesMsg:
		m.state.Replace(msg.trades, msg.err)
		return m.updateJournalScreens(msg)

	case actionMsg:
		if msg.reloaded() {
			m.state.Replace(msg.state.Trades(), msg.state.LoadErr())
		}
		return m.updateJournalScreens(msg)

	case selectTradeMsg:
		m.activeTab = TabTrade
		var cmd tea.Cmd
		m.trade, cmd = m.trade.Update(msg)
		return m, cmd

	case structuresMsg:
		var cmd tea.Cmd
		m.structures, cmd = m.structures.Update(msg)
		return m, cmd
	}

	// Keyboard and other messages go to the active tab only.
	var cmd tea.Cmd
	switch m.activeTab {
	case TabJournal:
		m.journal, cmd = m.journal.Update(msg)
	case TabTrade:
		m.trade, cmd = m.trade.Update(msg)
	case TabStructures:
		m.structures, cmd = m.structures.Update(msg)
	}
	return m, cmd
}

func (m AppModel) updateJournalScreens(msg tea.Msg) (tea.Model, tea.Cmd) {
	var jcmd, tcmd tea.Cmd
	m.journal, jcmd = m.journal.Update(msg)
	m.trade, tcmd = m.trade.Update(msg)
	return m, tea.Batch(jcmd, tcmd)
}

// View renders the tab bar and active screen.
func (m AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var content string
	switch m.activeTab {
	case TabJournal:
		content = m.journal.View()
	case TabTrade:
		content = m.trade.View()
	case TabStructures:
		content = m.structures.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), content)
}

// SetSize updates dimensions on the root model and propagates to children.
func (m *AppModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.propagateSize()
}

// ActiveTab returns the currently active tab (for testing).
func (m AppModel) ActiveTab() Tab { return m.activeTab }

// State exposes the shared journal state (for testing).
func (m AppModel) State() *journal.State { return m.state }

func (m AppModel) capturing() bool {
	switch m.activeTab {
	case TabJournal:
		return m.journal.Capturing()
	case TabTrade:
		return m.trade.Capturing()
	}
	return false
}

func (m *AppModel) propagateSize() {
	contentHeight := m.height - 2 // tab bar
	m.journal.SetSize(m.width, contentHeight)
	m.trade.SetSize(m.width, contentHeight)
	m.structures.SetSize(m.width, contentHeight)
}

func (m AppModel) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(name))
		}
	}
	if m.services.Username != "" {
		tabs = append(tabs, SubtextStyle.Render("  "+m.services.Username))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
