package tui

import (
	"fmt"
	"strings"

	"trademind/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// StructuresModel lists recorded BOS/CHoCH signals.
type StructuresModel struct {
	services     Services
	structures   []domain.Structure
	scrollOffset int
	loading      bool
	err          error
	width        int
	height       int
}

// NewStructuresModel creates a new structures model.
func NewStructuresModel(svc Services) StructuresModel {
	return StructuresModel{services: svc, loading: true}
}

// Init fires the initial fetch.
func (m StructuresModel) Init() tea.Cmd {
	return loadStructuresCmd(m.services.Structures)
}

// Update handles incoming messages.
func (m StructuresModel) Update(msg tea.Msg) (StructuresModel, tea.Cmd) {
	switch msg := msg.(type) {
	case structuresMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.structures = msg.structures
			m.scrollOffset = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Refresh):
			m.loading = true
			return m, loadStructuresCmd(m.services.Structures)
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.scrollOffset < len(m.structures)-m.visibleRows() {
				m.scrollOffset++
			}
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}
		}
	}
	return m, nil
}

// View renders the structure list.
func (m StructuresModel) View() string {
	sections := []string{HeaderStyle.Render("  Market Structure"), ""}

	if m.err != nil {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}
	switch {
	case m.loading && len(m.structures) == 0:
		sections = append(sections, SubtextStyle.Render("  Loading..."))
		return strings.Join(sections, "\n")
	case len(m.structures) == 0:
		sections = append(sections, SubtextStyle.Render("  No structures yet"))
		return strings.Join(sections, "\n")
	}

	sections = append(sections, SubtextStyle.Render(
		fmt.Sprintf("  %-16s %-6s %-6s %-8s %12s", "Time", "Instr", "Type", "Dir", "Level")))

	end := min(m.scrollOffset+m.visibleRows(), len(m.structures))
	for i := m.scrollOffset; i < end; i++ {
		sections = append(sections, "  "+FormatStructure(m.structures[i], m.services.Location))
	}
	if len(m.structures) > m.visibleRows() {
		sections = append(sections, SubtextStyle.Render(
			fmt.Sprintf("  Showing %d-%d of %d (j/k to scroll)", m.scrollOffset+1, end, len(m.structures))))
	}

	sections = append(sections, "", SubtextStyle.Render("  [R] refresh  [j/k] scroll"))
	return strings.Join(sections, "\n")
}

// SetSize updates the model dimensions.
func (m *StructuresModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Count returns the number of loaded structures (for testing).
func (m StructuresModel) Count() int { return len(m.structures) }

func (m StructuresModel) visibleRows() int {
	rows := m.height - 8
	if rows < 5 {
		rows = 5
	}
	return rows
}
