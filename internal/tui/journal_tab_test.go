package tui

import (
	"testing"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalCycleFilters(t *testing.T) {
	m := loaded(t, &stubJournal{trades: sampleTrades()})

	m, _ = update(t, m, keyRunes("d"))
	assert.Equal(t, "LONG", m.State().Filter().Direction)
	require.Len(t, m.State().Visible(), 1)
	assert.Equal(t, "ES", m.State().Visible()[0].Instrument)

	m, _ = update(t, m, keyRunes("d"))
	assert.Equal(t, "SHORT", m.State().Filter().Direction)
	m, _ = update(t, m, keyRunes("d"))
	assert.Equal(t, journal.All, m.State().Filter().Direction)

	m, _ = update(t, m, keyRunes("p"))
	assert.Equal(t, journal.PerformanceWinners, m.State().Filter().Performance)
	assert.Len(t, m.State().Visible(), 1)

	m, _ = update(t, m, keyRunes("i"))
	assert.Equal(t, "ES", m.State().Filter().Instrument)
	m, _ = update(t, m, keyRunes("i"))
	assert.Equal(t, "NQ", m.State().Filter().Instrument)
	assert.Empty(t, m.State().Visible(), "filters intersect")

	m, _ = update(t, m, keyRunes("x"))
	assert.Len(t, m.State().Visible(), 2)
	assert.Equal(t, journal.All, m.State().Filter().Instrument)
}

func TestJournalDateFilter(t *testing.T) {
	m := loaded(t, &stubJournal{trades: sampleTrades()})

	m, _ = update(t, m, keyRunes("f"))
	m.journal.input.SetValue("")
	m, _ = update(t, m, keyRunes("2024-03-02"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), m.State().Filter().From)
	require.Len(t, m.State().Visible(), 1)
	assert.Equal(t, "NQ", m.State().Visible()[0].Instrument)

	m, _ = update(t, m, keyRunes("t"))
	m.journal.input.SetValue("March 1st")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.journal.Capturing(), "an invalid date keeps the input open")
	assert.Contains(t, m.View(), "date must be YYYY-MM-DD")

	m.journal.input.SetValue("")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.State().Filter().To.IsZero(), "an empty date leaves that side open")
}

func TestJournalSearch(t *testing.T) {
	m := loaded(t, &stubJournal{trades: sampleTrades()})

	m, _ = update(t, m, keyRunes("/"))
	m, _ = update(t, m, keyRunes("RETEST"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "RETEST", m.State().Filter().Text)
	require.Len(t, m.State().Visible(), 1)
	assert.Equal(t, domain.ID("t1"), m.State().Visible()[0].ID)
}

func TestJournalSearchKeepsSpaces(t *testing.T) {
	m := loaded(t, &stubJournal{trades: sampleTrades()})

	m, _ = update(t, m, keyRunes("/"))
	m, _ = update(t, m, keyRunes("retest "))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "retest ", m.State().Filter().Text)
	assert.Empty(t, m.State().Visible())
	assert.Equal(t, journal.EmptyFiltered, m.State().EmptyMessage())
}

func TestJournalCursorAndDetail(t *testing.T) {
	m := loaded(t, &stubJournal{trades: sampleTrades()})

	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.journal.Cursor(), "cursor stops at the last row")
	m, _ = update(t, m, keyRunes("k"))
	m, _ = update(t, m, keyRunes("k"))
	assert.Equal(t, 0, m.journal.Cursor())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "Entry 15000.00")
}

func TestJournalRefresh(t *testing.T) {
	store := &stubJournal{trades: sampleTrades()}
	m := loaded(t, store)

	store.trades = store.trades[:1]
	m, cmd := update(t, m, keyRunes("R"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Len(t, m.State().Trades(), 1)
}

func TestCycle(t *testing.T) {
	opts := []string{"A", "B", "C"}
	assert.Equal(t, "B", cycle(opts, "A"))
	assert.Equal(t, "A", cycle(opts, "C"))
	assert.Equal(t, "A", cycle(opts, "unknown"))
}
