package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabriel-vasile/mimetype"
)

const (
	fetchTimeout  = 15 * time.Second
	actionTimeout = 90 * time.Second
)

var errNoJournal = errors.New("journal service not available")

type tradesMsg struct {
	trades []domain.Trade
	err    error
}

type structuresMsg struct {
	structures []domain.Structure
	err        error
}

type actionKind int

const (
	actionNotes actionKind = iota
	actionScreenshot
	actionAnalyze
)

func (k actionKind) String() string {
	switch k {
	case actionNotes:
		return "save notes"
	case actionScreenshot:
		return "attach screenshot"
	default:
		return "analyze"
	}
}

// actionMsg reports a trade action run against a clone of the state. When
// the action succeeded (or only its reload failed) the clone carries the
// reloaded trades.
type actionMsg struct {
	kind   actionKind
	result string
	err    error
	state  *journal.State
}

func (m actionMsg) reloaded() bool {
	return m.state != nil && (m.err == nil || m.err == m.state.LoadErr())
}

type selectTradeMsg struct{ id domain.ID }

func loadTradesCmd(state *journal.State, store journal.Store) tea.Cmd {
	if store == nil {
		return func() tea.Msg { return tradesMsg{err: errNoJournal} }
	}
	snap := state.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		err := snap.Load(ctx)
		return tradesMsg{trades: snap.Trades(), err: err}
	}
}

func loadStructuresCmd(lister StructureLister) tea.Cmd {
	return func() tea.Msg {
		if lister == nil {
			return structuresMsg{err: fmt.Errorf("structure service not available")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		structures, err := lister.ListStructures(ctx)
		return structuresMsg{structures: structures, err: err}
	}
}

func saveNotesCmd(state *journal.State, store journal.Store, id domain.ID, notes string) tea.Cmd {
	return runAction(state, store, actionNotes, func(ctx context.Context, snap *journal.State) (string, error) {
		return "Notes saved", snap.SaveNotes(ctx, id, notes)
	})
}

func attachScreenshotCmd(state *journal.State, store journal.Store, readFile func(string) ([]byte, error), id domain.ID, path string) tea.Cmd {
	if readFile == nil {
		readFile = os.ReadFile
	}
	return runAction(state, store, actionScreenshot, func(ctx context.Context, snap *journal.State) (string, error) {
		path = strings.TrimSpace(path)
		if path == "" {
			return "", domain.MissingField("screenshot path")
		}
		data, err := readFile(path)
		if err != nil {
			return "", fmt.Errorf("read screenshot: %w", err)
		}
		url, err := snap.AttachScreenshot(ctx, id, data, mimetype.Detect(data).String())
		if err != nil {
			return "", err
		}
		return "Screenshot attached: " + url, nil
	})
}

func analyzeCmd(state *journal.State, store journal.Store, id domain.ID) tea.Cmd {
	return runAction(state, store, actionAnalyze, func(ctx context.Context, snap *journal.State) (string, error) {
		return snap.Analyze(ctx, id)
	})
}

func runAction(state *journal.State, store journal.Store, kind actionKind, fn func(context.Context, *journal.State) (string, error)) tea.Cmd {
	if store == nil {
		return func() tea.Msg { return actionMsg{kind: kind, err: errNoJournal} }
	}
	snap := state.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		result, err := fn(ctx, snap)
		return actionMsg{kind: kind, result: result, err: err, state: snap}
	}
}
