package journal

import (
	"context"
	"time"

	"trademind/internal/domain"
)

const (
	EmptyJournal  = "No trades yet"
	EmptyFiltered = "No trades match your filters"
)

// Store is the subset of the journal service the dashboard drives.
type Store interface {
	ListTrades(ctx context.Context) ([]domain.Trade, error)
	UpdateTrade(ctx context.Context, id domain.ID, upd domain.TradeUpdate) error
	AttachScreenshot(ctx context.Context, id domain.ID, data []byte, contentType string) (string, error)
	AnalyzeTrade(ctx context.Context, id domain.ID) (string, error)
}

// State is the dashboard's view model. It is not safe for concurrent use;
// the UI loop owns it and feeds it fetched data through Replace.
type State struct {
	store Store
	loc   *time.Location
	now   func() time.Time

	trades   []domain.Trade
	filter   Filter
	defaults Filter
	selected domain.ID
	loadErr  error
}

func NewState(store Store, loc *time.Location) *State {
	if loc == nil {
		loc = time.Local
	}
	return &State{store: store, loc: loc, now: time.Now}
}

// Load fetches the trade list and replaces the state with it.
func (s *State) Load(ctx context.Context) error {
	trades, err := s.store.ListTrades(ctx)
	s.Replace(trades, err)
	return err
}

// Replace installs a freshly fetched trade list. A fetch error leaves an
// empty journal and is kept for display. Risk/reward is recomputed from
// prices, the default date range is rebuilt, and a selection that no longer
// exists is cleared. A filter the user changed is kept as is.
func (s *State) Replace(trades []domain.Trade, err error) {
	s.loadErr = err
	if err != nil {
		trades = nil
	}
	s.trades = Normalize(trades)
	if s.trades == nil {
		s.trades = []domain.Trade{}
	}

	wasDefault := !s.filter.Active(s.defaults)
	s.defaults = DefaultFilter(s.trades, s.loc)
	if wasDefault {
		s.filter = s.defaults
	}
	if _, ok := s.find(s.selected); !ok {
		s.selected = ""
	}
}

// Clone returns an independent copy for running store actions off the UI
// loop. Results flow back through Replace.
func (s *State) Clone() *State {
	c := *s
	c.trades = append([]domain.Trade(nil), s.trades...)
	return &c
}

func (s *State) LoadErr() error { return s.loadErr }

func (s *State) Trades() []domain.Trade { return s.trades }

func (s *State) Location() *time.Location { return s.loc }

func (s *State) Filter() Filter { return s.filter }

func (s *State) SetFilter(f Filter) { s.filter = f }

// ResetFilter restores the defaults derived from the loaded trades.
func (s *State) ResetFilter() { s.filter = s.defaults }

// Visible returns the filtered trades, newest first as loaded.
func (s *State) Visible() []domain.Trade {
	return Apply(s.trades, s.filter, s.loc)
}

// Stats summarizes the whole loaded set regardless of the filter.
func (s *State) Stats() Stats {
	return ComputeStats(s.trades, s.now(), s.loc)
}

func (s *State) Instruments() []string { return Instruments(s.trades) }

// EmptyMessage explains an empty visible list, or returns "".
func (s *State) EmptyMessage() string {
	switch {
	case len(s.trades) == 0:
		return EmptyJournal
	case len(s.Visible()) == 0:
		return EmptyFiltered
	default:
		return ""
	}
}

// Select marks a loaded trade as the subject of the trade actions.
func (s *State) Select(id domain.ID) bool {
	if _, ok := s.find(id); !ok {
		return false
	}
	s.selected = id
	return true
}

func (s *State) Selected() (domain.Trade, bool) {
	return s.find(s.selected)
}

func (s *State) find(id domain.ID) (domain.Trade, bool) {
	if id == "" {
		return domain.Trade{}, false
	}
	for _, t := range s.trades {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Trade{}, false
}

// SaveNotes persists notes for the trade and reloads.
func (s *State) SaveNotes(ctx context.Context, id domain.ID, notes string) error {
	if err := s.store.UpdateTrade(ctx, id, domain.TradeUpdate{Notes: domain.StringPtr(notes)}); err != nil {
		return err
	}
	return s.Load(ctx)
}

// AttachScreenshot uploads the image, links it to the trade and reloads.
func (s *State) AttachScreenshot(ctx context.Context, id domain.ID, data []byte, contentType string) (string, error) {
	url, err := s.store.AttachScreenshot(ctx, id, data, contentType)
	if err != nil {
		return "", err
	}
	return url, s.Load(ctx)
}

// Analyze generates and persists AI feedback for the trade and reloads.
func (s *State) Analyze(ctx context.Context, id domain.ID) (string, error) {
	feedback, err := s.store.AnalyzeTrade(ctx, id)
	if err != nil {
		return "", err
	}
	return feedback, s.Load(ctx)
}
