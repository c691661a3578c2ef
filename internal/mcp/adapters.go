package mcp

import (
	"context"

	"trademind/internal/domain"
	"trademind/internal/journal"
)

// JournalReader exposes the read side of the journal.
type JournalReader interface {
	ListTrades(ctx context.Context) ([]domain.Trade, error)
	GetTrade(ctx context.Context, id domain.ID) (*domain.Trade, error)
	ListStructures(ctx context.Context) ([]domain.Structure, error)
}

// JournalWriter exposes the annotations an assistant may make.
type JournalWriter interface {
	UpdateTrade(ctx context.Context, id domain.ID, upd domain.TradeUpdate) error
	AnalyzeTrade(ctx context.Context, id domain.ID) (string, error)
}

type Journal interface {
	JournalReader
	JournalWriter
}

// listTrades reads every trade with risk/reward derived from prices, as the
// dashboard shows them.
func listTrades(ctx context.Context, r JournalReader) ([]domain.Trade, error) {
	trades, err := r.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	return journal.Normalize(trades), nil
}
