package mcp

import (
	"fmt"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type tradesListInput struct {
	From        string `json:"from,omitempty" jsonschema:"first day to include, YYYY-MM-DD"`
	To          string `json:"to,omitempty" jsonschema:"last day to include, YYYY-MM-DD"`
	Instrument  string `json:"instrument,omitempty" jsonschema:"instrument such as ES or NQ, or ALL"`
	Direction   string `json:"direction,omitempty" jsonschema:"ALL, LONG or SHORT"`
	Performance string `json:"performance,omitempty" jsonschema:"ALL, WINNERS (R:R >= 1) or LOSERS"`
	Query       string `json:"query,omitempty" jsonschema:"case-insensitive text to find in notes or AI feedback"`
	Limit       int    `json:"limit,omitempty" jsonschema:"number of trades to return, max 500"`
}

type tradesListOutput struct {
	Count  int            `json:"count"`
	Total  int            `json:"total"`
	Trades []domain.Trade `json:"trades"`
}

type tradesStatsInput struct{}

type structuresListInput struct {
	Instrument string `json:"instrument,omitempty" jsonschema:"optional instrument filter"`
	Limit      int    `json:"limit,omitempty" jsonschema:"number of structures to return, max 500"`
}

type structuresListOutput struct {
	Structures []domain.Structure `json:"structures"`
}

type tradeUpdateNotesInput struct {
	ID    string `json:"id" jsonschema:"trade id"`
	Notes string `json:"notes" jsonschema:"replacement notes; an empty string clears them"`
}

type tradeOutput struct {
	Trade domain.Trade `json:"trade"`
}

type tradeAnalyzeInput struct {
	ID string `json:"id" jsonschema:"trade id"`
}

type tradeAnalyzeOutput struct {
	TradeID    string `json:"trade_id"`
	AIFeedback string `json:"ai_feedback"`
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func normalizeID(id string) (domain.ID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("id is required")
	}
	return domain.ID(id), nil
}

func normalizeTradeFilter(in tradesListInput, loc *time.Location) (journal.Filter, error) {
	params := map[string]string{
		"from":        in.From,
		"to":          in.To,
		"instrument":  strings.ToUpper(strings.TrimSpace(in.Instrument)),
		"direction":   in.Direction,
		"performance": in.Performance,
		"q":           in.Query,
	}
	return journal.ParseFilter(func(k string) string { return params[k] }, loc)
}

func filterTrades(trades []domain.Trade, in tradesListInput, loc *time.Location) (tradesListOutput, error) {
	f, err := normalizeTradeFilter(in, loc)
	if err != nil {
		return tradesListOutput{}, err
	}
	visible := journal.Apply(trades, f, loc)
	if limit := normalizeLimit(in.Limit); len(visible) > limit {
		visible = visible[:limit]
	}
	return tradesListOutput{Count: len(visible), Total: len(trades), Trades: visible}, nil
}

func filterStructures(structures []domain.Structure, in structuresListInput) structuresListOutput {
	instrument := strings.ToUpper(strings.TrimSpace(in.Instrument))
	out := make([]domain.Structure, 0, len(structures))
	for _, s := range structures {
		if instrument != "" && !strings.EqualFold(s.Instrument, instrument) {
			continue
		}
		out = append(out, s)
		if len(out) == normalizeLimit(in.Limit) {
			break
		}
	}
	return structuresListOutput{Structures: out}
}
