package mcp

import (
	"context"
	"fmt"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const toolTradeAnalyze = "trade_analyze"

func registerTools(server *mcp.Server, j Journal, loc *time.Location, now func() time.Time) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "trades_list",
		Description: "List journal trades newest first, with optional date, instrument, direction, performance and text filters",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in tradesListInput) (*mcp.CallToolResult, tradesListOutput, error) {
		if j == nil {
			return nil, tradesListOutput{}, fmt.Errorf("journal unavailable")
		}
		trades, err := listTrades(ctx, j)
		if err != nil {
			return nil, tradesListOutput{}, err
		}
		out, err := filterTrades(trades, in, loc)
		if err != nil {
			return nil, tradesListOutput{}, err
		}
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trades_stats",
		Description: "Summary statistics over every trade: count, trades today, long/short split, average R:R against the 2.0 target, win rate",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ tradesStatsInput) (*mcp.CallToolResult, journal.Stats, error) {
		if j == nil {
			return nil, journal.Stats{}, fmt.Errorf("journal unavailable")
		}
		trades, err := listTrades(ctx, j)
		if err != nil {
			return nil, journal.Stats{}, err
		}
		return nil, journal.ComputeStats(trades, now(), loc), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "structures_list",
		Description: "List recorded BOS/CHoCH market structures newest first",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in structuresListInput) (*mcp.CallToolResult, structuresListOutput, error) {
		if j == nil {
			return nil, structuresListOutput{}, fmt.Errorf("journal unavailable")
		}
		structures, err := j.ListStructures(ctx)
		if err != nil {
			return nil, structuresListOutput{}, err
		}
		return nil, filterStructures(structures, in), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trade_update_notes",
		Description: "Replace the notes of a trade",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in tradeUpdateNotesInput) (*mcp.CallToolResult, tradeOutput, error) {
		if j == nil {
			return nil, tradeOutput{}, fmt.Errorf("journal unavailable")
		}
		id, err := normalizeID(in.ID)
		if err != nil {
			return nil, tradeOutput{}, err
		}
		notes := in.Notes
		if err := j.UpdateTrade(ctx, id, domain.TradeUpdate{Notes: &notes}); err != nil {
			return nil, tradeOutput{}, err
		}
		trade, err := j.GetTrade(ctx, id)
		if err != nil {
			return nil, tradeOutput{}, err
		}
		return nil, tradeOutput{Trade: *trade}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        toolTradeAnalyze,
		Description: "Generate AI coaching feedback for a trade and save it on the trade",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in tradeAnalyzeInput) (*mcp.CallToolResult, tradeAnalyzeOutput, error) {
		if j == nil {
			return nil, tradeAnalyzeOutput{}, fmt.Errorf("journal unavailable")
		}
		id, err := normalizeID(in.ID)
		if err != nil {
			return nil, tradeAnalyzeOutput{}, err
		}
		feedback, err := j.AnalyzeTrade(ctx, id)
		if err != nil {
			return nil, tradeAnalyzeOutput{}, err
		}
		return nil, tradeAnalyzeOutput{TradeID: id.String(), AIFeedback: feedback}, nil
	})
}
