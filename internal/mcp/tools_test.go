package mcp

import (
	"testing"

	"trademind/internal/domain"
	"trademind/internal/journal"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsList(t *testing.T) {
	srv, _ := testServer(t)
	ctx, session := connect(t, srv)

	tools, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"trades_list", "trades_stats", "structures_list", "trade_update_notes", "trade_analyze",
	}, names)
}

func TestTradesListTool(t *testing.T) {
	srv, f := testServer(t)
	f.AddTrade(t, "ES", domain.DirectionLong, 4500, 4480, 4550, "Breakout")
	f.AddTrade(t, "NQ", domain.DirectionShort, 15000, 15050, 14975, "")
	ctx, session := connect(t, srv)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "trades_list", Arguments: map[string]any{"direction": "short"}})
	require.NoError(t, err)
	require.False(t, res.IsError, "%+v", res.Content)

	var out tradesListOutput
	require.NoError(t, decodeToolJSON(res, &out))
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "NQ", out.Trades[0].Instrument)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "trades_list", Arguments: map[string]any{"query": "BREAK", "limit": 10}})
	require.NoError(t, err)
	require.NoError(t, decodeToolJSON(res, &out))
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "ES", out.Trades[0].Instrument)
}

func TestTradesListToolValidation(t *testing.T) {
	srv, _ := testServer(t)
	ctx, session := connect(t, srv)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "trades_list", Arguments: map[string]any{"from": "yesterday"}})
	require.NoError(t, err, "validation failures are tool errors, not protocol errors")
	assert.True(t, res.IsError)
}

func TestTradesStatsTool(t *testing.T) {
	srv, f := testServer(t)
	f.AddTrade(t, "ES", domain.DirectionLong, 4500, 4480, 4550, "")
	f.AddTrade(t, "ES", domain.DirectionLong, 4500, 4480, 4510, "")
	ctx, session := connect(t, srv)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "trades_stats", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError, "%+v", res.Content)

	var stats journal.Stats
	require.NoError(t, decodeToolJSON(res, &stats))
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 100.0, stats.LongPct)
	assert.Equal(t, "Long dominant", stats.Dominant)
	assert.Equal(t, 50.0, stats.WinRate)
}

func TestStructuresListTool(t *testing.T) {
	srv, f := testServer(t)
	f.AddStructure(t, "ES", domain.StructureBOS, domain.StructureBullish, 4510)
	f.AddStructure(t, "NQ", domain.StructureCHoCH, domain.StructureBearish, 17850)
	ctx, session := connect(t, srv)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "structures_list", Arguments: map[string]any{"instrument": "nq"}})
	require.NoError(t, err)
	require.False(t, res.IsError, "%+v", res.Content)

	var out structuresListOutput
	require.NoError(t, decodeToolJSON(res, &out))
	require.Len(t, out.Structures, 1)
	assert.Equal(t, domain.StructureCHoCH, out.Structures[0].StructureType)
}

func TestTradeUpdateNotesTool(t *testing.T) {
	srv, f := testServer(t)
	trade := f.AddTrade(t, "ES", domain.DirectionLong, 4500, 4480, 4550, "")
	ctx, session := connect(t, srv)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "trade_update_notes", Arguments: map[string]any{
		"id": trade.ID.String(), "notes": "Held through the pullback",
	}})
	require.NoError(t, err)
	require.False(t, res.IsError, "%+v", res.Content)

	var out tradeOutput
	require.NoError(t, decodeToolJSON(res, &out))
	assert.Equal(t, "Held through the pullback", domain.Deref(out.Trade.Notes))

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "trade_update_notes", Arguments: map[string]any{
		"id": "missing", "notes": "x",
	}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestTradeAnalyzeTool(t *testing.T) {
	srv, f := testServer(t)
	trade := f.AddTrade(t, "ES", domain.DirectionLong, 4500, 4480, 4550, "")
	ctx, session := connect(t, srv)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "trade_analyze", Arguments: map[string]any{"id": trade.ID.String()}})
	require.NoError(t, err)
	require.False(t, res.IsError, "%+v", res.Content)

	var out tradeAnalyzeOutput
	require.NoError(t, decodeToolJSON(res, &out))
	assert.Equal(t, "Solid plan.", out.AIFeedback)

	stored, err := f.Journal.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solid plan.", domain.Deref(stored.AIFeedback))

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "trade_analyze", Arguments: map[string]any{"id": " "}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
