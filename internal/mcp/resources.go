package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, j JournalReader, loc *time.Location, now func() time.Time) {
	server.AddResource(&mcp.Resource{
		URI:         "journal://instruments",
		Name:        "instruments",
		Description: "Instruments that appear in the journal, sorted",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if j == nil {
			return nil, fmt.Errorf("journal unavailable")
		}
		trades, err := listTrades(ctx, j)
		if err != nil {
			return nil, err
		}
		instruments := journal.Instruments(trades)
		if instruments == nil {
			instruments = []string{}
		}
		return jsonResource(req.Params.URI, instruments)
	})

	server.AddResource(&mcp.Resource{
		URI:         "journal://stats",
		Name:        "stats",
		Description: "Summary statistics over every trade",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if j == nil {
			return nil, fmt.Errorf("journal unavailable")
		}
		trades, err := listTrades(ctx, j)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, journal.ComputeStats(trades, now(), loc))
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "trades://list{?from,to,instrument,direction,performance,q,limit}",
		Name:        "trades",
		Description: "Trades newest first; query params narrow the list like the trades_list tool",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if j == nil {
			return nil, fmt.Errorf("journal unavailable")
		}
		parsed, err := url.Parse(req.Params.URI)
		if err != nil || parsed.Scheme != "trades" || parsed.Host != "list" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		q := parsed.Query()
		in := tradesListInput{
			From:        q.Get("from"),
			To:          q.Get("to"),
			Instrument:  q.Get("instrument"),
			Direction:   q.Get("direction"),
			Performance: q.Get("performance"),
			Query:       q.Get("q"),
		}
		if rawLimit := strings.TrimSpace(q.Get("limit")); rawLimit != "" {
			n, err := strconv.Atoi(rawLimit)
			if err != nil {
				return nil, fmt.Errorf("invalid limit: %s", rawLimit)
			}
			in.Limit = n
		}

		trades, err := listTrades(ctx, j)
		if err != nil {
			return nil, err
		}
		out, err := filterTrades(trades, in, loc)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, out)
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "trades://id/{id}",
		Name:        "trade",
		Description: "One trade with its notes, screenshot and AI feedback",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if j == nil {
			return nil, fmt.Errorf("journal unavailable")
		}
		parsed, err := url.Parse(req.Params.URI)
		if err != nil || parsed.Scheme != "trades" || parsed.Host != "id" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		id, err := normalizeID(strings.Trim(parsed.Path, "/"))
		if err != nil {
			return nil, err
		}

		trade, err := j.GetTrade(ctx, id)
		if err != nil {
			if domain.IsValidation(err) {
				return nil, err
			}
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return jsonResource(req.Params.URI, tradeOutput{Trade: journal.Normalize([]domain.Trade{*trade})[0]})
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "structures://latest{?instrument,limit}",
		Name:        "structures",
		Description: "Recorded market structures newest first",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if j == nil {
			return nil, fmt.Errorf("journal unavailable")
		}
		parsed, err := url.Parse(req.Params.URI)
		if err != nil || parsed.Scheme != "structures" || parsed.Host != "latest" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		in := structuresListInput{Instrument: parsed.Query().Get("instrument")}
		if rawLimit := strings.TrimSpace(parsed.Query().Get("limit")); rawLimit != "" {
			n, err := strconv.Atoi(rawLimit)
			if err != nil {
				return nil, fmt.Errorf("invalid limit: %s", rawLimit)
			}
			in.Limit = n
		}

		structures, err := j.ListStructures(ctx)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, filterStructures(structures, in))
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
