package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"trademind/internal/domain"

	"go.uber.org/zap"
)

const (
	tradesTable     = restPath + "/trades"
	structuresTable = restPath + "/structures"
	schemaRPC       = restPath + "/rpc/create_trading_tables"
)

func (c *Client) InsertTrade(ctx context.Context, t domain.NewTrade) (*domain.Trade, error) {
	_, span := c.tracer.Start(ctx, "supabase.insert-trade")
	defer span.End()

	body := tradeInsert{
		Instrument:    t.Instrument,
		Direction:     string(t.Direction),
		EntryPrice:    t.EntryPrice,
		StopLoss:      t.StopLoss,
		TakeProfit:    t.TakeProfit,
		ScreenshotURL: t.ScreenshotURL,
		Notes:         t.Notes,
	}
	if t.RiskReward != nil {
		body.RiskReward = *t.RiskReward
	}

	var records []tradeRecord
	req := c.rest.R().
		SetHeader("Prefer", "return=representation").
		SetBody(body).
		SetResult(&records)
	if _, err := c.do(ctx, "insert trade", http.MethodPost, tradesTable, req); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("insert trade: empty representation")
	}
	trade, err := records[0].toDomain()
	if err != nil {
		return nil, fmt.Errorf("insert trade: %w", err)
	}
	c.logger.Info("inserted trade", zap.String("instrument", trade.Instrument), zap.String("id", trade.ID.String()))
	return &trade, nil
}

func (c *Client) ListTrades(ctx context.Context) ([]domain.Trade, error) {
	_, span := c.tracer.Start(ctx, "supabase.list-trades")
	defer span.End()

	return c.selectTrades(ctx, "list trades", 0)
}

func (c *Client) SampleTrades(ctx context.Context, limit int) ([]domain.Trade, error) {
	_, span := c.tracer.Start(ctx, "supabase.sample-trades")
	defer span.End()

	return c.selectTrades(ctx, "sample trades", limit)
}

func (c *Client) selectTrades(ctx context.Context, op string, limit int) ([]domain.Trade, error) {
	var records []tradeRecord
	req := c.rest.R().
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.desc").
		SetResult(&records)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	if _, err := c.do(ctx, op, http.MethodGet, tradesTable, req); err != nil {
		return nil, err
	}
	return toTrades(op, records)
}

func (c *Client) GetTrade(ctx context.Context, id domain.ID) (*domain.Trade, error) {
	_, span := c.tracer.Start(ctx, "supabase.get-trade")
	defer span.End()

	var records []tradeRecord
	req := c.rest.R().
		SetQueryParam("select", "*").
		SetQueryParam("id", "eq."+id.String()).
		SetResult(&records)
	if _, err := c.do(ctx, "get trade", http.MethodGet, tradesTable, req); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	trade, err := records[0].toDomain()
	if err != nil {
		return nil, fmt.Errorf("get trade: %w", err)
	}
	return &trade, nil
}

// UpdateTrade patches the non-nil fields of upd. PostgREST answers an
// unmatched filter with an empty representation, which is ErrNotFound.
func (c *Client) UpdateTrade(ctx context.Context, id domain.ID, upd domain.TradeUpdate) error {
	_, span := c.tracer.Start(ctx, "supabase.update-trade")
	defer span.End()

	if upd.IsEmpty() {
		return nil
	}

	var records []tradeRecord
	req := c.rest.R().
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id.String()).
		SetBody(upd).
		SetResult(&records)
	if _, err := c.do(ctx, "update trade", http.MethodPatch, tradesTable, req); err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (c *Client) InsertStructure(ctx context.Context, s domain.NewStructure) (*domain.Structure, error) {
	_, span := c.tracer.Start(ctx, "supabase.insert-structure")
	defer span.End()

	var records []structureRecord
	req := c.rest.R().
		SetHeader("Prefer", "return=representation").
		SetBody(structureInsert{
			Instrument:    s.Instrument,
			StructureType: string(s.StructureType),
			Direction:     string(s.Direction),
			PriceLevel:    s.PriceLevel,
			ScreenshotURL: s.ScreenshotURL,
			Notes:         s.Notes,
		}).
		SetResult(&records)
	if _, err := c.do(ctx, "insert structure", http.MethodPost, structuresTable, req); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("insert structure: empty representation")
	}
	out, err := records[0].toDomain()
	if err != nil {
		return nil, fmt.Errorf("insert structure: %w", err)
	}
	c.logger.Info("inserted structure",
		zap.String("instrument", out.Instrument),
		zap.String("structure_type", string(out.StructureType)),
	)
	return &out, nil
}

func (c *Client) ListStructures(ctx context.Context) ([]domain.Structure, error) {
	_, span := c.tracer.Start(ctx, "supabase.list-structures")
	defer span.End()

	var records []structureRecord
	req := c.rest.R().
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.desc").
		SetResult(&records)
	if _, err := c.do(ctx, "list structures", http.MethodGet, structuresTable, req); err != nil {
		return nil, err
	}
	out := make([]domain.Structure, 0, len(records))
	for _, r := range records {
		s, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list structures: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// EnsureSchema calls the create_trading_tables database function, which
// must be installed in the project.
func (c *Client) EnsureSchema(ctx context.Context) error {
	_, span := c.tracer.Start(ctx, "supabase.ensure-schema")
	defer span.End()

	req := c.rest.R().SetBody(map[string]any{})
	_, err := c.do(ctx, "create trading tables", http.MethodPost, schemaRPC, req)
	return err
}

func toTrades(op string, records []tradeRecord) ([]domain.Trade, error) {
	trades := make([]domain.Trade, 0, len(records))
	for _, r := range records {
		t, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}
