package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trademind/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

const tradeColumns = `id::text, instrument, direction, entry_price, stop_loss, take_profit,
	risk_reward, screenshot_url, notes, ai_feedback, created_at`

type TradeRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewTradeRepository(pool PgxPool, tracer trace.Tracer) *TradeRepository {
	return &TradeRepository{pool: pool, tracer: tracer}
}

func (r *TradeRepository) InsertTrade(ctx context.Context, t domain.NewTrade) (*domain.Trade, error) {
	_, span := r.tracer.Start(ctx, "trade-repo.insert-trade")
	defer span.End()

	var rr float64
	if t.RiskReward != nil {
		rr = *t.RiskReward
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO trades (instrument, direction, entry_price, stop_loss, take_profit,
		                     risk_reward, screenshot_url, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+tradeColumns,
		t.Instrument, string(t.Direction), t.EntryPrice, t.StopLoss, t.TakeProfit,
		rr, t.ScreenshotURL, t.Notes,
	)
	trade, err := scanTrade(row)
	if err != nil {
		return nil, classify("insert trade", err)
	}
	return trade, nil
}

func (r *TradeRepository) ListTrades(ctx context.Context) ([]domain.Trade, error) {
	_, span := r.tracer.Start(ctx, "trade-repo.list-trades")
	defer span.End()

	return r.queryTrades(ctx, "list trades",
		`SELECT `+tradeColumns+` FROM trades ORDER BY created_at DESC`)
}

// SampleTrades returns at most limit of the newest trades. Used as a cheap
// connectivity probe.
func (r *TradeRepository) SampleTrades(ctx context.Context, limit int) ([]domain.Trade, error) {
	_, span := r.tracer.Start(ctx, "trade-repo.sample-trades")
	defer span.End()

	return r.queryTrades(ctx, "sample trades",
		`SELECT `+tradeColumns+` FROM trades ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *TradeRepository) GetTrade(ctx context.Context, id domain.ID) (*domain.Trade, error) {
	_, span := r.tracer.Start(ctx, "trade-repo.get-trade")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE id::text = $1`, id.String())
	trade, err := scanTrade(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, classify("get trade", err)
	}
	return trade, nil
}

// UpdateTrade sets only the non-nil columns of upd.
func (r *TradeRepository) UpdateTrade(ctx context.Context, id domain.ID, upd domain.TradeUpdate) error {
	_, span := r.tracer.Start(ctx, "trade-repo.update-trade")
	defer span.End()

	var (
		sets []string
		args []any
	)
	set := func(col string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	set("screenshot_url", upd.ScreenshotURL)
	set("notes", upd.Notes)
	set("ai_feedback", upd.AIFeedback)
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id.String())
	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE trades SET %s WHERE id::text = $%d`, strings.Join(sets, ", "), len(args)),
		args...,
	)
	if err != nil {
		return classify("update trade", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TradeRepository) queryTrades(ctx context.Context, op, sql string, args ...any) ([]domain.Trade, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		trades = append(trades, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return trades, nil
}

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var (
		t          domain.Trade
		id, dir    string
		riskReward *float64
	)
	err := row.Scan(
		&id, &t.Instrument, &dir, &t.EntryPrice, &t.StopLoss, &t.TakeProfit,
		&riskReward, &t.ScreenshotURL, &t.Notes, &t.AIFeedback, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.ID = domain.ID(id)
	t.Direction = domain.TradeDirection(dir)
	if riskReward != nil {
		t.RiskReward = *riskReward
	}
	return &t, nil
}
