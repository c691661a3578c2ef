package service

import (
	"context"
	"fmt"
	"time"

	"trademind/internal/domain"

	"go.opentelemetry.io/otel/trace/noop"
)

var testTracer = noop.NewTracerProvider().Tracer("test")

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type stubBackend struct {
	trades      []domain.Trade
	structures  []domain.Structure
	inserted    []domain.NewTrade
	insertedS   []domain.NewStructure
	updates     map[domain.ID][]domain.TradeUpdate
	insertErr   error
	listErr     error
	updateErr   error
	schemaCalls int
}

func newStubBackend(trades ...domain.Trade) *stubBackend {
	return &stubBackend{trades: trades, updates: map[domain.ID][]domain.TradeUpdate{}}
}

func (b *stubBackend) InsertTrade(ctx context.Context, t domain.NewTrade) (*domain.Trade, error) {
	if b.insertErr != nil {
		return nil, b.insertErr
	}
	b.inserted = append(b.inserted, t)
	tr := domain.Trade{
		ID:            domain.ID(fmt.Sprintf("t%d", len(b.inserted))),
		Instrument:    t.Instrument,
		Direction:     t.Direction,
		EntryPrice:    t.EntryPrice,
		StopLoss:      t.StopLoss,
		TakeProfit:    t.TakeProfit,
		ScreenshotURL: t.ScreenshotURL,
		Notes:         t.Notes,
		CreatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if t.RiskReward != nil {
		tr.RiskReward = *t.RiskReward
	}
	b.trades = append([]domain.Trade{tr}, b.trades...)
	return &tr, nil
}

func (b *stubBackend) ListTrades(ctx context.Context) ([]domain.Trade, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return append([]domain.Trade(nil), b.trades...), nil
}

func (b *stubBackend) SampleTrades(ctx context.Context, limit int) ([]domain.Trade, error) {
	trades, err := b.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	if len(trades) > limit {
		trades = trades[:limit]
	}
	return trades, nil
}

func (b *stubBackend) GetTrade(ctx context.Context, id domain.ID) (*domain.Trade, error) {
	for i := range b.trades {
		if b.trades[i].ID == id {
			t := b.trades[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
}

func (b *stubBackend) UpdateTrade(ctx context.Context, id domain.ID, upd domain.TradeUpdate) error {
	if b.updateErr != nil {
		return b.updateErr
	}
	for i := range b.trades {
		if b.trades[i].ID == id {
			upd.Apply(&b.trades[i])
			b.updates[id] = append(b.updates[id], upd)
			return nil
		}
	}
	return fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
}

func (b *stubBackend) InsertStructure(ctx context.Context, s domain.NewStructure) (*domain.Structure, error) {
	if b.insertErr != nil {
		return nil, b.insertErr
	}
	b.insertedS = append(b.insertedS, s)
	out := domain.Structure{
		ID:            domain.ID(fmt.Sprintf("s%d", len(b.insertedS))),
		Instrument:    s.Instrument,
		StructureType: s.StructureType,
		Direction:     s.Direction,
		PriceLevel:    s.PriceLevel,
		ScreenshotURL: s.ScreenshotURL,
		Notes:         s.Notes,
	}
	b.structures = append([]domain.Structure{out}, b.structures...)
	return &out, nil
}

func (b *stubBackend) ListStructures(ctx context.Context) ([]domain.Structure, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.structures, nil
}

func (b *stubBackend) EnsureSchema(ctx context.Context) error {
	b.schemaCalls++
	return nil
}

type upload struct {
	name        string
	contentType string
	size        int
}

type stubBucket struct {
	uploads []upload
	err     error
}

func (b *stubBucket) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	if b.err != nil {
		return b.err
	}
	b.uploads = append(b.uploads, upload{name: name, contentType: contentType, size: len(data)})
	return nil
}

func (b *stubBucket) PublicURL(name string) string {
	return "https://cdn.test/screenshots/" + name
}

type stubAdvisor struct {
	text       string
	err        error
	tradeCalls []domain.Trade
	structCall []domain.Structure
}

func (a *stubAdvisor) TradeFeedback(ctx context.Context, t domain.Trade) (string, error) {
	a.tradeCalls = append(a.tradeCalls, t)
	return a.text, a.err
}

func (a *stubAdvisor) StructureAnalysis(ctx context.Context, s domain.Structure) (string, error) {
	a.structCall = append(a.structCall, s)
	return a.text, a.err
}
