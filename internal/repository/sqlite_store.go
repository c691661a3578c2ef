package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trademind/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type tradeRow struct {
	ID            string  `gorm:"primaryKey;type:text"`
	Instrument    string  `gorm:"not null"`
	Direction     string  `gorm:"not null"`
	EntryPrice    float64 `gorm:"not null"`
	StopLoss      float64 `gorm:"not null"`
	TakeProfit    float64 `gorm:"not null"`
	RiskReward    float64 `gorm:"not null;default:0"`
	ScreenshotURL *string
	Notes         *string
	AIFeedback    *string
	CreatedAt     time.Time `gorm:"index"`
}

func (tradeRow) TableName() string { return "trades" }

func (r tradeRow) toDomain() domain.Trade {
	return domain.Trade{
		ID:            domain.ID(r.ID),
		Instrument:    r.Instrument,
		Direction:     domain.TradeDirection(r.Direction),
		EntryPrice:    r.EntryPrice,
		StopLoss:      r.StopLoss,
		TakeProfit:    r.TakeProfit,
		RiskReward:    r.RiskReward,
		ScreenshotURL: r.ScreenshotURL,
		Notes:         r.Notes,
		AIFeedback:    r.AIFeedback,
		CreatedAt:     r.CreatedAt,
	}
}

type structureRow struct {
	ID            string  `gorm:"primaryKey;type:text"`
	Instrument    string  `gorm:"not null"`
	StructureType string  `gorm:"not null"`
	Direction     string  `gorm:"not null"`
	PriceLevel    float64 `gorm:"not null"`
	ScreenshotURL *string
	Notes         *string
	CreatedAt     time.Time `gorm:"index"`
}

func (structureRow) TableName() string { return "structures" }

func (r structureRow) toDomain() domain.Structure {
	return domain.Structure{
		ID:            domain.ID(r.ID),
		Instrument:    r.Instrument,
		StructureType: domain.StructureType(r.StructureType),
		Direction:     domain.StructureDirection(r.Direction),
		PriceLevel:    r.PriceLevel,
		ScreenshotURL: r.ScreenshotURL,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}

// SQLiteStore keeps the journal in a local sqlite database through gorm.
type SQLiteStore struct {
	db     *gorm.DB
	tracer trace.Tracer
	now    func() time.Time
}

func NewSQLiteStore(db *gorm.DB, tracer trace.Tracer) *SQLiteStore {
	return &SQLiteStore{db: db, tracer: tracer, now: func() time.Time { return time.Now().UTC() }}
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "sqlite-store.ensure-schema")
	defer span.End()

	if err := s.db.WithContext(ctx).AutoMigrate(&tradeRow{}, &structureRow{}); err != nil {
		return fmt.Errorf("ensure schema: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) InsertTrade(ctx context.Context, t domain.NewTrade) (*domain.Trade, error) {
	_, span := s.tracer.Start(ctx, "sqlite-store.insert-trade")
	defer span.End()

	row := tradeRow{
		ID:            uuid.New().String(),
		Instrument:    t.Instrument,
		Direction:     string(t.Direction),
		EntryPrice:    t.EntryPrice,
		StopLoss:      t.StopLoss,
		TakeProfit:    t.TakeProfit,
		ScreenshotURL: t.ScreenshotURL,
		Notes:         t.Notes,
		CreatedAt:     s.now(),
	}
	if t.RiskReward != nil {
		row.RiskReward = *t.RiskReward
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, gormErr("insert trade", err)
	}
	out := row.toDomain()
	return &out, nil
}

func (s *SQLiteStore) ListTrades(ctx context.Context) ([]domain.Trade, error) {
	_, span := s.tracer.Start(ctx, "sqlite-store.list-trades")
	defer span.End()

	return s.findTrades(ctx, "list trades", -1)
}

func (s *SQLiteStore) SampleTrades(ctx context.Context, limit int) ([]domain.Trade, error) {
	_, span := s.tracer.Start(ctx, "sqlite-store.sample-trades")
	defer span.End()

	return s.findTrades(ctx, "sample trades", limit)
}

func (s *SQLiteStore) findTrades(ctx context.Context, op string, limit int) ([]domain.Trade, error) {
	var rows []tradeRow
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, gormErr(op, err)
	}
	trades := make([]domain.Trade, 0, len(rows))
	for _, r := range rows {
		trades = append(trades, r.toDomain())
	}
	return trades, nil
}

func (s *SQLiteStore) GetTrade(ctx context.Context, id domain.ID) (*domain.Trade, error) {
	_, span := s.tracer.Start(ctx, "sqlite-store.get-trade")
	defer span.End()

	var row tradeRow
	err := s.db.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, gormErr("get trade", err)
	}
	out := row.toDomain()
	return &out, nil
}

func (s *SQLiteStore) UpdateTrade(ctx context.Context, id domain.ID, upd domain.TradeUpdate) error {
	_, span := s.tracer.Start(ctx, "sqlite-store.update-trade")
	defer span.End()

	cols := map[string]any{}
	if upd.ScreenshotURL != nil {
		cols["screenshot_url"] = *upd.ScreenshotURL
	}
	if upd.Notes != nil {
		cols["notes"] = *upd.Notes
	}
	if upd.AIFeedback != nil {
		cols["ai_feedback"] = *upd.AIFeedback
	}
	if len(cols) == 0 {
		return nil
	}

	res := s.db.WithContext(ctx).Model(&tradeRow{}).Where("id = ?", id.String()).Updates(cols)
	if res.Error != nil {
		return gormErr("update trade", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) InsertStructure(ctx context.Context, in domain.NewStructure) (*domain.Structure, error) {
	_, span := s.tracer.Start(ctx, "sqlite-store.insert-structure")
	defer span.End()

	row := structureRow{
		ID:            uuid.New().String(),
		Instrument:    in.Instrument,
		StructureType: string(in.StructureType),
		Direction:     string(in.Direction),
		PriceLevel:    in.PriceLevel,
		ScreenshotURL: in.ScreenshotURL,
		Notes:         in.Notes,
		CreatedAt:     s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, gormErr("insert structure", err)
	}
	out := row.toDomain()
	return &out, nil
}

func (s *SQLiteStore) ListStructures(ctx context.Context) ([]domain.Structure, error) {
	_, span := s.tracer.Start(ctx, "sqlite-store.list-structures")
	defer span.End()

	var rows []structureRow
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, gormErr("list structures", err)
	}
	out := make([]domain.Structure, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func gormErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
