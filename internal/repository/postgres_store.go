package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS trades (
		id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		instrument     TEXT NOT NULL,
		direction      TEXT NOT NULL CHECK (direction IN ('LONG', 'SHORT')),
		entry_price    DOUBLE PRECISION NOT NULL,
		stop_loss      DOUBLE PRECISION NOT NULL,
		take_profit    DOUBLE PRECISION NOT NULL,
		risk_reward    DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (risk_reward >= 0),
		screenshot_url TEXT,
		notes          TEXT,
		ai_feedback    TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trades_created_at ON trades (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS structures (
		id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		instrument     TEXT NOT NULL,
		structure_type TEXT NOT NULL CHECK (structure_type IN ('BOS', 'CHoCH')),
		direction      TEXT NOT NULL CHECK (direction IN ('BULLISH', 'BEARISH')),
		price_level    DOUBLE PRECISION NOT NULL,
		screenshot_url TEXT,
		notes          TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_structures_created_at ON structures (created_at DESC)`,
}

// PostgresStore is the direct-connection journal backend.
type PostgresStore struct {
	*TradeRepository
	*StructureRepository
	pool   PgxPool
	tracer trace.Tracer
}

func NewPostgresStore(pool PgxPool, tracer trace.Tracer) *PostgresStore {
	return &PostgresStore{
		TradeRepository:     NewTradeRepository(pool, tracer),
		StructureRepository: NewStructureRepository(pool, tracer),
		pool:                pool,
		tracer:              tracer,
	}
}

// EnsureSchema creates the journal tables if they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "postgres-store.ensure-schema")
	defer span.End()

	batch := &pgx.Batch{}
	for _, stmt := range schemaStatements {
		batch.Queue(stmt)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range schemaStatements {
		if _, err := br.Exec(); err != nil {
			return classify("ensure schema", err)
		}
	}
	return nil
}
