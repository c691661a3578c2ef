package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"trademind/internal/config"
	"trademind/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testTracer = noop.NewTracerProvider().Tracer("test")

func baseConfig() *config.Config {
	return &config.Config{
		SupabaseURL:       "https://project.supabase.test",
		SupabaseKey:       "anon",
		SupabaseBucket:    "screenshots",
		StoreBackend:      config.BackendSupabase,
		OpenAIAPIKey:      "sk-test",
		OpenAIModel:       "gpt-4o-mini",
		OpenAITimeoutSecs: 30,
		JournalTimezone:   "UTC",
	}
}

func TestBuildSupabase(t *testing.T) {
	svc, err := Build(context.Background(), baseConfig(), testTracer, zap.NewNop())
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, config.BackendSupabase, svc.Backend)
	assert.Equal(t, "UTC", svc.Location.String())
	assert.NotNil(t, svc.Journal)
	assert.NotNil(t, svc.Ingest)
}

func TestBuildSQLiteCreatesSchema(t *testing.T) {
	cfg := baseConfig()
	cfg.StoreBackend = config.BackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "journal.db")

	svc, err := Build(context.Background(), cfg, testTracer, zap.NewNop())
	require.NoError(t, err)
	defer svc.Close()

	trade, err := svc.Journal.InsertTrade(context.Background(), domain.NewTrade{
		Instrument: "ES", Direction: domain.DirectionLong,
		EntryPrice: 4500, StopLoss: 4480, TakeProfit: 4550,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, trade.RiskReward)
}

func TestBuildPostgresFailure(t *testing.T) {
	orig := initPostgresFunc
	defer func() { initPostgresFunc = orig }()
	initPostgresFunc = func(context.Context, string, *zap.Logger) (*pgxpool.Pool, error) {
		return nil, errors.New("connection refused")
	}

	cfg := baseConfig()
	cfg.StoreBackend = config.BackendPostgres
	cfg.DatabaseURL = "postgres://localhost/trademind"

	_, err := Build(context.Background(), cfg, testTracer, zap.NewNop())
	assert.ErrorContains(t, err, "connection refused")
}

func TestBuildSQLiteWithoutSQLHandle(t *testing.T) {
	orig := initSQLiteFunc
	defer func() { initSQLiteFunc = orig }()
	initSQLiteFunc = func(string, *zap.Logger) (*gorm.DB, error) {
		// no connection pool behind it, so DB() cannot hand out *sql.DB
		return &gorm.DB{Config: &gorm.Config{}}, nil
	}

	cfg := baseConfig()
	cfg.StoreBackend = config.BackendSQLite
	cfg.SQLitePath = "unused.db"

	svc, err := Build(context.Background(), cfg, testTracer, zap.NewNop())
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	assert.ErrorContains(t, err, "sqlite handle")
}

func TestBuildRejectsUnknownBackend(t *testing.T) {
	cfg := baseConfig()
	cfg.StoreBackend = "mongo"

	_, err := Build(context.Background(), cfg, testTracer, zap.NewNop())
	assert.ErrorContains(t, err, `unsupported STORE_BACKEND "mongo"`)
}

func TestBuildRejectsBadTimezone(t *testing.T) {
	cfg := baseConfig()
	cfg.JournalTimezone = "Mars/Olympus"

	_, err := Build(context.Background(), cfg, testTracer, zap.NewNop())
	assert.Error(t, err)
}

func TestCloseNil(t *testing.T) {
	var svc *Services
	assert.NotPanics(t, svc.Close)
}
