// Package app assembles the journal services from configuration. Every
// entry point (HTTP server, MCP server, dashboard) goes through Build.
package app

import (
	"context"
	"fmt"
	"time"

	"trademind/internal/advisor"
	"trademind/internal/config"
	"trademind/internal/db"
	"trademind/internal/repository"
	"trademind/internal/service"
	"trademind/internal/supabase"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	initPostgresFunc = db.InitPostgres
	initSQLiteFunc   = db.InitSQLite
)

type Services struct {
	Journal  *service.JournalService
	Ingest   *service.IngestService
	Location *time.Location
	Backend  string

	closers []func()
}

// Close releases database handles. Safe to call on a nil receiver.
func (s *Services) Close() {
	if s == nil {
		return
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Build connects the configured store backend, the screenshot bucket and
// the AI advisor. SQL backends get their schema created up front.
func Build(ctx context.Context, cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	sb := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket, tracer, logger.Named("supabase"))
	svc := &Services{Location: loc, Backend: cfg.StoreBackend}

	var backend service.Backend
	switch cfg.StoreBackend {
	case config.BackendSupabase, "":
		backend = sb
		svc.Backend = config.BackendSupabase
	case config.BackendPostgres:
		pool, err := initPostgresFunc(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		svc.closers = append(svc.closers, pool.Close)
		backend = repository.NewPostgresStore(pool, tracer)
	case config.BackendSQLite:
		gdb, err := initSQLiteFunc(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		svc.closers = append(svc.closers, func() { _ = sqlDB.Close() })
		backend = repository.NewSQLiteStore(gdb, tracer)
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}

	if svc.Backend != config.BackendSupabase {
		if err := backend.EnsureSchema(ctx); err != nil {
			svc.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	adv := advisor.New(advisor.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.OpenAITimeout(),
	}, tracer, logger.Named("advisor"))

	svc.Journal = service.NewJournalService(tracer, backend, sb, adv, logger.Named("journal"))
	svc.Ingest = service.NewIngestService(tracer, svc.Journal, adv, logger.Named("ingest"))

	logger.Info("journal services ready",
		zap.String("backend", svc.Backend),
		zap.String("bucket", cfg.SupabaseBucket),
		zap.String("model", cfg.OpenAIModel),
		zap.String("timezone", loc.String()),
	)
	return svc, nil
}
