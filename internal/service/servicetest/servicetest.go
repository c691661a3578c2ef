// Package servicetest wires journal services over an in-memory SQLite store
// for tests in other packages.
package servicetest

import (
	"context"
	"sync"
	"testing"

	"trademind/internal/db"
	"trademind/internal/domain"
	"trademind/internal/repository"
	"trademind/internal/service"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

var Tracer = noop.NewTracerProvider().Tracer("test")

// PNG is the smallest header mimetype recognises as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

const BucketURL = "https://cdn.test/screenshots/"

type Bucket struct {
	mu    sync.Mutex
	Names []string
	Err   error
}

func (b *Bucket) Upload(_ context.Context, name string, _ []byte, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.Names = append(b.Names, name)
	return nil
}

func (b *Bucket) PublicURL(name string) string { return BucketURL + name }

type Advisor struct {
	mu    sync.Mutex
	Text  string
	Err   error
	Calls int
}

func (a *Advisor) TradeFeedback(context.Context, domain.Trade) (string, error) {
	return a.answer()
}

func (a *Advisor) StructureAnalysis(context.Context, domain.Structure) (string, error) {
	return a.answer()
}

func (a *Advisor) answer() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Calls++
	return a.Text, a.Err
}

type Fixture struct {
	Store   *repository.SQLiteStore
	Bucket  *Bucket
	Advisor *Advisor
	Journal *service.JournalService
	Ingest  *service.IngestService
	// Close drops the database so later calls fail like an unreachable store.
	Close func()
}

func New(t testing.TB) *Fixture {
	t.Helper()

	gdb, err := db.InitSQLite(":memory:", zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := repository.NewSQLiteStore(gdb, Tracer)
	require.NoError(t, store.EnsureSchema(context.Background()))

	f := &Fixture{
		Store:   store,
		Bucket:  &Bucket{},
		Advisor: &Advisor{Text: "Solid plan."},
		Close:   func() { _ = sqlDB.Close() },
	}
	f.Journal = service.NewJournalService(Tracer, store, f.Bucket, f.Advisor, zap.NewNop())
	f.Ingest = service.NewIngestService(Tracer, f.Journal, f.Advisor, zap.NewNop())
	return f
}

// AddTrade stores a trade through the journal so risk/reward is derived
// the same way as for webhook input.
func (f *Fixture) AddTrade(t testing.TB, instrument string, dir domain.TradeDirection, entry, stop, target float64, notes string) domain.Trade {
	t.Helper()
	nt := domain.NewTrade{
		Instrument: instrument,
		Direction:  dir,
		EntryPrice: entry,
		StopLoss:   stop,
		TakeProfit: target,
	}
	if notes != "" {
		nt.Notes = &notes
	}
	tr, err := f.Journal.InsertTrade(context.Background(), nt)
	require.NoError(t, err)
	return *tr
}

func (f *Fixture) AddStructure(t testing.TB, instrument string, typ domain.StructureType, dir domain.StructureDirection, level float64) domain.Structure {
	t.Helper()
	s, err := f.Journal.InsertStructure(context.Background(), domain.NewStructure{
		Instrument:    instrument,
		StructureType: typ,
		Direction:     dir,
		PriceLevel:    level,
	})
	require.NoError(t, err)
	return *s
}
