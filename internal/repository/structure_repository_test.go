package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"trademind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureInsertAndList(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	values := []any{"s1", "NQ", "CHoCH", "BEARISH", 15000.5, nil, domain.StringPtr("swing high taken"), created}
	pool := &stubPool{row: values, rows: [][]any{values}}
	repo := NewStructureRepository(pool, testTracer)

	got, err := repo.InsertStructure(context.Background(), domain.NewStructure{
		Instrument: "NQ", StructureType: domain.StructureCHoCH, Direction: domain.StructureBearish, PriceLevel: 15000.5,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StructureCHoCH, got.StructureType)
	assert.Equal(t, domain.StructureBearish, got.Direction)
	assert.Equal(t, "CHoCH", pool.queries[0].args[1])

	list, err := repo.ListStructures(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "swing high taken", domain.Deref(list[0].Notes))
}

func TestStructureListUnavailable(t *testing.T) {
	repo := NewStructureRepository(&stubPool{queryErr: errors.New("closed pool")}, testTracer)
	_, err := repo.ListStructures(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestPostgresStoreEnsureSchemaBatchesStatements(t *testing.T) {
	pool := &stubPool{}
	store := NewPostgresStore(pool, testTracer)

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NotNil(t, pool.batch)
	assert.Equal(t, len(schemaStatements), pool.batch.Len())
	assert.Equal(t, len(schemaStatements), pool.batchExecs)
}

func TestPostgresStoreEnsureSchemaFailure(t *testing.T) {
	pool := &stubPool{batchErr: errors.New("permission denied")}
	store := NewPostgresStore(pool, testTracer)

	assert.ErrorIs(t, store.EnsureSchema(context.Background()), domain.ErrStoreUnavailable)
}
