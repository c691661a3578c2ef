package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitPostgresRequiresDSN(t *testing.T) {
	pool, err := InitPostgres(context.Background(), "", zap.NewNop())
	assert.Nil(t, pool)
	assert.Error(t, err)
}

func TestInitPostgresRejectsMalformedDSN(t *testing.T) {
	pool, err := InitPostgres(context.Background(), "postgres://%zz", zap.NewNop())
	assert.Nil(t, pool)
	assert.Error(t, err)
}

func TestInitSQLiteMemory(t *testing.T) {
	gdb, err := InitSQLite(":memory:", zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Ping())
}

func TestInitSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	gdb, err := InitSQLite(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, gdb.Exec("CREATE TABLE probe (id INTEGER)").Error)
}

func TestInitSQLiteRequiresPath(t *testing.T) {
	_, err := InitSQLite("", zap.NewNop())
	assert.Error(t, err)
}
