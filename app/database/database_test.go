package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"inkwell/app/config"
	"inkwell/app/models"
)

func TestOpenAndMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "blog.db")
	db, err := Open(config.DatabaseConfig{DSN: dsn, MaxOpenConns: 1, LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, Migrate(db))

	for _, table := range []any{&models.User{}, &models.Article{}, &models.Comment{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(config.DatabaseConfig{DSN: filepath.Join(t.TempDir(), "blog.db"), LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "file::memory:?cache=shared&_foreign_keys=on"},
		{in: MemoryDSN, want: "file::memory:?cache=shared&_foreign_keys=on"},
		{in: "blog.db", want: "blog.db?_foreign_keys=on"},
		{in: "blog.db?_journal_mode=WAL", want: "blog.db?_journal_mode=WAL&_foreign_keys=on"},
	}

	for _, tt := range tests {
		got, err := sqliteDSN(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Error, gormLogLevel("ERROR"))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel("warn"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
}
