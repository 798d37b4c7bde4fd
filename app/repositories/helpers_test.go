package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkwell/app/config"
	"inkwell/app/database"
	"inkwell/app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(config.DatabaseConfig{DSN: dsn, MaxOpenConns: 1, LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func createArticle(t *testing.T, db *gorm.DB, author *models.User, title string) *models.Article {
	t.Helper()
	article := &models.Article{Title: title, Intro: "intro", Text: "text", UserID: author.ID}
	require.NoError(t, NewGormArticleRepository(db).Create(context.Background(), article))
	return article
}
