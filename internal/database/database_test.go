package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/database"
	"github.com/vinayakfood/website/backend/internal/models"
	"github.com/vinayakfood/website/backend/internal/testhelpers"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "vinayak.db"),
		LogLevel:   "silent",
	}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db, zap.NewNop()))
	assert.NoError(t, database.HealthCheck(ctx, db))
	require.NoError(t, database.Close(db))
	assert.Error(t, database.HealthCheck(ctx, db))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "mysql"}, zap.NewNop())
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}

func TestSQLiteMigrationsSeedMenuContentOnce(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)

	require.NoError(t, database.SeedMenuContent(db))
	require.NoError(t, database.RunMigrations(db, zap.NewNop()))

	var rows []models.MenuContent
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, config.DefaultMenuHeading, rows[0].Heading)
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := database.NewRedisClient(context.Background(), config.RedisConfig{URL: "not-a-redis-url"}, zap.NewNop())
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	var content []models.MenuContent
	require.NoError(t, db.Find(&content).Error)
	require.Len(t, content, 1, "the migration seeds exactly one menu content row")
	assert.Equal(t, config.DefaultMenuHeading, content[0].Heading)

	err := db.Exec(`INSERT INTO dishes (id, name, price, category) VALUES (?, 'Butter Chicken', 12, 'Curries')`, uuid.NewString()).Error
	assert.Error(t, err, "category is a closed set")

	err = db.Exec(`INSERT INTO dishes (id, name, price, category) VALUES (?, 'Pani Puri', -1, 'Chaat')`, uuid.NewString()).Error
	assert.Error(t, err, "price cannot be negative")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	require.NoError(t, err)
	m, err := database.NewMigrator(driver, zap.NewNop())
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)
	assert.False(t, dirty)

	require.NoError(t, m.Up(), "re-running is a no-op")
	require.NoError(t, m.Steps(-1))
	assert.Error(t, db.Exec(`SELECT 1 FROM admin_users`).Error)
	require.NoError(t, m.Up())
	assert.NoError(t, db.Exec(`SELECT 1 FROM admin_users`).Error)
}
