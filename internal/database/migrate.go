package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/models"
	"github.com/vinayakfood/website/backend/migrations"
)

// RunMigrations brings the schema up to date. Postgres uses the versioned SQL
// files in migrations/; sqlite, used for local runs and tests, is auto-migrated
// from the models and seeded the same way the SQL files seed postgres.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("using gorm auto-migration for sqlite")
		if err := db.AutoMigrate(&models.Dish{}, &models.MenuContent{}, &models.AdminUser{}); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return SeedMenuContent(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres migration driver: %w", err)
	}
	m, err := NewMigrator(driver, log)
	if err != nil {
		return err
	}
	return m.Up()
}

// SeedMenuContent inserts the default menu copy when the table is empty
func SeedMenuContent(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuContent{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count menu content: %w", err)
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.MenuContent{
		ID:          uuid.New(),
		Heading:     config.DefaultMenuHeading,
		Tagline:     config.DefaultMenuTagline,
		Description: config.DefaultMenuDescription,
		ImageURL:    config.DefaultMenuImageURL,
	}).Error
}

// Migrator runs the embedded SQL migrations with golang-migrate
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// NewMigrator wires the embedded migration files to a golang-migrate database driver
func NewMigrator(driver migratedb.Driver, log *zap.Logger) (*Migrator, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, logger: log.Named("migrate")}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("no migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	m.logVersion()
	return nil
}

// Down rolls back every migration
func (m *Migrator) Down() error {
	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}
	m.logger.Info("all migrations rolled back")
	return nil
}

// Steps applies n migrations forward, or rolls back -n when n is negative
func (m *Migrator) Steps(n int) error {
	if err := m.migrate.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration steps %d failed: %w", n, err)
	}
	m.logVersion()
	return nil
}

// Version returns the current schema version
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Migrator) logVersion() {
	version, dirty, err := m.Version()
	if err != nil {
		m.logger.Warn("failed to read migration version", zap.Error(err))
		return
	}
	m.logger.Info("schema at version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
