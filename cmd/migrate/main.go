package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/database"
	"github.com/vinayakfood/website/backend/internal/logger"
)

func main() {
	direction := flag.String("direction", "up", "up or down")
	steps := flag.Int("steps", 0, "apply (or with -direction=down, roll back) only this many migrations")
	showVersion := flag.Bool("version", false, "print the current schema version and exit")
	flag.Parse()

	zlog, err := logger.New(config.LogConfig{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			zlog.Fatal("DATABASE_URL is not set and configuration could not be loaded", zap.Error(err))
		}
		dsn = cfg.Database.URL()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		zlog.Fatal("failed to create migration driver", zap.Error(err))
	}
	m, err := database.NewMigrator(driver, zlog)
	if err != nil {
		zlog.Fatal("failed to create migrator", zap.Error(err))
	}

	if *showVersion {
		version, dirty, err := m.Version()
		if err != nil {
			zlog.Fatal("failed to read schema version", zap.Error(err))
		}
		zlog.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	}

	switch {
	case *steps != 0 && *direction == "down":
		err = m.Steps(-*steps)
	case *steps != 0:
		err = m.Steps(*steps)
	case *direction == "down":
		err = m.Down()
	case *direction == "up":
		err = m.Up()
	default:
		zlog.Fatal("unknown direction", zap.String("direction", *direction))
	}
	if err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
}
