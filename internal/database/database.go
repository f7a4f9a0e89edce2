package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aduvert/recettes/config"
	"github.com/aduvert/recettes/internal/model"
)

// New opens the database described by the configuration, runs migrations and
// seeds demo data on first startup.
func New(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var db *gorm.DB
	var err error
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		logger.Info().
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("dbname", cfg.Database.Name).
			Msg("connecting to postgres")
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN()), gormCfg)
	default:
		if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", mkErr)
			}
		}
		logger.Info().Str("path", cfg.Database.SQLitePath).Msg("opening sqlite database")
		db, err = gorm.Open(sqlite.Open(cfg.Database.SQLitePath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error accessing database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(db, logger); err != nil {
		return nil, err
	}
	if err := Seed(db, logger); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the recettes table if absent and backfills the image_url
// column on schemas that predate image uploads. The backfill is logged, not
// fatal.
func Migrate(db *gorm.DB, logger zerolog.Logger) error {
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate recettes table: %w", err)
	}

	if !db.Migrator().HasColumn(&model.Recipe{}, "image_url") {
		if err := db.Migrator().AddColumn(&model.Recipe{}, "image_url"); err != nil {
			logger.Error().Err(err).Msg("failed to add image_url column")
		} else {
			logger.Info().Msg("image_url column added")
		}
	}

	return nil
}

// Close closes the underlying connection handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
