package database

import (
	"fmt"
	"time"

	"github.com/justsurfingit/jobwave/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres database behind dsn. An empty dsn means demo
// mode: no connection is made and a nil handle is returned.
func Connect(dsn string, debug bool, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, nil
	}

	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("configuring connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Database connection established")
	return db, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Company{}, &models.Job{}, &models.Profile{}, &models.Application{}); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
