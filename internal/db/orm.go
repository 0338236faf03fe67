package db

import (
	"fmt"
	"time"

	"airport-booking/skyport/internal/logging"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// Driver specific constraint errors come back as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	logging.Info("Connected to Postgres via GORM")
	return db, nil
}

// InitSQLiteORM opens a sqlite database, used for local development without Postgres.
// A single connection keeps in-memory databases coherent.
func InitSQLiteORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logging.Info("Opened sqlite via GORM", "dsn", dsn)
	return db, nil
}

// SQLX exposes the pool behind a GORM handle for raw queries
func SQLX(gdb *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql pool: %w", err)
	}

	driver := "postgres"
	if gdb.Dialector.Name() == "sqlite" {
		driver = "sqlite3"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}
