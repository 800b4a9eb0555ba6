package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the primary relational store. When DATABASE_URL is
// set it connects to Postgres; otherwise it falls back to an embedded
// SQLite file so the server can run without any infrastructure.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
		// Map driver duplicate-key violations onto gorm.ErrDuplicatedKey so
		// uniqueness is enforced by the store, not by check-then-act reads.
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)

	if cfg.UsePostgres() {
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		log.Println("✅ Database connected [postgres]")
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.Database.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		log.Printf("✅ Database connected [sqlite: %s]", cfg.Database.SQLitePath)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// CloseDatabase closes the database connection
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
