package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sangkips/printshop-api/internal/config"
	"github.com/sangkips/printshop-api/internal/domain/entity"
)

// Open connects to the database named by cfg.Driver.
func Open(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	switch cfg.Driver {
	case "sqlite":
		return NewSQLiteDB(cfg.SQLitePath, gormCfg, log)
	case "", "postgres":
		return NewPostgresDB(cfg, gormCfg, log)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, gormCfg *gorm.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to database", zap.String("driver", "postgres"), zap.String("host", cfg.Host), zap.String("name", cfg.Name))
	return db, nil
}

// NewSQLiteDB opens a sqlite file, or an in-memory database for a
// "file::memory:" style DSN. Foreign keys are switched on.
func NewSQLiteDB(dsn string, gormCfg *gorm.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	log.Info("connected to database", zap.String("driver", "sqlite"), zap.String("dsn", dsn))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		// Catalog
		&entity.Product{},
		&entity.Customer{},

		// Pricing configuration
		&entity.FinancialConfig{},
		&entity.FixedCost{},
		&entity.Equipment{},

		// Quotes
		&entity.Quote{},
		&entity.QuoteItem{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// DefaultFinancialConfig is what a fresh install starts with.
func DefaultFinancialConfig(machineHourRate float64) *entity.FinancialConfig {
	return &entity.FinancialConfig{
		ProductiveHoursPerMonth: 160,
		TaxPercent:              6,
		CommissionPercent:       3,
		TargetProfitMargin:      20,
		MachineHourRate:         machineHourRate,
	}
}

// SeedDefaultData creates the financial configuration row if none exists.
func SeedDefaultData(db *gorm.DB, machineHourRate float64, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.FinancialConfig{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count financial configs: %w", err)
	}
	if count > 0 {
		return nil
	}

	cfg := DefaultFinancialConfig(machineHourRate)
	cfg.HourlyRate = cfg.CostPerHour()
	if err := db.Create(cfg).Error; err != nil {
		return fmt.Errorf("failed to seed financial config: %w", err)
	}
	log.Info("seeded default financial config", zap.String("id", cfg.ID.String()))
	return nil
}
