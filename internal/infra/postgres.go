package infra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hospilog/internal/config"
	"hospilog/internal/models/db_models"
)

// InitPostgresql opens the pool, applies limits and pings once.
func InitPostgresql(cfg config.PostgresConfig, logger *zap.Logger) (*gorm.DB, error) {
	gl := gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{Logger: gl})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// legacyAccountEmailIndex covered soft-deleted rows too.
const legacyAccountEmailIndex = "idx_accounts_email"

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if m := db.Migrator(); m.HasIndex(&db_models.Account{}, legacyAccountEmailIndex) {
		if err := m.DropIndex(&db_models.Account{}, legacyAccountEmailIndex); err != nil {
			return fmt.Errorf("drop %s: %w", legacyAccountEmailIndex, err)
		}
	}
	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Product{},
		&db_models.Vehicle{},
		&db_models.Shipment{},
		&db_models.Order{},
		&db_models.Certificate{},
		&db_models.Invoice{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("postgres handle", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("closing postgres", zap.Error(err))
	} else {
		logger.Info("postgres connection closed")
	}
}
