package database

import (
	"fmt"
	"time"

	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/database/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase abre o arquivo de respostas em postgres e aplica as migrações
func SetupDatabase(dsn, timezone string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not defined in the environment")
	}

	config := &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logger.Error),
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// O volume de escrita é uma passada por respondente
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := RegisterMiddlewares(db, timezone); err != nil {
		return nil, fmt.Errorf("failed to register middlewares: %w", err)
	}

	if err := Prepare(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Prepare aplica migrações e índices num banco já aberto
func Prepare(db *gorm.DB) error {
	if err := migrations.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := migrations.AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
