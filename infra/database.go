// Package infra wires concrete adapters (Postgres, the payment gateway HTTP
// client) to the contracts the services depend on.
package infra

import (
	"errors"
	"time"

	"github.com/nokolie/kudiwallet/config"
	"github.com/nokolie/kudiwallet/infra/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the Postgres connection with pool limits suitable for
// a single service instance. SQL logging is verbose only in development.
func NewDBConnection(cnf config.DBConfig, appEnv string) (*gorm.DB, error) {
	databaseUrl := cnf.Url
	if databaseUrl == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(postgres.Open(databaseUrl), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		// Dialect errors become gorm sentinels (gorm.ErrDuplicatedKey) so the
		// repositories can map them to domain errors.
		TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// AutoMigrate creates or updates the schema for all persisted models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&repository.User{},
		&repository.Transaction{},
		&repository.Beneficiary{},
	)
}
