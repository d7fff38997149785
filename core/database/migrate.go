package database

import (
	"fmt"

	"marketplace-api/core/logger"
	"marketplace-api/migrations"

	"github.com/pressly/goose/v3"
)

// Migrate applies all pending goose migrations from the embedded FS.
func Migrate(db Database) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db.SQLx().DB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db.SQLx().DB)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("Migrations applied", "version", version)
	return nil
}
