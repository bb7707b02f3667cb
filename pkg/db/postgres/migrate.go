package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"noteapi/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrDirtyDatabase           = "database is in a dirty migration state"
	ErrCloseMigration          = "failed to close migration instance"
)

// LogNoMigrationChanges сообщение при отсутствии новых миграций.
const LogNoMigrationChanges = "database schema is up to date"

// MigrateDSN применяет миграции из sourceURL к базе данных databaseURL.
func MigrateDSN(ctx context.Context, databaseURL, sourceURL string) (err error) {
	log := logger.Log(ctx).With(zap.String("source", sourceURL))

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			log.Warn(ctx, ErrCloseMigration, zap.Error(closeErr))
		}
	}()

	if _, dirty, verErr := m.Version(); verErr == nil && dirty {
		log.Error(ctx, ErrDirtyDatabase)
		return errors.New(ErrDirtyDatabase)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info(ctx, LogNoMigrationChanges)
			return nil
		}
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	version, _, _ := m.Version()
	log.Info(ctx, LogMigrationsApplied, zap.Uint("version", version))
	return nil
}
