package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	errDBPathIsEmpty = errors.New("database path is empty")
	errDBInit        = errors.New("database init error")
	errMigrations    = errors.New("database migration error")
)

// NewDatabase открывает пул соединений и накатывает миграции из migrationsPath
func NewDatabase(ctx context.Context, dbUrl, migrationsPath string, logger *zap.Logger) (*pgxpool.Pool, error) {
	if dbUrl == "" {
		return nil, errDBPathIsEmpty
	}

	pool, err := pgxpool.New(ctx, dbUrl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDBInit, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", errDBInit, err)
	}

	if err := RunMigrations(migrationsPath, dbUrl, logger); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func RunMigrations(migrationsPath, dbUrl string, logger *zap.Logger) error {
	mg, err := migrate.New(migrationsPath, dbUrl)
	if err != nil {
		return fmt.Errorf("%w: init: %v", errMigrations, err)
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("%w: version check: %v", errMigrations, err)
	}

	if dirty {
		logger.Warn("database is in dirty state, forcing version", zap.Uint("version", version))
		if err := mg.Force(int(version)); err != nil {
			return fmt.Errorf("%w: force version: %v", errMigrations, err)
		}
		logger.Debug("dirty state cleared, retrying migration")
	}

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: up: %v", errMigrations, err)
	}

	logger.Debug("migration run ok")
	return nil
}
