package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"go.uber.org/zap"
)

const (
	selectIgnoreLabelsQuery = `
SELECT ignore_labels FROM repositories
WHERE owner = $1 AND name = $2;`

	setIgnoreLabelsQuery = `
INSERT INTO repositories (owner, name, ignore_labels)
VALUES ($1, $2, $3)
ON CONFLICT (owner, name) DO UPDATE
	SET ignore_labels = EXCLUDED.ignore_labels
RETURNING id, owner, name, ignore_labels, created_at;`
)

// SettingsRepository собирает настройки репозитория и реестр приостановленных логинов
type SettingsRepository struct {
	db                  *pgxpool.Pool
	users               *UserRepository
	defaultIgnoreLabels []string
	log                 *zap.Logger
}

func NewSettingsRepository(db *pgxpool.Pool, users *UserRepository, defaultIgnoreLabels []string, log *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:                  db,
		users:               users,
		defaultIgnoreLabels: defaultIgnoreLabels,
		log:                 log,
	}
}

func (r *SettingsRepository) Load(ctx context.Context, ref domain.RepositoryRef) (*domain.Settings, error) {
	var ignoreLabels []string
	err := r.db.QueryRow(ctx, selectIgnoreLabelsQuery, ref.Owner, ref.Name).Scan(&ignoreLabels)
	err = handleDBError(err)
	switch {
	case errors.Is(err, ErrNotFound):
		// Репозиторий еще не встречался
		ignoreLabels = r.defaultIgnoreLabels
	case err != nil:
		r.log.Error("failed to load repository settings",
			zap.String("repository", ref.FullName()),
			zap.Error(err),
		)
		return nil, err
	}

	paused, err := r.users.PausedLogins(ctx)
	if err != nil {
		r.log.Error("failed to load paused logins", zap.Error(err))
		return nil, err
	}

	return &domain.Settings{
		IgnoreLabels: ignoreLabels,
		PausedLogins: paused,
	}, nil
}

func (r *SettingsRepository) DefaultIgnoreLabels() []string {
	return r.defaultIgnoreLabels
}

func (r *SettingsRepository) SetIgnoreLabels(ctx context.Context, d *dto.SetIgnoreLabelsDTO) (*domain.Repository, error) {
	repo := &domain.Repository{}
	err := r.db.QueryRow(ctx, setIgnoreLabelsQuery, d.Owner, d.Name, nonNil(d.IgnoreLabels)).Scan(
		&repo.Id,
		&repo.Owner,
		&repo.Name,
		&repo.IgnoreLabels,
		&repo.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to set ignore labels",
			zap.String("repository", d.Owner+"/"+d.Name),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	r.log.Info("ignore labels updated",
		zap.String("repository", repo.FullName()),
		zap.Strings("ignore_labels", repo.IgnoreLabels),
	)
	return repo, nil
}
