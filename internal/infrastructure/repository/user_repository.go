package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"go.uber.org/zap"
)

const (
	setPausedQuery = `
INSERT INTO users (login, paused)
VALUES ($1, $2)
ON CONFLICT (login) DO UPDATE
	SET paused = EXCLUDED.paused,
	    updated_at = CURRENT_TIMESTAMP
RETURNING login, paused, created_at, updated_at;`

	selectPausedLoginsQuery = `
SELECT login FROM users
WHERE paused
ORDER BY login;`
)

type UserRepository struct {
	db      *pgxpool.Pool
	builder squirrel.StatementBuilderType
	log     *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, log *zap.Logger) *UserRepository {
	return &UserRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		log:     log,
	}
}

func (r *UserRepository) SetPaused(ctx context.Context, d *dto.SetPausedDTO) (*domain.User, error) {
	r.log.Info("set user paused",
		zap.String("login", d.Login),
		zap.Bool("paused", d.Paused),
	)

	user := &domain.User{}
	err := r.db.QueryRow(ctx, setPausedQuery, d.Login, d.Paused).Scan(
		&user.Login,
		&user.Paused,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		r.log.Error("set user paused failed",
			zap.String("login", d.Login),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return user, nil
}

func (r *UserRepository) PausedLogins(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, selectPausedLoginsQuery)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer rows.Close()

	var logins []string
	for rows.Next() {
		var login string
		if err := rows.Scan(&login); err != nil {
			return nil, handleDBError(err)
		}
		logins = append(logins, login)
	}
	return logins, handleDBError(rows.Err())
}

// GetReview слоты ревью логина, новые сверху, с необязательным фильтром по статусу
func (r *UserRepository) GetReview(ctx context.Context, d *dto.GetReviewDTO) (*result.GetReviewResult, error) {
	q := r.builder.
		Select("rv.id", "r.owner", "r.name", "p.number", "rv.status", "p.status", "rv.created_at").
		From("reviewers rv").
		Join("pull_requests p ON p.id = rv.pull_request_id").
		Join("repositories r ON r.id = p.repository_id").
		Where(squirrel.Eq{"rv.login": d.Login}).
		OrderBy("rv.created_at DESC", "rv.id DESC")
	if d.Status != "" {
		q = q.Where(squirrel.Eq{"rv.status": d.Status})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to load assigned reviews", zap.String("login", d.Login), zap.Error(err))
		return nil, handleDBError(err)
	}
	defer rows.Close()

	res := &result.GetReviewResult{Login: d.Login}
	for rows.Next() {
		var review result.AssignedReview
		err := rows.Scan(
			&review.ReviewerId,
			&review.Owner,
			&review.Name,
			&review.Number,
			&review.Status,
			&review.PullRequestStatus,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, handleDBError(err)
		}
		res.Reviews = append(res.Reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, handleDBError(err)
	}

	r.log.Debug("assigned reviews loaded",
		zap.String("login", d.Login),
		zap.Int("reviews", len(res.Reviews)),
	)
	return res, nil
}
