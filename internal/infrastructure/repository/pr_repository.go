package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"go.uber.org/zap"
)

const (
	upsertRepositoryQuery = `
INSERT INTO repositories (owner, name, ignore_labels)
VALUES ($1, $2, $3)
ON CONFLICT (owner, name) DO UPDATE
	SET owner = EXCLUDED.owner
RETURNING id, owner, name, ignore_labels, created_at;`

	insertPullRequestQuery = `
INSERT INTO pull_requests (repository_id, number, status, head_sha, pending_reviews)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, repository_id, number, status, head_sha, pending_reviews, created_at, updated_at;`

	// правило ищется по короткому коду в том же репозитории, если не нашлось, то NULL
	insertReviewerQuery = `
INSERT INTO reviewers (pull_request_id, login, status, review_rule_id)
VALUES ($1, $2, $3, (SELECT id FROM review_rules WHERE repository_id = $4 AND short_code = $5))
RETURNING id, pull_request_id, login, status, review_rule_id, created_at;`

	selectPullRequestQuery = `
SELECT p.id, p.repository_id, p.number, p.status, p.head_sha, p.pending_reviews, p.created_at, p.updated_at
FROM pull_requests p
JOIN repositories r ON r.id = p.repository_id
WHERE r.owner = $1 AND r.name = $2 AND p.number = $3;`

	lockPullRequestQuery = `
SELECT id, repository_id, number, status, head_sha, pending_reviews, created_at, updated_at
FROM pull_requests
WHERE id = $1
FOR UPDATE;`

	selectReviewersQuery = `
SELECT id, pull_request_id, login, status, review_rule_id, created_at
FROM reviewers
WHERE pull_request_id = $1
ORDER BY created_at, id;`

	updateReviewerQuery = `
UPDATE reviewers
SET login = $2,
    status = $3,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND pull_request_id = $4;`

	updatePullRequestStatusQuery = `
UPDATE pull_requests
SET status = $2,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1;`

	insertInvocationQuery = `
INSERT INTO command_invocations (pull_request_id, login, command, command_text, applied, delivery_id)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
ON CONFLICT (delivery_id) WHERE delivery_id IS NOT NULL DO NOTHING;`
)

type PrRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewPrRepository(db *pgxpool.Pool, log *zap.Logger) *PrRepository {
	return &PrRepository{
		db:  db,
		log: log,
	}
}

func (r *PrRepository) Create(ctx context.Context, d *dto.CreatePullRequestDTO) (*result.PullRequestResult, error) {
	r.log.Info("create pull request started",
		zap.String("repository", d.Owner+"/"+d.Name),
		zap.Int("number", d.Number),
		zap.Int("reviewers_requested", len(d.Reviewers)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer tx.Rollback(ctx)

	// Репозиторий создается при первом событии
	repo := domain.Repository{}
	err = tx.QueryRow(ctx, upsertRepositoryQuery, d.Owner, d.Name, nonNil(d.IgnoreLabels)).Scan(
		&repo.Id,
		&repo.Owner,
		&repo.Name,
		&repo.IgnoreLabels,
		&repo.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to upsert repository",
			zap.String("repository", d.Owner+"/"+d.Name),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	pendingReviews := make([]string, 0, len(d.Reviewers))
	for _, reviewer := range d.Reviewers {
		pendingReviews = append(pendingReviews, reviewer.Login)
	}

	pr, err := scanPullRequest(tx.QueryRow(ctx, insertPullRequestQuery,
		repo.Id,
		d.Number,
		d.Status,
		d.HeadSha,
		pendingReviews,
	))
	if err != nil {
		r.log.Error("failed to insert pull request",
			zap.String("repository", repo.FullName()),
			zap.Int("number", d.Number),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	// Слоты создаются в порядке упоминаний в описании PR
	reviewers := make([]domain.Reviewer, 0, len(d.Reviewers))
	for _, reviewer := range d.Reviewers {
		row, err := scanReviewer(tx.QueryRow(ctx, insertReviewerQuery,
			pr.Id,
			reviewer.Login,
			domain.ReviewerPendingReview,
			repo.Id,
			reviewer.RuleCode,
		))
		if err != nil {
			r.log.Error("failed to insert reviewer",
				zap.Int64("pull_request_id", pr.Id),
				zap.String("login", reviewer.Login),
				zap.Error(err),
			)
			return nil, handleDBError(err)
		}
		reviewers = append(reviewers, *row)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("failed to commit pull request creation", zap.Int64("pull_request_id", pr.Id), zap.Error(err))
		return nil, handleDBError(err)
	}

	r.log.Info("pull request created",
		zap.Int64("pull_request_id", pr.Id),
		zap.String("status", string(pr.Status)),
		zap.Int("reviewers", len(reviewers)),
	)
	return &result.PullRequestResult{
		Repository:  repo,
		PullRequest: *pr,
		Reviewers:   reviewers,
	}, nil
}

func (r *PrRepository) Find(ctx context.Context, d *dto.FindPullRequestDTO) (*domain.PullRequest, error) {
	pr, err := scanPullRequest(r.db.QueryRow(ctx, selectPullRequestQuery, d.Owner, d.Name, d.Number))
	if err != nil {
		return nil, handleDBError(err)
	}
	return pr, nil
}

// WithSession блокирует строку PR, отдает сессию в fn и сохраняет ее изменения в той же транзакции.
// Пустое изменение ничего не пишет.
func (r *PrRepository) WithSession(ctx context.Context, prId int64, fn domain.SessionFunc) (*domain.SessionChange, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer tx.Rollback(ctx)

	pr, err := scanPullRequest(tx.QueryRow(ctx, lockPullRequestQuery, prId))
	if err != nil {
		r.log.Error("failed to lock pull request", zap.Int64("pull_request_id", prId), zap.Error(err))
		return nil, handleDBError(err)
	}

	reviewers, err := readReviewers(ctx, tx, prId)
	if err != nil {
		r.log.Error("failed to read reviewers", zap.Int64("pull_request_id", prId), zap.Error(err))
		return nil, handleDBError(err)
	}

	change, err := fn(ctx, domain.NewReviewSession(*pr, reviewers))
	if err != nil {
		return nil, err
	}
	if change.IsEmpty() {
		return nil, nil
	}

	if err := persistChange(ctx, tx, prId, change); err != nil {
		r.log.Error("failed to persist session change", zap.Int64("pull_request_id", prId), zap.Error(err))
		return nil, handleDBError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("failed to commit session change", zap.Int64("pull_request_id", prId), zap.Error(err))
		return nil, handleDBError(err)
	}

	r.log.Debug("session change committed",
		zap.Int64("pull_request_id", prId),
		zap.Int("reviewer_updates", len(change.ReviewerUpdates)),
		zap.Bool("status_changed", change.Status != nil),
		zap.Bool("invocation_recorded", change.Invocation != nil),
	)
	return change, nil
}

func persistChange(ctx context.Context, tx pgx.Tx, prId int64, change *domain.SessionChange) error {
	for _, reviewer := range change.ReviewerUpdates {
		cmdTag, err := tx.Exec(ctx, updateReviewerQuery, reviewer.Id, reviewer.Login, reviewer.Status, prId)
		if err != nil {
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}

	if change.Status != nil {
		if _, err := tx.Exec(ctx, updatePullRequestStatusQuery, prId, *change.Status); err != nil {
			return err
		}
	}

	if inv := change.Invocation; inv != nil {
		_, err := tx.Exec(ctx, insertInvocationQuery,
			prId,
			inv.Login,
			inv.Command,
			inv.CommandText,
			inv.Applied,
			inv.DeliveryId,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type queryExecutor interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// вспомогательная функция для чтения всех слотов ревью PR
func readReviewers(ctx context.Context, exec queryExecutor, prId int64) ([]domain.Reviewer, error) {
	rows, err := exec.Query(ctx, selectReviewersQuery, prId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviewers []domain.Reviewer
	for rows.Next() {
		reviewer, err := scanReviewer(rows)
		if err != nil {
			return nil, err
		}
		reviewers = append(reviewers, *reviewer)
	}
	return reviewers, rows.Err()
}

func scanPullRequest(row pgx.Row) (*domain.PullRequest, error) {
	pr := &domain.PullRequest{}
	err := row.Scan(
		&pr.Id,
		&pr.RepositoryId,
		&pr.Number,
		&pr.Status,
		&pr.HeadSha,
		&pr.PendingReviews,
		&pr.CreatedAt,
		&pr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pr, nil
}

func scanReviewer(row pgx.Row) (*domain.Reviewer, error) {
	reviewer := &domain.Reviewer{}
	err := row.Scan(
		&reviewer.Id,
		&reviewer.PullRequestId,
		&reviewer.Login,
		&reviewer.Status,
		&reviewer.ReviewRuleId,
		&reviewer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reviewer, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
