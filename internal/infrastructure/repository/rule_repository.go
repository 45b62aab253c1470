package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"go.uber.org/zap"
)

const (
	ensureRepositoryQuery = `
INSERT INTO repositories (owner, name)
VALUES ($1, $2)
ON CONFLICT (owner, name) DO UPDATE
	SET owner = EXCLUDED.owner
RETURNING id;`

	upsertRuleQuery = `
INSERT INTO review_rules (repository_id, short_code, reviewer, team_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (repository_id, short_code) DO UPDATE
	SET reviewer = EXCLUDED.reviewer,
	    team_id = EXCLUDED.team_id
RETURNING id, repository_id, short_code, reviewer, team_id, created_at;`

	selectRuleByCodeQuery = `
SELECT id, repository_id, short_code, reviewer, team_id, created_at
FROM review_rules
WHERE repository_id = $1 AND short_code = $2;`

	selectRuleByIdQuery = `
SELECT id, repository_id, short_code, reviewer, team_id, created_at
FROM review_rules
WHERE id = $1;`

	selectRuleByRepositoryQuery = `
SELECT rr.id, rr.repository_id, rr.short_code, rr.reviewer, rr.team_id, rr.created_at
FROM review_rules rr
JOIN repositories r ON r.id = rr.repository_id
WHERE r.owner = $1 AND r.name = $2 AND rr.short_code = $3;`
)

type RuleRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRuleRepository(db *pgxpool.Pool, log *zap.Logger) *RuleRepository {
	return &RuleRepository{
		db:  db,
		log: log,
	}
}

func (r *RuleRepository) Add(ctx context.Context, d *dto.AddRuleDTO) (*domain.ReviewRule, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer tx.Rollback(ctx)

	// Правило всегда принадлежит репозиторию
	var repositoryId int64
	if err := tx.QueryRow(ctx, ensureRepositoryQuery, d.Owner, d.Name).Scan(&repositoryId); err != nil {
		return nil, handleDBError(err)
	}

	rule, err := scanRule(tx.QueryRow(ctx, upsertRuleQuery, repositoryId, d.ShortCode, d.Reviewer, d.TeamId))
	if err != nil {
		r.log.Error("failed to upsert review rule",
			zap.String("short_code", d.ShortCode),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, handleDBError(err)
	}

	r.log.Info("review rule saved",
		zap.Int64("rule_id", rule.Id),
		zap.String("short_code", rule.ShortCode),
	)
	return rule, nil
}

func (r *RuleRepository) Get(ctx context.Context, d *dto.GetRuleDTO) (*domain.ReviewRule, error) {
	rule, err := scanRule(r.db.QueryRow(ctx, selectRuleByRepositoryQuery, d.Owner, d.Name, d.ShortCode))
	if err != nil {
		return nil, handleDBError(err)
	}
	return rule, nil
}

func (r *RuleRepository) GetByCode(ctx context.Context, repositoryId int64, code string) (*domain.ReviewRule, error) {
	rule, err := scanRule(r.db.QueryRow(ctx, selectRuleByCodeQuery, repositoryId, code))
	if err != nil {
		return nil, handleDBError(err)
	}
	return rule, nil
}

func (r *RuleRepository) GetById(ctx context.Context, id int64) (*domain.ReviewRule, error) {
	rule, err := scanRule(r.db.QueryRow(ctx, selectRuleByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return rule, nil
}

func scanRule(row pgx.Row) (*domain.ReviewRule, error) {
	rule := &domain.ReviewRule{}
	err := row.Scan(
		&rule.Id,
		&rule.RepositoryId,
		&rule.ShortCode,
		&rule.Reviewer,
		&rule.TeamId,
		&rule.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rule, nil
}
