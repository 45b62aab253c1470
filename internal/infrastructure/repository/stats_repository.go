package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"go.uber.org/zap"
)

type StatsRepository struct {
	db      *pgxpool.Pool
	builder squirrel.StatementBuilderType
	log     *zap.Logger
}

func NewStatsRepository(db *pgxpool.Pool, log *zap.Logger) *StatsRepository {
	return &StatsRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		log:     log,
	}
}

func (r *StatsRepository) GetStats(ctx context.Context) (*result.StatsResult, error) {
	res := &result.StatsResult{}

	// Вызовы команд по типу и результату
	query, args, err := r.builder.
		Select("command", "applied", "COUNT(*)").
		From("command_invocations").
		GroupBy("command", "applied").
		OrderBy("command", "applied DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	err = r.collect(ctx, query, args, func(scan func(...any) error) error {
		var s result.CommandStats
		if err := scan(&s.Command, &s.Applied, &s.Count); err != nil {
			return err
		}
		res.Commands = append(res.Commands, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// PR по статусам
	query, args, err = r.builder.
		Select("status", "COUNT(*)").
		From("pull_requests").
		GroupBy("status").
		OrderBy("status").
		ToSql()
	if err != nil {
		return nil, err
	}
	err = r.collect(ctx, query, args, func(scan func(...any) error) error {
		var s result.PullRequestStats
		if err := scan(&s.Status, &s.Count); err != nil {
			return err
		}
		res.PullRequests = append(res.PullRequests, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Ожидающие ревью по логинам
	query, args, err = r.builder.
		Select("login", "COUNT(*)").
		From("reviewers").
		Where(squirrel.Eq{"status": string(domain.ReviewerPendingReview)}).
		GroupBy("login").
		OrderBy("COUNT(*) DESC", "login").
		ToSql()
	if err != nil {
		return nil, err
	}
	err = r.collect(ctx, query, args, func(scan func(...any) error) error {
		var s result.ReviewerStats
		if err := scan(&s.Login, &s.Pending); err != nil {
			return err
		}
		res.Reviewers = append(res.Reviewers, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Debug("stats collected",
		zap.Int("commands", len(res.Commands)),
		zap.Int("pull_request_statuses", len(res.PullRequests)),
		zap.Int("reviewers", len(res.Reviewers)),
	)
	return res, nil
}

func (r *StatsRepository) collect(ctx context.Context, query string, args []any, row func(scan func(...any) error) error) error {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("stats query failed", zap.String("query", query), zap.Error(err))
		return handleDBError(err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := row(rows.Scan); err != nil {
			return handleDBError(err)
		}
	}
	return handleDBError(rows.Err())
}
