package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"github.com/niklvrr/codybot/internal/transport/dto/response"
	"go.uber.org/zap"
)

var getStatsError = errors.New("get stats error")

// Интерфейс репозитория
type StatsRepository interface {
	GetStats(ctx context.Context) (*result.StatsResult, error)
}

type StatsService struct {
	repo StatsRepository
	log  *zap.Logger
}

func NewStatsService(repo StatsRepository, log *zap.Logger) *StatsService {
	return &StatsService{
		repo: repo,
		log:  log,
	}
}

func (s *StatsService) GetStats(ctx context.Context) (*response.StatsResponse, error) {
	res, err := s.repo.GetStats(ctx)
	if err != nil {
		s.log.Error("failed to collect stats", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", getStatsError, err)
	}

	resp := &response.StatsResponse{
		Commands:     make([]response.CommandStat, 0, len(res.Commands)),
		PullRequests: make([]response.PullRequestStat, 0, len(res.PullRequests)),
		Reviewers:    make([]response.ReviewerStat, 0, len(res.Reviewers)),
	}
	for _, c := range res.Commands {
		resp.Commands = append(resp.Commands, response.CommandStat{Command: c.Command, Applied: c.Applied, Count: c.Count})
	}
	for _, p := range res.PullRequests {
		resp.PullRequests = append(resp.PullRequests, response.PullRequestStat{Status: p.Status, Count: p.Count})
	}
	for _, r := range res.Reviewers {
		resp.Reviewers = append(resp.Reviewers, response.ReviewerStat{Login: r.Login, Pending: r.Pending})
	}
	return resp, nil
}
