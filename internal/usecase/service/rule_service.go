package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/repository"
	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/niklvrr/codybot/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	addRuleError = errors.New("add review rule error")
	getRuleError = errors.New("get review rule error")
)

// RuleService управляет правилами ревью репозитория
type RuleService struct {
	repo RuleRepository
	log  *zap.Logger
}

func NewRuleService(repo RuleRepository, log *zap.Logger) *RuleService {
	return &RuleService{
		repo: repo,
		log:  log,
	}
}

func (s *RuleService) Add(ctx context.Context, req *request.AddRuleRequest) (*response.RuleResponse, error) {
	s.log.Info("addRule request accepted",
		zap.String("repository", req.Owner+"/"+req.Name),
		zap.String("short_code", req.ShortCode),
	)

	// Валидация
	ref, err := normalizeRepository(req.Owner, req.Name)
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	code, err := normalizeShortCode(req.ShortCode)
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	reviewer, err := normalizeLogin(req.Reviewer, "reviewer")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	if req.TeamId != nil && *req.TeamId <= 0 {
		return nil, WrapError(ErrInvalidInput, fmt.Errorf("team_id must be positive, got %d", *req.TeamId))
	}

	// Собираем dto
	d := &dto.AddRuleDTO{
		Owner:     ref.Owner,
		Name:      ref.Name,
		ShortCode: code,
		Reviewer:  reviewer,
		TeamId:    req.TeamId,
	}

	// Запрос в бд
	rule, err := s.repo.Add(ctx, d)
	if err != nil {
		s.log.Error("failed to add review rule",
			zap.String("repository", ref.FullName()),
			zap.String("short_code", code),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, WrapError(ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %w", addRuleError, err)
	}

	s.log.Info("review rule saved",
		zap.String("repository", ref.FullName()),
		zap.String("short_code", rule.ShortCode),
		zap.String("reviewer", rule.Reviewer),
	)
	return ruleResponse(ref, rule), nil
}

func (s *RuleService) Get(ctx context.Context, req *request.GetRuleRequest) (*response.RuleResponse, error) {
	ref, err := normalizeRepository(req.Owner, req.Name)
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	code, err := normalizeShortCode(req.ShortCode)
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	rule, err := s.repo.Get(ctx, &dto.GetRuleDTO{Owner: ref.Owner, Name: ref.Name, ShortCode: code})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrRuleNotFound, err)
		}
		s.log.Error("failed to get review rule",
			zap.String("repository", ref.FullName()),
			zap.String("short_code", code),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", getRuleError, err)
	}

	return ruleResponse(ref, rule), nil
}

func ruleResponse(ref domain.RepositoryRef, rule *domain.ReviewRule) *response.RuleResponse {
	return &response.RuleResponse{
		Id:         rule.Id,
		Repository: ref.FullName(),
		ShortCode:  rule.ShortCode,
		Reviewer:   rule.Reviewer,
		TeamId:     rule.TeamId,
		CreatedAt:  rule.CreatedAt.Format(time.RFC3339),
	}
}
