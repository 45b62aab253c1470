package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/repository"
	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/niklvrr/codybot/internal/transport/dto/response"
	"go.uber.org/zap"
)

var setIgnoreLabelsError = errors.New("set ignore labels error")

// Интерфейс репозитория
type SettingsRepository interface {
	Load(ctx context.Context, ref domain.RepositoryRef) (*domain.Settings, error)
	SetIgnoreLabels(ctx context.Context, d *dto.SetIgnoreLabelsDTO) (*domain.Repository, error)
}

// RepositoryService настройки отдельного репозитория
type RepositoryService struct {
	repo SettingsRepository
	log  *zap.Logger
}

func NewRepositoryService(repo SettingsRepository, log *zap.Logger) *RepositoryService {
	return &RepositoryService{
		repo: repo,
		log:  log,
	}
}

func (s *RepositoryService) SetIgnoreLabels(ctx context.Context, req *request.SetIgnoreLabelsRequest) (*response.RepositorySettingsResponse, error) {
	ref, err := normalizeRepository(req.Owner, req.Name)
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	// Пустые метки и повторы выбрасываем
	labels := make([]string, 0, len(req.IgnoreLabels))
	seen := make(map[string]struct{}, len(req.IgnoreLabels))
	for _, label := range req.IgnoreLabels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	repo, err := s.repo.SetIgnoreLabels(ctx, &dto.SetIgnoreLabelsDTO{
		Owner:        ref.Owner,
		Name:         ref.Name,
		IgnoreLabels: labels,
	})
	if err != nil {
		s.log.Error("failed to set ignore labels",
			zap.String("repository", ref.FullName()),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, WrapError(ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %w", setIgnoreLabelsError, err)
	}

	s.log.Info("ignore labels updated",
		zap.String("repository", repo.FullName()),
		zap.Strings("ignore_labels", repo.IgnoreLabels),
	)
	return &response.RepositorySettingsResponse{
		Repository:   repo.FullName(),
		IgnoreLabels: repo.IgnoreLabels,
	}, nil
}

// Settings настройки события, их грузят один раз на входе в обработчик
func (s *RepositoryService) Settings(ctx context.Context, ref domain.RepositoryRef) (domain.Settings, error) {
	settings, err := s.repo.Load(ctx, ref)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings for %s: %w", ref.FullName(), err)
	}
	return *settings, nil
}
