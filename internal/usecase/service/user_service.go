package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"github.com/niklvrr/codybot/internal/infrastructure/repository"
	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/niklvrr/codybot/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	setPausedError = errors.New("set user paused error")
	getReviewError = errors.New("get review error")
)

// Интерфейс репозитория
type UserRepository interface {
	SetPaused(ctx context.Context, d *dto.SetPausedDTO) (*domain.User, error)
	GetReview(ctx context.Context, d *dto.GetReviewDTO) (*result.GetReviewResult, error)
}

type UserService struct {
	repo UserRepository
	log  *zap.Logger
}

func NewUserService(repo UserRepository, log *zap.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

func (s *UserService) SetPaused(ctx context.Context, req *request.SetPausedRequest) (*response.SetPausedResponse, error) {
	s.log.Info("setPaused request accepted",
		zap.String("login", req.Login),
		zap.Bool("paused", req.Paused),
	)

	// Проверяем логин
	login, err := normalizeLogin(req.Login, "login")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	// Запрос в бд
	res, err := s.repo.SetPaused(ctx, &dto.SetPausedDTO{Login: login, Paused: req.Paused})
	if err != nil {
		s.log.Error("failed to set user paused",
			zap.String("login", login),
			zap.Bool("paused", req.Paused),
			zap.Error(err),
		)

		// Маппим ошибки
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, WrapError(ErrInvalidInput, err)
		}

		// Неизвестная ошибка
		return nil, fmt.Errorf("%w: %w", setPausedError, err)
	}

	s.log.Info("user paused flag updated",
		zap.String("login", res.Login),
		zap.Bool("paused", res.Paused),
	)

	// Ответ
	return &response.SetPausedResponse{
		Login:  res.Login,
		Paused: res.Paused,
	}, nil
}

func (s *UserService) GetReview(ctx context.Context, req *request.GetReviewRequest) (*response.GetReviewResponse, error) {
	s.log.Info("getReview request accepted",
		zap.String("login", req.Login),
		zap.String("status", req.Status),
	)

	login, err := normalizeLogin(req.Login, "login")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	status, err := normalizeReviewerStatus(req.Status)
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	// Запрос в бд
	res, err := s.repo.GetReview(ctx, &dto.GetReviewDTO{Login: login, Status: status})
	if err != nil {
		s.log.Error("failed to get assigned reviews",
			zap.String("login", login),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, WrapError(ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %w", getReviewError, err)
	}

	reviews := make([]response.AssignedReviewResponse, 0, len(res.Reviews))
	for _, review := range res.Reviews {
		reviews = append(reviews, response.AssignedReviewResponse{
			ReviewerId:        review.ReviewerId,
			Repository:        review.Owner + "/" + review.Name,
			Number:            review.Number,
			Status:            review.Status,
			PullRequestStatus: review.PullRequestStatus,
			CreatedAt:         review.CreatedAt.Format(time.RFC3339),
		})
	}

	s.log.Info("assigned reviews retrieved",
		zap.String("login", login),
		zap.Int("reviews_count", len(reviews)),
	)

	// Ответ
	return &response.GetReviewResponse{
		Login:   login,
		Reviews: reviews,
	}, nil
}
