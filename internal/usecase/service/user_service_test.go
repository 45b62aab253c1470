package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestUserService_SetPaused_Success(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	mockRepo.On("SetPaused", mock.Anything, &dto.SetPausedDTO{Login: "iceman", Paused: true}).
		Return(&domain.User{Login: "iceman", Paused: true}, nil)

	resp, err := service.SetPaused(context.Background(), &request.SetPausedRequest{Login: " @iceman ", Paused: true})

	assert.NoError(t, err)
	assert.Equal(t, "iceman", resp.Login)
	assert.True(t, resp.Paused)
	mockRepo.AssertExpectations(t)
}

func TestUserService_SetPaused_InvalidLogin(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	for _, login := range []string{"", "@", "not a login"} {
		resp, err := service.SetPaused(context.Background(), &request.SetPausedRequest{Login: login})

		assert.Nil(t, resp)
		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	}
	mockRepo.AssertNotCalled(t, "SetPaused")
}

func TestUserService_SetPaused_UnknownError(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)
	dbErr := errors.New("connection reset")

	mockRepo.On("SetPaused", mock.Anything, mock.Anything).Return(nil, dbErr)

	_, err := service.SetPaused(context.Background(), &request.SetPausedRequest{Login: "iceman"})

	assert.ErrorIs(t, err, setPausedError)
	assert.ErrorIs(t, err, dbErr)
}

func TestUserService_GetReview_Success(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mockRepo.On("GetReview", mock.Anything, &dto.GetReviewDTO{Login: "aergonaut", Status: "pending_review"}).
		Return(&result.GetReviewResult{
			Login: "aergonaut",
			Reviews: []result.AssignedReview{{
				ReviewerId:        3,
				Owner:             "aergonaut",
				Name:              "testrepo",
				Number:            42,
				Status:            "pending_review",
				PullRequestStatus: "pending_review",
				CreatedAt:         createdAt,
			}},
		}, nil)

	resp, err := service.GetReview(context.Background(), &request.GetReviewRequest{Login: "aergonaut", Status: "pending_review"})

	assert.NoError(t, err)
	assert.Equal(t, "aergonaut", resp.Login)
	assert.Len(t, resp.Reviews, 1)
	assert.Equal(t, "aergonaut/testrepo", resp.Reviews[0].Repository)
	assert.Equal(t, 42, resp.Reviews[0].Number)
	assert.Equal(t, "2024-03-01T10:00:00Z", resp.Reviews[0].CreatedAt)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetReview_EmptyIsNotAnError(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	mockRepo.On("GetReview", mock.Anything, mock.Anything).Return(&result.GetReviewResult{Login: "goose"}, nil)

	resp, err := service.GetReview(context.Background(), &request.GetReviewRequest{Login: "goose"})

	assert.NoError(t, err)
	assert.NotNil(t, resp.Reviews)
	assert.Empty(t, resp.Reviews)
}

func TestUserService_GetReview_UnknownStatus(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	_, err := service.GetReview(context.Background(), &request.GetReviewRequest{Login: "goose", Status: "merged"})

	assert.ErrorIs(t, err, ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "GetReview")
}
