package service

import (
	"context"
	"errors"
	"testing"

	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatsService_GetStats(t *testing.T) {
	mockRepo := new(MockStatsRepository)
	service := NewStatsService(mockRepo, zap.NewNop())

	mockRepo.On("GetStats", mock.Anything).Return(&result.StatsResult{
		Commands: []result.CommandStats{
			{Command: "approval", Applied: true, Count: 4},
			{Command: "replace", Applied: false, Count: 1},
		},
		PullRequests: []result.PullRequestStats{{Status: "approved", Count: 2}},
		Reviewers:    []result.ReviewerStats{{Login: "aergonaut", Pending: 3}},
	}, nil)

	resp, err := service.GetStats(context.Background())

	require.NoError(t, err)
	assert.Len(t, resp.Commands, 2)
	assert.Equal(t, 4, resp.Commands[0].Count)
	assert.False(t, resp.Commands[1].Applied)
	assert.Equal(t, "approved", resp.PullRequests[0].Status)
	assert.Equal(t, "aergonaut", resp.Reviewers[0].Login)
}

func TestStatsService_GetStats_Empty(t *testing.T) {
	mockRepo := new(MockStatsRepository)
	service := NewStatsService(mockRepo, zap.NewNop())

	mockRepo.On("GetStats", mock.Anything).Return(&result.StatsResult{}, nil)

	resp, err := service.GetStats(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, resp.Commands)
	assert.NotNil(t, resp.PullRequests)
	assert.NotNil(t, resp.Reviewers)
}

func TestStatsService_GetStats_Error(t *testing.T) {
	mockRepo := new(MockStatsRepository)
	service := NewStatsService(mockRepo, zap.NewNop())

	mockRepo.On("GetStats", mock.Anything).Return(nil, errors.New("boom"))

	_, err := service.GetStats(context.Background())

	assert.ErrorIs(t, err, getStatsError)
}
