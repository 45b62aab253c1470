package service

import (
	"context"
	"testing"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/repository"
	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRuleService_Add_Success(t *testing.T) {
	mockRepo := new(MockRuleRepository)
	service := NewRuleService(mockRepo, zap.NewNop())

	mockRepo.On("Add", mock.Anything, &dto.AddRuleDTO{
		Owner:     "aergonaut",
		Name:      "testrepo",
		ShortCode: "foo",
		Reviewer:  "BrentW",
		TeamId:    idPtr(1234),
	}).Return(&domain.ReviewRule{Id: 7, ShortCode: "foo", Reviewer: "BrentW", TeamId: idPtr(1234), CreatedAt: baseTime}, nil)

	resp, err := service.Add(context.Background(), &request.AddRuleRequest{
		Owner:     "aergonaut",
		Name:      "testrepo",
		ShortCode: "foo",
		Reviewer:  "@BrentW",
		TeamId:    idPtr(1234),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Id)
	assert.Equal(t, "aergonaut/testrepo", resp.Repository)
	assert.Equal(t, "BrentW", resp.Reviewer)
	assert.Equal(t, int64(1234), *resp.TeamId)
	mockRepo.AssertExpectations(t)
}

func TestRuleService_Add_Validation(t *testing.T) {
	mockRepo := new(MockRuleRepository)
	service := NewRuleService(mockRepo, zap.NewNop())

	cases := []*request.AddRuleRequest{
		{Name: "testrepo", ShortCode: "foo", Reviewer: "BrentW"},
		{Owner: "aergonaut", Name: "testrepo", ShortCode: "foo bar", Reviewer: "BrentW"},
		{Owner: "aergonaut", Name: "testrepo", ShortCode: "foo"},
		{Owner: "aergonaut", Name: "testrepo", ShortCode: "foo", Reviewer: "BrentW", TeamId: idPtr(0)},
	}
	for _, req := range cases {
		_, err := service.Add(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	mockRepo.AssertNotCalled(t, "Add")
}

func TestRuleService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockRuleRepository)
	service := NewRuleService(mockRepo, zap.NewNop())

	mockRepo.On("Get", mock.Anything, &dto.GetRuleDTO{Owner: "aergonaut", Name: "testrepo", ShortCode: "bar"}).
		Return(nil, repository.ErrNotFound)

	resp, err := service.Get(context.Background(), &request.GetRuleRequest{Owner: "aergonaut", Name: "testrepo", ShortCode: "bar"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrRuleNotFound)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
