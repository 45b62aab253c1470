package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/niklvrr/codybot/internal/transport/dto/response"
	"github.com/niklvrr/codybot/internal/usecase/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockRuleService мок сервиса для тестов
type MockRuleService struct {
	mock.Mock
}

func (m *MockRuleService) Add(ctx context.Context, req *request.AddRuleRequest) (*response.RuleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.RuleResponse), args.Error(1)
}

func (m *MockRuleService) Get(ctx context.Context, req *request.GetRuleRequest) (*response.RuleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.RuleResponse), args.Error(1)
}

func TestRuleHandler_AddRule_Success(t *testing.T) {
	logger := zap.NewNop()
	mockService := new(MockRuleService)
	handler := NewRuleHandler(mockService, logger)
	team := int64(1234)

	mockService.On("Add", mock.Anything, mock.MatchedBy(func(r *request.AddRuleRequest) bool {
		return r.ShortCode == "foo" && r.Reviewer == "BrentW" && r.TeamId != nil && *r.TeamId == 1234
	})).Return(&response.RuleResponse{Id: 7, Repository: "aergonaut/testrepo", ShortCode: "foo", Reviewer: "BrentW", TeamId: &team}, nil)

	body := `{"owner":"aergonaut","name":"testrepo","short_code":"foo","reviewer":"BrentW","team_id":1234}`
	req := httptest.NewRequest(http.MethodPost, "/rules/add", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()

	handler.AddRule(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var result map[string]response.RuleResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(7), result["rule"].Id)
	mockService.AssertExpectations(t)
}

func TestRuleHandler_AddRule_BadJSON(t *testing.T) {
	logger := zap.NewNop()
	mockService := new(MockRuleService)
	handler := NewRuleHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/rules/add", bytes.NewReader([]byte(`{"team_id":"x"}`)))
	w := httptest.NewRecorder()

	handler.AddRule(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Add")
}

func TestRuleHandler_GetRule_NotFound(t *testing.T) {
	logger := zap.NewNop()
	mockService := new(MockRuleService)
	handler := NewRuleHandler(mockService, logger)

	mockService.On("Get", mock.Anything, &request.GetRuleRequest{Owner: "aergonaut", Name: "testrepo", ShortCode: "bar"}).
		Return(nil, service.ErrRuleNotFound)

	req := httptest.NewRequest(http.MethodGet, "/rules/get?owner=aergonaut&name=testrepo&short_code=bar", nil)
	w := httptest.NewRecorder()

	handler.GetRule(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Error.Code)
	assert.Equal(t, "review rule not found", errResp.Error.Message)
}
