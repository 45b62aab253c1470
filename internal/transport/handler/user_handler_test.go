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

// MockUserService мок сервиса для тестов
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SetPaused(ctx context.Context, req *request.SetPausedRequest) (*response.SetPausedResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.SetPausedResponse), args.Error(1)
}

func (m *MockUserService) GetReview(ctx context.Context, req *request.GetReviewRequest) (*response.GetReviewResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.GetReviewResponse), args.Error(1)
}

func TestUserHandler_SetPaused_Success(t *testing.T) {
	logger := zap.NewNop()
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, logger)

	mockService.On("SetPaused", mock.Anything, mock.MatchedBy(func(r *request.SetPausedRequest) bool {
		return r.Login == "iceman" && r.Paused
	})).Return(&response.SetPausedResponse{Login: "iceman", Paused: true}, nil)

	body, _ := json.Marshal(request.SetPausedRequest{Login: "iceman", Paused: true})
	req := httptest.NewRequest(http.MethodPost, "/users/setPaused", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SetPaused(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result map[string]response.SetPausedResponse
	err := json.Unmarshal(w.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.True(t, result["user"].Paused)
	mockService.AssertExpectations(t)
}

func TestUserHandler_SetPaused_BadJSON(t *testing.T) {
	logger := zap.NewNop()
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/users/setPaused", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()

	handler.SetPaused(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SetPaused")
}

func TestUserHandler_SetPaused_InvalidLogin(t *testing.T) {
	logger := zap.NewNop()
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, logger)

	mockService.On("SetPaused", mock.Anything, mock.Anything).Return(nil, service.WrapError(service.ErrInvalidInput, nil))

	body, _ := json.Marshal(request.SetPausedRequest{Login: ""})
	req := httptest.NewRequest(http.MethodPost, "/users/setPaused", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.SetPaused(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "INVALID_INPUT", errResp.Error.Code)
}

func TestUserHandler_GetReview_Success(t *testing.T) {
	logger := zap.NewNop()
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, logger)

	mockService.On("GetReview", mock.Anything, &request.GetReviewRequest{Login: "aergonaut", Status: "pending_review"}).
		Return(&response.GetReviewResponse{
			Login: "aergonaut",
			Reviews: []response.AssignedReviewResponse{
				{ReviewerId: 1, Repository: "aergonaut/testrepo", Number: 42, Status: "pending_review"},
			},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/getReview?login=aergonaut&status=pending_review", nil)
	w := httptest.NewRecorder()

	handler.GetReview(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result response.GetReviewResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "aergonaut", result.Login)
	assert.Len(t, result.Reviews, 1)
	assert.Equal(t, 42, result.Reviews[0].Number)
	mockService.AssertExpectations(t)
}

func TestUserHandler_GetReview_MissingLogin(t *testing.T) {
	logger := zap.NewNop()
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/users/getReview", nil)
	w := httptest.NewRecorder()

	handler.GetReview(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetReview")
}
