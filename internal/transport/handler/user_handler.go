package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/niklvrr/codybot/internal/transport/dto/response"
	"github.com/niklvrr/codybot/internal/usecase/service"
	"go.uber.org/zap"
)

type UserService interface {
	SetPaused(ctx context.Context, req *request.SetPausedRequest) (*response.SetPausedResponse, error)
	GetReview(ctx context.Context, req *request.GetReviewRequest) (*response.GetReviewResponse, error)
}

type UserHandler struct {
	svc UserService
	log *zap.Logger
}

func NewUserHandler(svc UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		svc: svc,
		log: log,
	}
}

// SetPaused включает и выключает пользователя в реестре пауз
func (h *UserHandler) SetPaused(w http.ResponseWriter, r *http.Request) {
	h.log.Info("setPaused request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	// Парсим json в модель SetPausedRequest
	var req request.SetPausedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err))
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.SetPaused(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to set user paused",
			zap.String("login", req.Login),
			zap.Bool("paused", req.Paused),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": resp,
	})
}

func (h *UserHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	h.log.Info("getReview request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	// Получаем login и status из query параметров
	query := r.URL.Query()
	req := request.GetReviewRequest{
		Login:  query.Get("login"),
		Status: query.Get("status"),
	}
	if req.Login == "" {
		h.log.Warn("validation failed: login query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	resp, err := h.svc.GetReview(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to get assigned reviews",
			zap.String("login", req.Login),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	h.log.Info("assigned reviews retrieved",
		zap.String("login", resp.Login),
		zap.Int("reviews_count", len(resp.Reviews)),
	)
	writeJSON(w, http.StatusOK, resp)
}
