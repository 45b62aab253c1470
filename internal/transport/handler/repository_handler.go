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

type RepositoryService interface {
	SetIgnoreLabels(ctx context.Context, req *request.SetIgnoreLabelsRequest) (*response.RepositorySettingsResponse, error)
}

type RepositoryHandler struct {
	svc RepositoryService
	log *zap.Logger
}

func NewRepositoryHandler(svc RepositoryService, log *zap.Logger) *RepositoryHandler {
	return &RepositoryHandler{
		svc: svc,
		log: log,
	}
}

// SetSettings заменяет список меток, при которых бот молчит
func (h *RepositoryHandler) SetSettings(w http.ResponseWriter, r *http.Request) {
	h.log.Info("repository settings request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.SetIgnoreLabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err))
		WriteError(w, statusCode, errResp)
		return
	}

	resp, err := h.svc.SetIgnoreLabels(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to update repository settings",
			zap.String("repository", req.Owner+"/"+req.Name),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
