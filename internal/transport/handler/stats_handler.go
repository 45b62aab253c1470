package handler

import (
	"context"
	"net/http"

	"github.com/niklvrr/codybot/internal/transport/dto/response"
	"go.uber.org/zap"
)

type StatsService interface {
	GetStats(ctx context.Context) (*response.StatsResponse, error)
}

type StatsHandler struct {
	svc StatsService
	log *zap.Logger
}

func NewStatsHandler(svc StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		svc: svc,
		log: log,
	}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.log.Info("getStats request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	resp, err := h.svc.GetStats(r.Context())
	if err != nil {
		h.log.Error("failed to get statistics", zap.Error(err))
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	h.log.Info("statistics retrieved successfully",
		zap.Int("commands", len(resp.Commands)),
		zap.Int("reviewers", len(resp.Reviewers)),
	)
	writeJSON(w, http.StatusOK, resp)
}
