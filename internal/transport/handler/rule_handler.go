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

type RuleService interface {
	Add(ctx context.Context, req *request.AddRuleRequest) (*response.RuleResponse, error)
	Get(ctx context.Context, req *request.GetRuleRequest) (*response.RuleResponse, error)
}

type RuleHandler struct {
	svc RuleService
	log *zap.Logger
}

func NewRuleHandler(svc RuleService, log *zap.Logger) *RuleHandler {
	return &RuleHandler{
		svc: svc,
		log: log,
	}
}

func (h *RuleHandler) AddRule(w http.ResponseWriter, r *http.Request) {
	h.log.Info("addRule request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.AddRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err))
		WriteError(w, statusCode, errResp)
		return
	}

	resp, err := h.svc.Add(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to add review rule",
			zap.String("short_code", req.ShortCode),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"rule": resp,
	})
}

func (h *RuleHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	h.log.Info("getRule request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	query := r.URL.Query()
	req := request.GetRuleRequest{
		Owner:     query.Get("owner"),
		Name:      query.Get("name"),
		ShortCode: query.Get("short_code"),
	}

	resp, err := h.svc.Get(r.Context(), &req)
	if err != nil {
		h.log.Warn("failed to get review rule",
			zap.String("short_code", req.ShortCode),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
