package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/niklvrr/codybot/internal/usecase/service"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleError маппит доменные ошибки на HTTP коды и ErrorResponse
func HandleError(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusOK, ErrorResponse{}
	}

	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		statusCode := mapErrorCodeToHTTPStatus(domainErr.Code)
		return statusCode, ErrorResponse{
			Error: ErrorDetail{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			},
		}
	}

	// Неизвестная ошибка - возвращаем 500
	return http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	}
}

func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case "PR_EXISTS":
		return http.StatusConflict // 409
	case "NOT_FOUND":
		return http.StatusNotFound // 404
	case "INVALID_INPUT", "INVALID_PAYLOAD":
		return http.StatusBadRequest // 400
	case "UNAUTHORIZED":
		return http.StatusUnauthorized // 401
	case "UPSTREAM_UNAVAILABLE":
		return http.StatusBadGateway // 502
	case "QUEUE_FULL":
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteError отправляет ErrorResponse клиенту
func WriteError(w http.ResponseWriter, statusCode int, errResp ErrorResponse) {
	writeJSON(w, statusCode, errResp)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
