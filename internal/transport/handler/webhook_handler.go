package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	gh "github.com/google/go-github/v66/github"
	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/niklvrr/codybot/internal/transport/dto/response"
	"github.com/niklvrr/codybot/internal/usecase/service"
	"github.com/niklvrr/codybot/internal/worker"
	"go.uber.org/zap"
)

const eventPing = "ping"

// Интерфейс очереди задач
type JobQueue interface {
	Enqueue(job worker.Job) error
}

// WebhookHandler принимает вебхуки GitHub, проверяет подпись и ставит событие в очередь
type WebhookHandler struct {
	queue  JobQueue
	secret []byte
	log    *zap.Logger
}

func NewWebhookHandler(queue JobQueue, secret string, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		queue:  queue,
		secret: []byte(secret),
		log:    log,
	}
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	event := gh.WebHookType(r)
	deliveryId := gh.DeliveryID(r)
	log := h.log.With(
		zap.String("event", event),
		zap.String("delivery_id", deliveryId),
	)

	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType != "application/json" {
		log.Warn("webhook with unsupported content type", zap.String("content_type", r.Header.Get("Content-Type")))
		h.fail(w, service.WrapError(service.ErrInvalidPayload, errors.New("content type must be application/json")))
		return
	}

	// Без секрета подпись не проверяется
	payload, err := gh.ValidatePayload(r, h.secret)
	if err != nil {
		log.Warn("webhook payload rejected", zap.Error(err))
		if len(h.secret) > 0 {
			h.fail(w, service.WrapError(service.ErrUnauthorized, err))
			return
		}
		h.fail(w, service.WrapError(service.ErrInvalidPayload, err))
		return
	}

	if event == "" {
		h.fail(w, service.WrapError(service.ErrInvalidPayload, errors.New("X-GitHub-Event header is required")))
		return
	}

	resp := &response.WebhookResponse{Event: event, DeliveryId: deliveryId}

	switch event {
	case eventPing:
		resp.Status = response.WebhookPong
		writeJSON(w, http.StatusOK, resp)
		return
	case worker.EventPullRequest:
		var req request.PullRequestEventRequest
		if err := decodePayload(payload, &req); err != nil {
			log.Warn("malformed pull_request payload", zap.Error(err))
			h.fail(w, err)
			return
		}
		if req.Action != request.ActionOpened {
			h.ignore(w, resp, req.Action)
			return
		}
		if err := req.Validate(); err != nil {
			log.Warn("invalid pull_request payload", zap.Error(err))
			h.fail(w, service.WrapError(service.ErrInvalidPayload, err))
			return
		}
	case worker.EventIssueComment:
		var req request.IssueCommentEventRequest
		if err := decodePayload(payload, &req); err != nil {
			log.Warn("malformed issue_comment payload", zap.Error(err))
			h.fail(w, err)
			return
		}
		if req.Action != request.ActionCreated {
			h.ignore(w, resp, req.Action)
			return
		}
		if err := req.Validate(); err != nil {
			log.Warn("invalid issue_comment payload", zap.Error(err))
			h.fail(w, service.WrapError(service.ErrInvalidPayload, err))
			return
		}
	default:
		h.ignore(w, resp, "")
		return
	}

	err = h.queue.Enqueue(worker.Job{
		Event:      event,
		DeliveryId: deliveryId,
		Payload:    payload,
	})
	if err != nil {
		log.Error("failed to enqueue webhook", zap.Error(err))
		if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrStopped) {
			h.fail(w, service.WrapError(service.ErrQueueFull, err))
			return
		}
		h.fail(w, err)
		return
	}

	log.Info("webhook queued")
	resp.Status = response.WebhookQueued
	writeJSON(w, http.StatusAccepted, resp)
}

func (h *WebhookHandler) ignore(w http.ResponseWriter, resp *response.WebhookResponse, action string) {
	h.log.Debug("webhook ignored",
		zap.String("event", resp.Event),
		zap.String("action", action),
	)
	resp.Status = response.WebhookIgnored
	writeJSON(w, http.StatusAccepted, resp)
}

func (h *WebhookHandler) fail(w http.ResponseWriter, err error) {
	statusCode, errResp := HandleError(err)
	WriteError(w, statusCode, errResp)
}

func decodePayload(payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return service.WrapError(service.ErrInvalidPayload, err)
	}
	return nil
}
