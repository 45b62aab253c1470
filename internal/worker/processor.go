package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/niklvrr/codybot/internal/usecase/service"
	"go.uber.org/zap"
)

// События GitHub, которые обрабатывает бот
const (
	EventPullRequest  = "pull_request"
	EventIssueComment = "issue_comment"
)

type EventService interface {
	HandlePullRequestOpened(ctx context.Context, req *request.PullRequestEventRequest, settings domain.Settings) (*result.PullRequestResult, error)
	HandleIssueComment(ctx context.Context, req *request.IssueCommentEventRequest, settings domain.Settings, deliveryId string) (*result.CommentResult, error)
}

type SettingsLoader interface {
	Settings(ctx context.Context, ref domain.RepositoryRef) (domain.Settings, error)
}

// Processor разбирает payload задачи и передает событие сервису.
// Настройки репозитория грузятся здесь один раз на событие.
type Processor struct {
	events   EventService
	settings SettingsLoader
	log      *zap.Logger
}

func NewProcessor(events EventService, settings SettingsLoader, log *zap.Logger) *Processor {
	return &Processor{
		events:   events,
		settings: settings,
		log:      log,
	}
}

func (p *Processor) Process(ctx context.Context, job Job) error {
	switch job.Event {
	case EventPullRequest:
		return p.pullRequest(ctx, job)
	case EventIssueComment:
		return p.issueComment(ctx, job)
	default:
		p.log.Debug("event is not handled", zap.String("event", job.Event))
		return nil
	}
}

func (p *Processor) pullRequest(ctx context.Context, job Job) error {
	var req request.PullRequestEventRequest
	if err := json.Unmarshal(job.Payload, &req); err != nil {
		return service.WrapError(service.ErrInvalidPayload, err)
	}
	if req.Action != request.ActionOpened {
		return nil
	}

	settings, err := p.settings.Settings(ctx, req.Repository.Ref())
	if err != nil {
		return err
	}

	res, err := p.events.HandlePullRequestOpened(ctx, &req, settings)
	if err != nil {
		return fmt.Errorf("pull request #%d: %w", req.Number, err)
	}

	p.log.Info("pull request tracked",
		zap.String("job_id", job.Id),
		zap.Int64("pull_request_id", res.PullRequest.Id),
		zap.Int("reviewers", len(res.Reviewers)),
	)
	return nil
}

func (p *Processor) issueComment(ctx context.Context, job Job) error {
	var req request.IssueCommentEventRequest
	if err := json.Unmarshal(job.Payload, &req); err != nil {
		return service.WrapError(service.ErrInvalidPayload, err)
	}
	if req.Action != request.ActionCreated {
		return nil
	}

	settings, err := p.settings.Settings(ctx, req.Repository.Ref())
	if err != nil {
		return err
	}

	res, err := p.events.HandleIssueComment(ctx, &req, settings, job.DeliveryId)
	if err != nil {
		return fmt.Errorf("comment on #%d: %w", req.PrNumber(), err)
	}

	p.log.Info("comment handled",
		zap.String("job_id", job.Id),
		zap.String("command", res.Command),
		zap.String("skipped", res.Skipped),
		zap.Bool("applied", res.Applied),
	)
	return nil
}
