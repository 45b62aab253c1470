package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"github.com/niklvrr/codybot/internal/infrastructure/repository"
	"github.com/niklvrr/codybot/internal/transport/dto/request"
	"github.com/niklvrr/codybot/internal/usecase/command"
	"go.uber.org/zap"
)

const (
	DefaultStatusContext = "code-review/cody"

	pendingDescription = "Not all reviewers have approved"
	successDescription = "All reviewers have approved"
)

var (
	openPullRequestError = errors.New("open pull request error")
	handleCommentError   = errors.New("handle comment error")
)

// Интерфейс клиента GitHub
type HostClient interface {
	TeamClient
	CreateStatus(ctx context.Context, repo domain.RepositoryRef, sha string, status domain.CommitStatus) error
	GetPullRequest(ctx context.Context, repo domain.RepositoryRef, number int) (*domain.PullRequestDetail, error)
	EditBody(ctx context.Context, repo domain.RepositoryRef, number int, body string) error
}

// Интерфейс репозитория
type PullRequestRepository interface {
	Create(ctx context.Context, d *dto.CreatePullRequestDTO) (*result.PullRequestResult, error)
	Find(ctx context.Context, d *dto.FindPullRequestDTO) (*domain.PullRequest, error)
	WithSession(ctx context.Context, prId int64, fn domain.SessionFunc) (*domain.SessionChange, error)
}

// Интерфейс репозитория
type RuleRepository interface {
	Add(ctx context.Context, d *dto.AddRuleDTO) (*domain.ReviewRule, error)
	Get(ctx context.Context, d *dto.GetRuleDTO) (*domain.ReviewRule, error)
	GetByCode(ctx context.Context, repositoryId int64, code string) (*domain.ReviewRule, error)
	GetById(ctx context.Context, id int64) (*domain.ReviewRule, error)
}

// EventService обрабатывает события GitHub: открытие PR и комментарии к нему
type EventService struct {
	prs           PullRequestRepository
	rules         RuleRepository
	host          HostClient
	resolver      *RuleResolver
	policy        *AssignmentPolicy
	statusContext string
	log           *zap.Logger
}

func NewEventService(prs PullRequestRepository, rules RuleRepository, host HostClient, statusContext string, log *zap.Logger) *EventService {
	if statusContext == "" {
		statusContext = DefaultStatusContext
	}
	return &EventService{
		prs:           prs,
		rules:         rules,
		host:          host,
		resolver:      NewRuleResolver(host, log),
		policy:        NewAssignmentPolicy(),
		statusContext: statusContext,
		log:           log,
	}
}

// commentEvent то, что нужно обработчикам команд про один комментарий
type commentEvent struct {
	repo       domain.RepositoryRef
	number     int
	author     string
	detail     *domain.PullRequestDetail
	settings   domain.Settings
	deliveryId string
}

func (s *EventService) HandlePullRequestOpened(ctx context.Context, req *request.PullRequestEventRequest, settings domain.Settings) (*result.PullRequestResult, error) {
	if err := req.Validate(); err != nil {
		return nil, WrapError(ErrInvalidPayload, err)
	}
	repo := req.Repository.Ref()

	s.log.Info("pull request opened",
		zap.String("repository", repo.FullName()),
		zap.Int("number", req.Number),
	)

	reviewers := s.policy.ExtractReviewers(req.PullRequest.Body)

	// PR одобрен тогда и только тогда, когда нет ожидающих ревьюеров,
	// поэтому PR без упоминаний сразу создается approved со статусом success
	status := domain.PullRequestPendingReview
	commitStatus := s.status(domain.CommitStatePending)
	if len(reviewers) == 0 {
		status = domain.PullRequestApproved
		commitStatus = s.status(domain.CommitStateSuccess)
	}

	if err := s.host.CreateStatus(ctx, repo, req.PullRequest.Head.Sha, commitStatus); err != nil {
		return nil, WrapError(ErrUpstreamUnavailable, err)
	}

	// Собираем dto
	d := &dto.CreatePullRequestDTO{
		Owner:        repo.Owner,
		Name:         repo.Name,
		IgnoreLabels: settings.IgnoreLabels,
		Number:       req.Number,
		HeadSha:      req.PullRequest.Head.Sha,
		Status:       status,
		Reviewers:    reviewers,
	}

	// Запрос в бд
	res, err := s.prs.Create(ctx, d)
	if err != nil {
		s.log.Error("failed to create pull request",
			zap.String("repository", repo.FullName()),
			zap.Int("number", req.Number),
			zap.Error(err),
		)

		// Маппим ошибки
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, WrapError(ErrPrExists, err)
		}
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, WrapError(ErrInvalidInput, err)
		}

		// Неизвестная ошибка
		return nil, fmt.Errorf("%w: %w", openPullRequestError, err)
	}

	s.log.Info("review session created",
		zap.String("repository", repo.FullName()),
		zap.Int("number", req.Number),
		zap.String("status", string(res.PullRequest.Status)),
		zap.Int("reviewers", len(res.Reviewers)),
	)
	return res, nil
}

func (s *EventService) HandleIssueComment(ctx context.Context, req *request.IssueCommentEventRequest, settings domain.Settings, deliveryId string) (*result.CommentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, WrapError(ErrInvalidPayload, err)
	}
	ev := commentEvent{
		repo:       req.Repository.Ref(),
		number:     req.PrNumber(),
		author:     req.Author(),
		settings:   settings,
		deliveryId: deliveryId,
	}

	// Комментарий может прийти к PR, который бот не отслеживает
	pr, err := s.prs.Find(ctx, &dto.FindPullRequestDTO{Owner: ev.repo.Owner, Name: ev.repo.Name, Number: ev.number})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Info("comment on untracked pull request",
				zap.String("repository", ev.repo.FullName()),
				zap.Int("number", ev.number),
			)
			return &result.CommentResult{Skipped: result.SkipUntracked}, nil
		}
		return nil, fmt.Errorf("%w: %w", handleCommentError, err)
	}

	ev.detail, err = s.host.GetPullRequest(ctx, ev.repo, ev.number)
	if err != nil {
		return nil, WrapError(ErrUpstreamUnavailable, err)
	}
	if ev.detail.HeadSha == "" {
		ev.detail.HeadSha = pr.HeadSha
	}

	// Метка из списка игнора отключает бота на этом PR целиком
	if label, ignored := settings.IsIgnored(ev.detail.Labels); ignored {
		s.log.Info("pull request carries ignore label, comment skipped",
			zap.String("repository", ev.repo.FullName()),
			zap.Int("number", ev.number),
			zap.String("label", label),
		)
		return &result.CommentResult{Skipped: result.SkipIgnoredLabel}, nil
	}

	intent := command.Parse(req.Comment.Body)
	res := &result.CommentResult{Command: intent.Kind()}

	var fn domain.SessionFunc
	switch intent := intent.(type) {
	case command.Approval:
		fn = s.approve(ev, intent, res)
	case command.Replace:
		rule, err := s.rules.GetByCode(ctx, pr.RepositoryId, intent.RuleCode)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.log.Info("replace references unknown rule",
					zap.String("repository", ev.repo.FullName()),
					zap.String("short_code", intent.RuleCode),
				)
				res.Skipped = result.SkipRuleNotFound
				return res, nil
			}
			return nil, fmt.Errorf("%w: %w", handleCommentError, err)
		}
		fn = s.replace(ev, intent, rule, res)
	case command.ReplaceMe:
		fn = s.replaceMe(ev, intent, res)
	case command.None:
		res.Skipped = result.SkipNoCommand
		return res, nil
	default:
		return nil, WrapError(ErrUnknownIntent, fmt.Errorf("intent %q", intent.Kind()))
	}

	change, err := s.prs.WithSession(ctx, pr.Id, fn)
	if err != nil {
		s.log.Error("failed to apply command",
			zap.String("repository", ev.repo.FullName()),
			zap.Int("number", ev.number),
			zap.String("command", intent.Kind()),
			zap.String("login", ev.author),
			zap.Error(err),
		)
		return nil, s.sessionError(err)
	}

	res.Recorded = change != nil && change.Invocation != nil
	if !res.Recorded && res.Skipped == "" {
		res.Skipped = result.SkipNoSlot
	}

	s.log.Info("comment processed",
		zap.String("repository", ev.repo.FullName()),
		zap.Int("number", ev.number),
		zap.String("command", res.Command),
		zap.String("login", ev.author),
		zap.Bool("applied", res.Applied),
		zap.Bool("approved", res.Approved),
	)
	return res, nil
}

// approve закрывает слот автора комментария, последнее одобрение выставляет success
func (s *EventService) approve(ev commentEvent, intent command.Approval, res *result.CommentResult) domain.SessionFunc {
	return func(ctx context.Context, session *domain.ReviewSession) (*domain.SessionChange, error) {
		applied, approved := session.Approve(ev.author)
		if !applied {
			// Комментируют не только ревьюеры
			return nil, nil
		}
		session.Record(domain.CommandInvocation{
			Login:       ev.author,
			Command:     domain.CommandApproval,
			CommandText: intent.Raw,
			Applied:     true,
			DeliveryId:  ev.deliveryId,
		})

		if approved {
			if err := s.host.CreateStatus(ctx, ev.repo, ev.detail.HeadSha, s.status(domain.CommitStateSuccess)); err != nil {
				return nil, WrapError(ErrUpstreamUnavailable, err)
			}
		}

		res.Applied = true
		res.Approved = approved
		return session.Change(), nil
	}
}

// replace меняет логин в слоте правила, если цель входит в допустимое множество
func (s *EventService) replace(ev commentEvent, intent command.Replace, rule *domain.ReviewRule, res *result.CommentResult) domain.SessionFunc {
	return func(ctx context.Context, session *domain.ReviewSession) (*domain.SessionChange, error) {
		slot, ok := session.LatestPendingForRule(rule.Id)
		if !ok {
			s.log.Info("rule has no pending slot on pull request",
				zap.String("short_code", rule.ShortCode),
				zap.Int("number", ev.number),
			)
			return nil, nil
		}

		invocation := domain.CommandInvocation{
			Login:       ev.author,
			Command:     domain.CommandReplace,
			CommandText: intent.Raw,
			DeliveryId:  ev.deliveryId,
		}

		acceptable := s.resolver.Acceptable(ctx, rule)
		if !acceptable.Contains(intent.Login) {
			s.log.Info("replacement is not acceptable for rule",
				zap.String("short_code", rule.ShortCode),
				zap.String("target", intent.Login),
			)
			session.Record(invocation)
			return session.Change(), nil
		}

		return s.reassign(ctx, ev, session, slot, intent.Login, invocation, res)
	}
}

// replaceMe ищет замену автору комментария среди людей правила и авторов коммитов
func (s *EventService) replaceMe(ev commentEvent, intent command.ReplaceMe, res *result.CommentResult) domain.SessionFunc {
	return func(ctx context.Context, session *domain.ReviewSession) (*domain.SessionChange, error) {
		slot, ok := session.LatestPending(ev.author)
		if !ok {
			return nil, nil
		}

		acceptable := domain.NewLoginSet()
		if slot.ReviewRuleId != nil {
			rule, err := s.rules.GetById(ctx, *slot.ReviewRuleId)
			switch {
			case err == nil:
				acceptable = s.resolver.Acceptable(ctx, rule)
			case errors.Is(err, repository.ErrNotFound):
				s.log.Warn("slot references missing rule", zap.Int64("review_rule_id", *slot.ReviewRuleId))
			default:
				return nil, err
			}
		}

		invocation := domain.CommandInvocation{
			Login:       ev.author,
			Command:     domain.CommandReplaceMe,
			CommandText: intent.Raw,
			DeliveryId:  ev.deliveryId,
		}

		candidates := s.policy.Candidates(acceptable, ev.detail.CommitAuthors)
		replacement, found := s.policy.PickReplacement(ev.author, candidates, ev.settings.PausedLogins, session.PendingLogins())
		if !found {
			s.log.Info("no eligible replacement",
				zap.String("login", ev.author),
				zap.Strings("candidates", candidates),
			)
			session.Record(invocation)
			return session.Change(), nil
		}

		return s.reassign(ctx, ev, session, slot, replacement, invocation, res)
	}
}

// reassign переписывает слот и описание PR, ошибка GitHub откатывает транзакцию
func (s *EventService) reassign(ctx context.Context, ev commentEvent, session *domain.ReviewSession, slot domain.Reviewer, login string, invocation domain.CommandInvocation, res *result.CommentResult) (*domain.SessionChange, error) {
	if err := session.Reassign(slot.Id, login); err != nil {
		return nil, err
	}
	invocation.Applied = true
	session.Record(invocation)

	body := s.policy.RewriteMention(ev.detail.Body, slot.Login, login)
	if err := s.host.EditBody(ctx, ev.repo, ev.number, body); err != nil {
		return nil, WrapError(ErrUpstreamUnavailable, err)
	}

	res.Applied = true
	res.Replacement = login
	return session.Change(), nil
}

func (s *EventService) status(state string) domain.CommitStatus {
	description := pendingDescription
	if state == domain.CommitStateSuccess {
		description = successDescription
	}
	return domain.CommitStatus{
		State:       state,
		Context:     s.statusContext,
		Description: description,
	}
}

func (s *EventService) sessionError(err error) error {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return WrapError(ErrPrNotFound, err)
	}
	if errors.Is(err, repository.ErrInvalidInput) {
		return WrapError(ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: %w", handleCommentError, err)
}
