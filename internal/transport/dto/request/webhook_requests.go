package request

import (
	"errors"
	"regexp"

	"github.com/niklvrr/codybot/internal/domain"
)

// Действия, на которые реагирует бот
const (
	ActionOpened  = "opened"
	ActionCreated = "created"
)

var shaPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

var (
	errMissingRepository = errors.New("repository.owner.login and repository.name are required")
	errMissingNumber     = errors.New("pull request number is required")
	errMissingSha        = errors.New("pull_request.head.sha must be a 40-char hex commit id")
	errMissingAuthor     = errors.New("comment.user.login or sender.login is required")
)

type Account struct {
	Login string `json:"login"`
}

type RepositoryPayload struct {
	Name  string  `json:"name"`
	Owner Account `json:"owner"`
}

func (r RepositoryPayload) Ref() domain.RepositoryRef {
	return domain.RepositoryRef{Owner: r.Owner.Login, Name: r.Name}
}

func (r RepositoryPayload) validate() error {
	if r.Owner.Login == "" || r.Name == "" {
		return errMissingRepository
	}
	return nil
}

type PullRequestEventRequest struct {
	Action      string `json:"action"`
	Number      int    `json:"number"`
	PullRequest struct {
		Body string `json:"body"`
		Head struct {
			Sha string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
	Repository RepositoryPayload `json:"repository"`
	Sender     Account           `json:"sender"`
}

func (r *PullRequestEventRequest) Validate() error {
	if err := r.Repository.validate(); err != nil {
		return err
	}
	if r.Number <= 0 {
		return errMissingNumber
	}
	if !shaPattern.MatchString(r.PullRequest.Head.Sha) {
		return errMissingSha
	}
	return nil
}

type IssueCommentEventRequest struct {
	Action string `json:"action"`
	Number int    `json:"number"`
	Issue  struct {
		Number int `json:"number"`
	} `json:"issue"`
	Comment struct {
		Body string  `json:"body"`
		User Account `json:"user"`
	} `json:"comment"`
	Repository RepositoryPayload `json:"repository"`
	Sender     Account           `json:"sender"`
}

// PrNumber номер из issue, у GitHub он лежит там; верхнеуровневый number остается для совместимости
func (r *IssueCommentEventRequest) PrNumber() int {
	if r.Issue.Number > 0 {
		return r.Issue.Number
	}
	return r.Number
}

// Author автор комментария, если его нет, то отправитель события
func (r *IssueCommentEventRequest) Author() string {
	if r.Comment.User.Login != "" {
		return r.Comment.User.Login
	}
	return r.Sender.Login
}

func (r *IssueCommentEventRequest) Validate() error {
	if err := r.Repository.validate(); err != nil {
		return err
	}
	if r.PrNumber() <= 0 {
		return errMissingNumber
	}
	if r.Author() == "" {
		return errMissingAuthor
	}
	return nil
}
