// Package github ходит в REST API GitHub: статусы коммитов, детали PR, правка описания, состав команд.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"github.com/niklvrr/codybot/internal/domain"
	"go.uber.org/zap"
)

// ErrUnavailable любой сбой обращения к GitHub
var ErrUnavailable = errors.New("github api unavailable")

const (
	commitsPerPage = 100
	membersPerPage = 100
)

type Config struct {
	Token          string
	BaseURL        string
	RequestTimeout time.Duration
}

type Client struct {
	gh  *gh.Client
	log *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	client := gh.NewClient(&http.Client{Timeout: cfg.RequestTimeout})
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}

	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{
		gh:  client,
		log: log,
	}, nil
}

func (c *Client) CreateStatus(ctx context.Context, repo domain.RepositoryRef, sha string, status domain.CommitStatus) error {
	_, _, err := c.gh.Repositories.CreateStatus(ctx, repo.Owner, repo.Name, sha, &gh.RepoStatus{
		State:       gh.String(status.State),
		Context:     gh.String(status.Context),
		Description: gh.String(status.Description),
	})
	if err != nil {
		c.log.Error("failed to create commit status",
			zap.String("repository", repo.FullName()),
			zap.String("sha", sha),
			zap.String("state", status.State),
			zap.Error(err),
		)
		return fmt.Errorf("%w: create status: %w", ErrUnavailable, err)
	}

	c.log.Info("commit status created",
		zap.String("repository", repo.FullName()),
		zap.String("sha", sha),
		zap.String("state", status.State),
	)
	return nil
}

// GetPullRequest детали PR вместе с авторами коммитов
func (c *Client) GetPullRequest(ctx context.Context, repo domain.RepositoryRef, number int) (*domain.PullRequestDetail, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		c.log.Error("failed to get pull request",
			zap.String("repository", repo.FullName()),
			zap.Int("number", number),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: get pull request: %w", ErrUnavailable, err)
	}

	detail := &domain.PullRequestDetail{
		Number:  pr.GetNumber(),
		Body:    pr.GetBody(),
		HeadSha: pr.GetHead().GetSHA(),
	}
	for _, label := range pr.Labels {
		detail.Labels = append(detail.Labels, label.GetName())
	}

	authors := domain.NewLoginSet()
	opts := &gh.ListOptions{PerPage: commitsPerPage}
	for {
		commits, resp, err := c.gh.PullRequests.ListCommits(ctx, repo.Owner, repo.Name, number, opts)
		if err != nil {
			c.log.Error("failed to list pull request commits",
				zap.String("repository", repo.FullName()),
				zap.Int("number", number),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: list commits: %w", ErrUnavailable, err)
		}
		for _, commit := range commits {
			// у коммитов от незнакомых email автора нет
			authors.Add(commit.GetAuthor().GetLogin())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	detail.CommitAuthors = authors.Logins()

	return detail, nil
}

func (c *Client) EditBody(ctx context.Context, repo domain.RepositoryRef, number int, body string) error {
	_, _, err := c.gh.Issues.Edit(ctx, repo.Owner, repo.Name, number, &gh.IssueRequest{
		Body: gh.String(body),
	})
	if err != nil {
		c.log.Error("failed to edit pull request body",
			zap.String("repository", repo.FullName()),
			zap.Int("number", number),
			zap.Error(err),
		)
		return fmt.Errorf("%w: edit issue: %w", ErrUnavailable, err)
	}
	return nil
}

// ListTeamMembers логины участников команды по числовому id, со всех страниц
func (c *Client) ListTeamMembers(ctx context.Context, teamId int64) ([]string, error) {
	members := domain.NewLoginSet()
	page := 1
	for {
		path := fmt.Sprintf("teams/%d/members?per_page=%d&page=%d", teamId, membersPerPage, page)
		req, err := c.gh.NewRequest(http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		var users []*gh.User
		resp, err := c.gh.Do(ctx, req, &users)
		if err != nil {
			c.log.Warn("failed to list team members",
				zap.Int64("team_id", teamId),
				zap.Int("page", page),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: list team members: %w", ErrUnavailable, err)
		}
		for _, user := range users {
			members.Add(user.GetLogin())
		}
		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}
	return members.Logins(), nil
}
