package result

import "github.com/niklvrr/codybot/internal/domain"

type PullRequestResult struct {
	Repository  domain.Repository
	PullRequest domain.PullRequest
	Reviewers   []domain.Reviewer
}
