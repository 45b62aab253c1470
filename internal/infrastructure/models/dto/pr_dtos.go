package dto

import "github.com/niklvrr/codybot/internal/domain"

type CreatePullRequestDTO struct {
	Owner        string
	Name         string
	IgnoreLabels []string
	Number       int
	HeadSha      string
	Status       domain.PullRequestStatus
	Reviewers    []domain.NewReviewer
}

type FindPullRequestDTO struct {
	Owner  string
	Name   string
	Number int
}
