package result

import "time"

type AssignedReview struct {
	ReviewerId        int64
	Owner             string
	Name              string
	Number            int
	Status            string
	PullRequestStatus string
	CreatedAt         time.Time
}

type GetReviewResult struct {
	Login   string
	Reviews []AssignedReview
}
