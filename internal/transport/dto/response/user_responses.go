package response

type SetPausedResponse struct {
	Login  string `json:"login"`
	Paused bool   `json:"paused"`
}

type AssignedReviewResponse struct {
	ReviewerId        int64  `json:"reviewer_id"`
	Repository        string `json:"repository"`
	Number            int    `json:"number"`
	Status            string `json:"status"`
	PullRequestStatus string `json:"pull_request_status"`
	CreatedAt         string `json:"createdAt"`
}

type GetReviewResponse struct {
	Login   string                   `json:"login"`
	Reviews []AssignedReviewResponse `json:"reviews"`
}
