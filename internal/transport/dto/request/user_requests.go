package request

type SetPausedRequest struct {
	Login  string `json:"login"`
	Paused bool   `json:"paused"`
}

type GetReviewRequest struct {
	Login  string `json:"login"`
	Status string `json:"status"`
}
