package response

type CommandStat struct {
	Command string `json:"command"`
	Applied bool   `json:"applied"`
	Count   int    `json:"count"`
}

type PullRequestStat struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ReviewerStat struct {
	Login   string `json:"login"`
	Pending int    `json:"pending"`
}

type StatsResponse struct {
	Commands     []CommandStat     `json:"commands"`
	PullRequests []PullRequestStat `json:"pull_requests"`
	Reviewers    []ReviewerStat    `json:"reviewers"`
}
