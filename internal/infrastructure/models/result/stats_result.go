package result

type CommandStats struct {
	Command string
	Applied bool
	Count   int
}

type PullRequestStats struct {
	Status string
	Count  int
}

type ReviewerStats struct {
	Login   string
	Pending int
}

type StatsResult struct {
	Commands     []CommandStats
	PullRequests []PullRequestStats
	Reviewers    []ReviewerStats
}
