package domain

import "time"

type PullRequestStatus string

const (
	PullRequestPendingReview PullRequestStatus = "pending_review"
	PullRequestApproved      PullRequestStatus = "approved"
)

type ReviewerStatus string

const (
	ReviewerPendingReview   ReviewerStatus = "pending_review"
	ReviewerCompletedReview ReviewerStatus = "completed_review"
)

// Состояния коммит-статуса на стороне GitHub
const (
	CommitStatePending = "pending"
	CommitStateSuccess = "success"
)

// Команды, которые попадают в журнал вызовов
const (
	CommandApproval  = "approval"
	CommandReplace   = "replace"
	CommandReplaceMe = "replace_me"
)

type Repository struct {
	Id           int64
	Owner        string
	Name         string
	IgnoreLabels []string
	CreatedAt    time.Time
}

func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// RepositoryRef адресует репозиторий на стороне GitHub
type RepositoryRef struct {
	Owner string
	Name  string
}

func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

type User struct {
	Login     string    `json:"login"`
	Paused    bool      `json:"paused"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type PullRequest struct {
	Id             int64
	RepositoryId   int64
	Number         int
	Status         PullRequestStatus
	HeadSha        string
	PendingReviews []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Reviewer struct {
	Id            int64
	PullRequestId int64
	Login         string
	Status        ReviewerStatus
	ReviewRuleId  *int64
	CreatedAt     time.Time
}

func (r Reviewer) IsPending() bool {
	return r.Status == ReviewerPendingReview
}

type ReviewRule struct {
	Id           int64
	RepositoryId int64
	ShortCode    string
	Reviewer     string
	TeamId       *int64
	CreatedAt    time.Time
}

type CommandInvocation struct {
	Id            int64
	PullRequestId int64
	Login         string
	Command       string
	CommandText   string
	Applied       bool
	DeliveryId    string
	CreatedAt     time.Time
}

// Settings собираются один раз на событие и дальше передаются явно
type Settings struct {
	IgnoreLabels []string
	PausedLogins []string
}

func (s Settings) IsIgnored(labels []string) (string, bool) {
	for _, label := range labels {
		for _, ignored := range s.IgnoreLabels {
			if label == ignored {
				return label, true
			}
		}
	}
	return "", false
}

// PullRequestDetail то, что GitHub отдает про PR
type PullRequestDetail struct {
	Number        int
	Body          string
	HeadSha       string
	Labels        []string
	CommitAuthors []string
}

type CommitStatus struct {
	State       string
	Context     string
	Description string
}

// NewReviewer описывает слот при создании PR
type NewReviewer struct {
	Login    string
	RuleCode string
}
