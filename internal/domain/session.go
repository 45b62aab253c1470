package domain

import (
	"context"
	"errors"
)

var (
	ErrReviewerNotFound   = errors.New("reviewer not found in session")
	ErrReviewerNotPending = errors.New("reviewer is not pending review")
	ErrSessionClosed      = errors.New("pull request is already approved")
)

// SessionFunc выполняется под блокировкой строки PR.
// Возвращенное изменение сохраняется в той же транзакции, ошибка откатывает все.
type SessionFunc func(ctx context.Context, session *ReviewSession) (*SessionChange, error)

// SessionChange то, что надо записать в базу после перехода состояния
type SessionChange struct {
	ReviewerUpdates []Reviewer
	Status          *PullRequestStatus
	Invocation      *CommandInvocation
}

func (c *SessionChange) IsEmpty() bool {
	return c == nil || (len(c.ReviewerUpdates) == 0 && c.Status == nil && c.Invocation == nil)
}

// ReviewSession машина состояний ревью одного PR.
// Строки ревьюеров только переходят pending_review -> completed_review, PR только pending_review -> approved.
type ReviewSession struct {
	PullRequest PullRequest
	Reviewers   []Reviewer

	change SessionChange
}

func NewReviewSession(pr PullRequest, reviewers []Reviewer) *ReviewSession {
	rows := make([]Reviewer, len(reviewers))
	copy(rows, reviewers)
	return &ReviewSession{
		PullRequest: pr,
		Reviewers:   rows,
	}
}

// LatestPending последняя ожидающая строка логина: позже created_at, при равенстве больший id
func (s *ReviewSession) LatestPending(login string) (Reviewer, bool) {
	return s.latest(func(r Reviewer) bool {
		return r.Login == login
	})
}

// LatestPendingForRule последняя ожидающая строка, привязанная к правилу
func (s *ReviewSession) LatestPendingForRule(ruleId int64) (Reviewer, bool) {
	return s.latest(func(r Reviewer) bool {
		return r.ReviewRuleId != nil && *r.ReviewRuleId == ruleId
	})
}

func (s *ReviewSession) latest(match func(Reviewer) bool) (Reviewer, bool) {
	idx := -1
	for i, r := range s.Reviewers {
		if !r.IsPending() || !match(r) {
			continue
		}
		if idx == -1 || newer(r, s.Reviewers[idx]) {
			idx = i
		}
	}
	if idx == -1 {
		return Reviewer{}, false
	}
	return s.Reviewers[idx], true
}

func newer(a, b Reviewer) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.Id > b.Id
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *ReviewSession) PendingCount() int {
	count := 0
	for _, r := range s.Reviewers {
		if r.IsPending() {
			count++
		}
	}
	return count
}

// PendingLogins логины с ожидающими строками в порядке создания строк
func (s *ReviewSession) PendingLogins() *LoginSet {
	set := NewLoginSet()
	for _, r := range s.Reviewers {
		if r.IsPending() {
			set.Add(r.Login)
		}
	}
	return set
}

func (s *ReviewSession) IsApproved() bool {
	return s.PullRequest.Status == PullRequestApproved
}

// Approve закрывает последнюю ожидающую строку логина.
// Возвращает false, если у логина нет ожидающих строк. approved=true, если PR только что стал одобренным.
func (s *ReviewSession) Approve(login string) (applied bool, approved bool) {
	reviewer, ok := s.LatestPending(login)
	if !ok {
		return false, false
	}

	i := s.indexOf(reviewer.Id)
	s.Reviewers[i].Status = ReviewerCompletedReview
	s.track(s.Reviewers[i])

	if s.PendingCount() == 0 && !s.IsApproved() {
		s.PullRequest.Status = PullRequestApproved
		status := PullRequestApproved
		s.change.Status = &status
		return true, true
	}
	return true, false
}

// Reassign меняет логин в ожидающей строке, статус строки не трогает
func (s *ReviewSession) Reassign(reviewerId int64, login string) error {
	i := s.indexOf(reviewerId)
	if i == -1 {
		return ErrReviewerNotFound
	}
	if !s.Reviewers[i].IsPending() {
		return ErrReviewerNotPending
	}
	if s.IsApproved() {
		return ErrSessionClosed
	}

	s.Reviewers[i].Login = login
	s.track(s.Reviewers[i])
	return nil
}

func (s *ReviewSession) Record(invocation CommandInvocation) {
	invocation.PullRequestId = s.PullRequest.Id
	s.change.Invocation = &invocation
}

// Change накопленные изменения, nil если ничего не менялось
func (s *ReviewSession) Change() *SessionChange {
	if s.change.IsEmpty() {
		return nil
	}
	change := s.change
	return &change
}

func (s *ReviewSession) indexOf(reviewerId int64) int {
	for i, r := range s.Reviewers {
		if r.Id == reviewerId {
			return i
		}
	}
	return -1
}

// track хранит только последнюю версию строки
func (s *ReviewSession) track(r Reviewer) {
	for i, u := range s.change.ReviewerUpdates {
		if u.Id == r.Id {
			s.change.ReviewerUpdates[i] = r
			return
		}
	}
	s.change.ReviewerUpdates = append(s.change.ReviewerUpdates, r)
}
