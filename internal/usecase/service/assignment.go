package service

import (
	"regexp"
	"strings"

	"github.com/niklvrr/codybot/internal/domain"
)

// "- [ ] @login" и необязательный код правила "- [ ] @login (foo)"
var checklistPattern = regexp.MustCompile(`-[ \t]+\[.\][ \t]+@([A-Za-z0-9][A-Za-z0-9-]*)(?:[ \t]+\(([A-Za-z0-9_-]+)\))?`)

// AssignmentPolicy решает, кто становится ревьюером
type AssignmentPolicy struct{}

func NewAssignmentPolicy() *AssignmentPolicy {
	return &AssignmentPolicy{}
}

// ExtractReviewers слоты из чеклиста в описании PR, в порядке появления, без повторов
func (p *AssignmentPolicy) ExtractReviewers(body string) []domain.NewReviewer {
	var reviewers []domain.NewReviewer
	seen := make(map[domain.NewReviewer]struct{})

	for _, m := range checklistPattern.FindAllStringSubmatch(body, -1) {
		reviewer := domain.NewReviewer{Login: m[1], RuleCode: m[2]}
		if _, ok := seen[reviewer]; ok {
			continue
		}
		seen[reviewer] = struct{}{}
		reviewers = append(reviewers, reviewer)
	}
	return reviewers
}

// Candidates сначала логины правила, потом авторы коммитов
func (p *AssignmentPolicy) Candidates(acceptable *domain.LoginSet, commitAuthors []string) []string {
	set := domain.NewLoginSet(acceptable.Logins()...)
	set.Add(commitAuthors...)
	return set.Logins()
}

// PickReplacement первый кандидат, который не автор запроса, не на паузе и еще не ждет ревью на этом PR
func (p *AssignmentPolicy) PickReplacement(requester string, candidates []string, paused []string, pending *domain.LoginSet) (string, bool) {
	excluded := domain.NewLoginSet(requester)
	excluded.Add(paused...)

	for _, candidate := range candidates {
		if excluded.Contains(candidate) || pending.Contains(candidate) {
			continue
		}
		return candidate, true
	}
	return "", false
}

// RewriteMention меняет первый неотмеченный пункт "- [ ] @old" на new.
// Если такого пункта нет, новый ревьюер дописывается в конец.
func (p *AssignmentPolicy) RewriteMention(body, oldLogin, newLogin string) string {
	pattern := regexp.MustCompile(`(-[ \t]+\[ \][ \t]+@)` + regexp.QuoteMeta(oldLogin) + `([^A-Za-z0-9-]|$)`)

	if m := pattern.FindStringSubmatchIndex(body); m != nil {
		start := m[3]
		return body[:start] + newLogin + body[start+len(oldLogin):]
	}

	line := "- [ ] @" + newLogin
	if strings.TrimSpace(body) == "" {
		return line
	}
	return strings.TrimRight(body, "\n") + "\n" + line
}
