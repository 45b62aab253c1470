package service

import (
	"testing"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAssignmentPolicy_ExtractReviewers(t *testing.T) {
	policy := NewAssignmentPolicy()
	body := "Fixes the thing.\n\n" +
		"- [ ] @aergonaut\n" +
		"- [x] @BrentW\n" +
		"- [ ] @mrpasquini (foo)\n" +
		"- [ ] @aergonaut\n" +
		"- not a reviewer @octocat\n"

	reviewers := policy.ExtractReviewers(body)

	assert.Equal(t, []domain.NewReviewer{
		{Login: "aergonaut"},
		{Login: "BrentW"},
		{Login: "mrpasquini", RuleCode: "foo"},
	}, reviewers)
}

func TestAssignmentPolicy_ExtractReviewers_Empty(t *testing.T) {
	policy := NewAssignmentPolicy()

	assert.Empty(t, policy.ExtractReviewers(""))
	assert.Empty(t, policy.ExtractReviewers("no checklist here"))
}

func TestAssignmentPolicy_Candidates_RuleFirst(t *testing.T) {
	policy := NewAssignmentPolicy()

	candidates := policy.Candidates(domain.NewLoginSet("mrpasquini"), []string{"maverick", "mrpasquini"})

	assert.Equal(t, []string{"mrpasquini", "maverick"}, candidates)
}

func TestAssignmentPolicy_PickReplacement(t *testing.T) {
	policy := NewAssignmentPolicy()

	login, ok := policy.PickReplacement("aergonaut",
		[]string{"aergonaut", "iceman", "BrentW", "goose", "maverick"},
		[]string{"iceman", "goose"},
		domain.NewLoginSet("aergonaut", "BrentW"),
	)

	assert.True(t, ok)
	assert.Equal(t, "maverick", login)
}

func TestAssignmentPolicy_PickReplacement_NoCandidate(t *testing.T) {
	policy := NewAssignmentPolicy()

	_, ok := policy.PickReplacement("aergonaut",
		[]string{"aergonaut", "iceman", "goose"},
		[]string{"iceman", "goose"},
		domain.NewLoginSet("aergonaut"),
	)

	assert.False(t, ok)
}

func TestAssignmentPolicy_RewriteMention(t *testing.T) {
	policy := NewAssignmentPolicy()
	body := "- [x] @aergonaut\n- [ ] @aergonaut-bot\n- [ ] @aergonaut (foo)\n"

	got := policy.RewriteMention(body, "aergonaut", "BrentW")

	assert.Equal(t, "- [x] @aergonaut\n- [ ] @aergonaut-bot\n- [ ] @BrentW (foo)\n", got)
}

func TestAssignmentPolicy_RewriteMention_AtEndOfBody(t *testing.T) {
	policy := NewAssignmentPolicy()

	assert.Equal(t, "- [ ] @BrentW", policy.RewriteMention("- [ ] @aergonaut", "aergonaut", "BrentW"))
}

func TestAssignmentPolicy_RewriteMention_Appends(t *testing.T) {
	policy := NewAssignmentPolicy()

	assert.Equal(t, "Fixes it\n- [ ] @BrentW", policy.RewriteMention("Fixes it\n", "aergonaut", "BrentW"))
	assert.Equal(t, "- [ ] @BrentW", policy.RewriteMention("", "aergonaut", "BrentW"))
}
