package result

// Причины, по которым комментарий не дошел до машины состояний
const (
	SkipUntracked    = "untracked_pull_request"
	SkipIgnoredLabel = "ignored_label"
	SkipNoCommand    = "no_command"
	SkipRuleNotFound = "rule_not_found"
	SkipNoSlot       = "no_pending_slot"
)

// CommentResult итог обработки одного комментария
type CommentResult struct {
	Command     string
	Skipped     string
	Recorded    bool
	Applied     bool
	Approved    bool
	Replacement string
}
