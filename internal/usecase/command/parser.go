// Package command разбирает текст комментария к PR в одну команду бота.
package command

import (
	"regexp"
	"strings"
)

// Intent закрытое множество команд: Approval, Replace, ReplaceMe, None
type Intent interface {
	Kind() string
	isIntent()
}

type Approval struct {
	Raw string
}

type Replace struct {
	Raw      string
	RuleCode string
	Login    string
}

type ReplaceMe struct {
	Raw string
}

type None struct{}

func (Approval) Kind() string  { return "approval" }
func (Replace) Kind() string   { return "replace" }
func (ReplaceMe) Kind() string { return "replace_me" }
func (None) Kind() string      { return "none" }

func (Approval) isIntent()  {}
func (Replace) isIntent()   {}
func (ReplaceMe) isIntent() {}
func (None) isIntent()      {}

var (
	// lgtm или 👍 в начале комментария
	approvalPattern = regexp.MustCompile(`(?i)^\s*(lgtm\b|:\+1:|\x{1F44D})`)

	replacePattern = regexp.MustCompile(`(?i)\bcody\s+replace\s+([A-Za-z0-9_-]+)\s*=\s*@?([A-Za-z0-9][A-Za-z0-9-]*)`)

	replaceMePattern = regexp.MustCompile(`(?i)\bcody\s+replace\s+me\b`)
)

// Parse классифицирует комментарий. Если команд несколько, берется та, что начинается раньше.
func Parse(text string) Intent {
	if m := approvalPattern.FindStringSubmatchIndex(text); m != nil {
		return Approval{Raw: text[m[2]:m[3]]}
	}

	replaceLoc := replacePattern.FindStringSubmatchIndex(text)
	replaceMeLoc := replaceMePattern.FindStringIndex(text)

	switch {
	case replaceLoc == nil && replaceMeLoc == nil:
		return None{}
	// "cody replace me=login" это замена по правилу "me"
	case replaceMeLoc == nil || (replaceLoc != nil && replaceLoc[0] <= replaceMeLoc[0]):
		return Replace{
			Raw:      strings.TrimSpace(text[replaceLoc[0]:replaceLoc[1]]),
			RuleCode: text[replaceLoc[2]:replaceLoc[3]],
			Login:    text[replaceLoc[4]:replaceLoc[5]],
		}
	default:
		return ReplaceMe{Raw: strings.TrimSpace(text[replaceMeLoc[0]:replaceMeLoc[1]])}
	}
}
