package domain

import (
	"strings"
	"time"
)

// ActionType tags a category of platform interaction. The set is open: policy
// tables are keyed by the tag and a tag missing from them gets no quota.
type ActionType string

const (
	ActionLike      ActionType = "like"
	ActionComment   ActionType = "comment"
	ActionFollow    ActionType = "follow"
	ActionUnfollow  ActionType = "unfollow"
	ActionStoryView ActionType = "story_view"
	ActionReply     ActionType = "reply"
	ActionDM        ActionType = "dm"
)

func ParseActionType(raw string) ActionType {
	return ActionType(strings.ToLower(strings.TrimSpace(raw)))
}

func (a ActionType) Label() string {
	switch a {
	case ActionLike:
		return "likes"
	case ActionComment:
		return "comments"
	case ActionFollow:
		return "follows"
	case ActionUnfollow:
		return "unfollows"
	case ActionStoryView:
		return "story views"
	case ActionReply:
		return "replies"
	case ActionDM:
		return "direct messages"
	default:
		return string(a)
	}
}

// ActionRecord is one performed action. Records are immutable once written.
type ActionRecord struct {
	Type   ActionType
	Target string
	At     time.Time
}

func normalizeTimestamp(at time.Time) time.Time {
	return at.UTC().Truncate(time.Second)
}
