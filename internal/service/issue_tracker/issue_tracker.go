package issue_tracker

import (
	"context"

	"basegraph.app/pulse/internal/model"
)

const (
	DefaultSearchLimit   = 10
	DefaultChildrenLimit = 100
)

// DefaultSearchFields are requested by plain searches; child listings and
// single-issue fetches ask for the full canonical field set.
var DefaultSearchFields = []string{"summary", "status", "priority", "assignee"}

var IssueFields = []string{
	"summary", "status", "assignee", "description", "priority",
	"reporter", "created", "updated", "labels", "components",
}

type SearchParams struct {
	JQL        string
	MaxResults int
	Fields     []string // DefaultSearchFields when empty
}

type IssueTrackerService interface {
	FetchIssue(ctx context.Context, key string) (*model.Issue, error)
	SearchIssues(ctx context.Context, params SearchParams) (*model.IssueList, error)
	FetchChildren(ctx context.Context, parentKey string, maxResults int) (*model.IssueList, error)
	FetchComments(ctx context.Context, key string) ([]model.Comment, error)
	AddComment(ctx context.Context, key, text string) (*model.CommentReceipt, error)
	FetchTransitions(ctx context.Context, key string) ([]model.Transition, error)
}

type FetchMilestoneIssuesParams struct {
	Project    string // numeric id or "group/project" path
	Milestone  string
	MaxResults int
}

// MilestoneTrackerService lists issues grouped under a milestone, the GitLab
// counterpart of a Jira parent issue.
type MilestoneTrackerService interface {
	FetchIssue(ctx context.Context, project string, iid int64) (*model.Issue, error)
	FetchMilestoneIssues(ctx context.Context, params FetchMilestoneIssuesParams) ([]model.Issue, error)
}
