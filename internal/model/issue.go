package model

// Defaults for optional issue fields. Every normalizer uses these instead of
// leaving fields empty, so reports group unassigned work under one key.
const (
	DefaultPriority    = "N/A"
	DefaultReporter    = "N/A"
	UnassignedAssignee = "미지정"
)

// Issue is the canonical, tracker-agnostic shape of one ticket.
// Created and Updated keep the tracker's own timestamp text.
type Issue struct {
	Key         string   `json:"key"`
	Summary     string   `json:"summary"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Assignee    string   `json:"assignee"`
	Reporter    string   `json:"reporter"`
	Description string   `json:"description"`
	Created     string   `json:"created"`
	Updated     string   `json:"updated"`
	Labels      []string `json:"labels"`
	Components  []string `json:"components"`
}

type Comment struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Body    string `json:"body"`
	Created string `json:"created"`
}

type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IssueList is a search result. Total is what the tracker reported and may
// be absent on cursor-paginated endpoints.
type IssueList struct {
	Total  *int    `json:"total"`
	Issues []Issue `json:"issues"`
}

type CommentReceipt struct {
	CommentID string `json:"comment_id"`
	Message   string `json:"message"`
}

// ChildIssues lists the children of one parent issue.
type ChildIssues struct {
	Parent string  `json:"parent"`
	Total  *int    `json:"total"`
	Issues []Issue `json:"issues"`
}

type CommentList struct {
	Comments []Comment `json:"comments"`
}

type TransitionList struct {
	Transitions []Transition `json:"transitions"`
}
