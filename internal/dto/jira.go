package dto

import "encoding/json"

// Jira REST v3 payloads. Nested objects that Jira omits or sends as null are
// pointers so the mapper can apply defaults.

type JiraIssue struct {
	ID     string          `json:"id"`
	Key    string          `json:"key"`
	Fields JiraIssueFields `json:"fields"`
}

type JiraIssueFields struct {
	Summary     string          `json:"summary"`
	Status      *JiraNamed      `json:"status"`
	Priority    *JiraNamed      `json:"priority"`
	Assignee    *JiraUser       `json:"assignee"`
	Reporter    *JiraUser       `json:"reporter"`
	Description json.RawMessage `json:"description"`
	Created     string          `json:"created"`
	Updated     string          `json:"updated"`
	Labels      []string        `json:"labels"`
	Components  []JiraNamed     `json:"components"`
}

type JiraNamed struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type JiraUser struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

type JiraSearchRequest struct {
	JQL        string   `json:"jql"`
	Fields     []string `json:"fields"`
	MaxResults int      `json:"maxResults"`
}

type JiraSearchResponse struct {
	Total  *int        `json:"total"`
	Issues []JiraIssue `json:"issues"`
}

type JiraComment struct {
	ID      string          `json:"id"`
	Author  *JiraUser       `json:"author"`
	Body    json.RawMessage `json:"body"`
	Created string          `json:"created"`
}

type JiraCommentsResponse struct {
	Comments []JiraComment `json:"comments"`
}

type JiraCommentRequest struct {
	Body any `json:"body"`
}

type JiraTransitionsResponse struct {
	Transitions []JiraNamed `json:"transitions"`
}
