package issue_tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"basegraph.app/pulse/core/config"
	"basegraph.app/pulse/internal/dto"
	"basegraph.app/pulse/internal/mapper"
	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/richtext"
	"basegraph.app/pulse/internal/transport"
)

const jiraAPIPath = "/rest/api/3"

var jiraErrorMessages = map[int]string{
	http.StatusBadRequest:   "bad request - check JQL syntax or JSON body",
	http.StatusUnauthorized: "authentication failed - check JIRA_EMAIL and JIRA_API_TOKEN",
	http.StatusForbidden:    "permission denied - check project access",
	http.StatusNotFound:     "issue not found - check the issue key",
}

type jiraIssueTrackerService struct {
	client *transport.Client
	mapper *mapper.JiraMapper
}

func NewJiraIssueTrackerService(client *transport.Client) IssueTrackerService {
	return &jiraIssueTrackerService{
		client: client,
		mapper: mapper.NewJiraMapper(),
	}
}

// NewJiraClient builds the REST v3 transport for cfg. cfg must be valid.
func NewJiraClient(cfg config.JiraConfig, opts ...transport.Option) *transport.Client {
	opts = append([]transport.Option{
		transport.WithBasicAuth(cfg.Email, cfg.APIToken),
		transport.WithDescriber(describeJiraError),
	}, opts...)
	return transport.New("jira", cfg.BaseURL+jiraAPIPath, opts...)
}

func describeJiraError(statusCode int, body []byte) string {
	if msg, ok := jiraErrorMessages[statusCode]; ok {
		return msg
	}
	return transport.DescribeBody(statusCode, body)
}

func (s *jiraIssueTrackerService) FetchIssue(ctx context.Context, key string) (*model.Issue, error) {
	var raw dto.JiraIssue
	err := s.client.Do(ctx, transport.Request{
		Path:  "issue/" + url.PathEscape(key),
		Query: url.Values{"fields": {strings.Join(IssueFields, ",")}},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("fetching issue %s: %w", key, err)
	}

	issue := s.mapper.Issue(raw)
	return &issue, nil
}

func (s *jiraIssueTrackerService) SearchIssues(ctx context.Context, params SearchParams) (*model.IssueList, error) {
	fields := params.Fields
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultSearchLimit
	}

	var raw dto.JiraSearchResponse
	err := s.client.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "search/jql",
		Body: dto.JiraSearchRequest{
			JQL:        params.JQL,
			Fields:     fields,
			MaxResults: maxResults,
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("searching issues: %w", err)
	}

	return &model.IssueList{
		Total:  raw.Total,
		Issues: s.mapper.Issues(raw.Issues),
	}, nil
}

func (s *jiraIssueTrackerService) FetchChildren(ctx context.Context, parentKey string, maxResults int) (*model.IssueList, error) {
	if maxResults <= 0 {
		maxResults = DefaultChildrenLimit
	}
	return s.SearchIssues(ctx, SearchParams{
		JQL:        "parent=" + parentKey,
		MaxResults: maxResults,
		Fields:     IssueFields,
	})
}

func (s *jiraIssueTrackerService) FetchComments(ctx context.Context, key string) ([]model.Comment, error) {
	var raw dto.JiraCommentsResponse
	err := s.client.Do(ctx, transport.Request{
		Path: "issue/" + url.PathEscape(key) + "/comment",
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", key, err)
	}
	return s.mapper.Comments(raw.Comments), nil
}

func (s *jiraIssueTrackerService) AddComment(ctx context.Context, key, text string) (*model.CommentReceipt, error) {
	var created dto.JiraComment
	err := s.client.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "issue/" + url.PathEscape(key) + "/comment",
		Body:   dto.JiraCommentRequest{Body: richtext.Document(text)},
	}, &created)
	if err != nil {
		return nil, fmt.Errorf("adding comment to %s: %w", key, err)
	}
	return &model.CommentReceipt{CommentID: created.ID, Message: "comment added"}, nil
}

func (s *jiraIssueTrackerService) FetchTransitions(ctx context.Context, key string) ([]model.Transition, error) {
	var raw dto.JiraTransitionsResponse
	err := s.client.Do(ctx, transport.Request{
		Path: "issue/" + url.PathEscape(key) + "/transitions",
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("fetching transitions for %s: %w", key, err)
	}
	return s.mapper.Transitions(raw.Transitions), nil
}
