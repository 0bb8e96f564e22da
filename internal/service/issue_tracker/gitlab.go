package issue_tracker

import (
	"context"
	"fmt"
	"strings"

	"basegraph.app/pulse/core/config"
	"basegraph.app/pulse/internal/mapper"
	"basegraph.app/pulse/internal/model"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// GitLab caps per_page at 100.
const gitLabMaxPerPage = 100

type gitLabIssueTrackerService struct {
	client *gitlab.Client
	mapper *mapper.GitLabMapper
}

func NewGitLabIssueTrackerService(client *gitlab.Client) MilestoneTrackerService {
	return &gitLabIssueTrackerService{
		client: client,
		mapper: mapper.NewGitLabMapper(),
	}
}

// NewGitLabClient targets gitlab.com unless cfg.BaseURL points at a
// self-hosted instance. Client-side retries are disabled; failures surface
// on the first error.
func NewGitLabClient(cfg config.GitLabConfig, extra ...gitlab.ClientOptionFunc) (*gitlab.Client, error) {
	opts := []gitlab.ClientOptionFunc{gitlab.WithoutRetries()}
	if cfg.BaseURL != "" {
		apiURL := strings.TrimSuffix(cfg.BaseURL, "/") + "/api/v4"
		opts = append(opts, gitlab.WithBaseURL(apiURL))
	}
	opts = append(opts, extra...)
	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	return client, nil
}

func (s *gitLabIssueTrackerService) FetchIssue(ctx context.Context, project string, iid int64) (*model.Issue, error) {
	gitlabIssue, _, err := s.client.Issues.GetIssue(
		project,
		iid,
		gitlab.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching issue from gitlab: %w", err)
	}

	issue := s.mapper.Issue(gitlabIssue)
	return &issue, nil
}

func (s *gitLabIssueTrackerService) FetchMilestoneIssues(ctx context.Context, params FetchMilestoneIssuesParams) ([]model.Issue, error) {
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultChildrenLimit
	}

	gitlabIssues, _, err := s.client.Issues.ListProjectIssues(
		params.Project,
		&gitlab.ListProjectIssuesOptions{
			ListOptions: gitlab.ListOptions{PerPage: int64(min(maxResults, gitLabMaxPerPage))},
			Milestone:   gitlab.Ptr(params.Milestone),
		},
		gitlab.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("listing milestone issues from gitlab: %w", err)
	}

	if len(gitlabIssues) > maxResults {
		gitlabIssues = gitlabIssues[:maxResults]
	}
	return s.mapper.Issues(gitlabIssues), nil
}
