package mapper

import (
	"fmt"
	"strings"
	"time"

	"basegraph.app/pulse/internal/model"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	GitLabStatusOpen   = "Open"
	GitLabStatusClosed = "Closed"

	priorityLabelPrefix  = "priority::"
	componentLabelPrefix = "component::"
)

// GitLabMapper maps GitLab issues onto the same canonical record as Jira so
// the report engine can aggregate them unchanged. GitLab has no priority or
// component fields; scoped labels stand in for both.
type GitLabMapper struct{}

func NewGitLabMapper() *GitLabMapper {
	return &GitLabMapper{}
}

func (m *GitLabMapper) Issue(gi *gitlab.Issue) model.Issue {
	if gi == nil {
		return model.Issue{
			Priority:   model.DefaultPriority,
			Assignee:   model.UnassignedAssignee,
			Reporter:   model.DefaultReporter,
			Labels:     []string{},
			Components: []string{},
		}
	}

	labels := make([]string, 0, len(gi.Labels))
	components := []string{}
	priority := model.DefaultPriority
	for _, l := range gi.Labels {
		labels = append(labels, l)
		switch {
		case strings.HasPrefix(l, priorityLabelPrefix) && priority == model.DefaultPriority:
			priority = strings.TrimPrefix(l, priorityLabelPrefix)
		case strings.HasPrefix(l, componentLabelPrefix):
			components = append(components, strings.TrimPrefix(l, componentLabelPrefix))
		}
	}

	assignee := model.UnassignedAssignee
	for _, a := range gi.Assignees {
		if a != nil && a.Name != "" {
			assignee = a.Name
			break
		}
	}

	reporter := model.DefaultReporter
	if gi.Author != nil && gi.Author.Name != "" {
		reporter = gi.Author.Name
	}

	return model.Issue{
		Key:         fmt.Sprintf("#%d", gi.IID),
		Summary:     gi.Title,
		Status:      gitLabStatus(gi.State),
		Priority:    priority,
		Assignee:    assignee,
		Reporter:    reporter,
		Description: gi.Description,
		Created:     formatTime(gi.CreatedAt),
		Updated:     formatTime(gi.UpdatedAt),
		Labels:      labels,
		Components:  components,
	}
}

func (m *GitLabMapper) Issues(raw []*gitlab.Issue) []model.Issue {
	issues := make([]model.Issue, 0, len(raw))
	for _, gi := range raw {
		if gi == nil {
			continue
		}
		issues = append(issues, m.Issue(gi))
	}
	return issues
}

func gitLabStatus(state string) string {
	switch state {
	case "opened":
		return GitLabStatusOpen
	case "closed":
		return GitLabStatusClosed
	default:
		return state
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
