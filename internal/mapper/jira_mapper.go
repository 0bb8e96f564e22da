package mapper

import (
	"basegraph.app/pulse/internal/dto"
	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/richtext"
)

// JiraMapper turns Jira REST payloads into canonical records. It is pure:
// the same payload always maps to the same record, and missing optional
// fields map to the model defaults instead of failing.
type JiraMapper struct{}

func NewJiraMapper() *JiraMapper {
	return &JiraMapper{}
}

func (m *JiraMapper) Issue(raw dto.JiraIssue) model.Issue {
	f := raw.Fields

	components := make([]string, 0, len(f.Components))
	for _, c := range f.Components {
		components = append(components, c.Name)
	}

	labels := make([]string, 0, len(f.Labels))
	labels = append(labels, f.Labels...)

	return model.Issue{
		Key:         raw.Key,
		Summary:     f.Summary,
		Status:      nameOr(f.Status, ""),
		Priority:    nameOr(f.Priority, model.DefaultPriority),
		Assignee:    displayNameOr(f.Assignee, model.UnassignedAssignee),
		Reporter:    displayNameOr(f.Reporter, model.DefaultReporter),
		Description: richtext.ExtractJSON(f.Description),
		Created:     f.Created,
		Updated:     f.Updated,
		Labels:      labels,
		Components:  components,
	}
}

func (m *JiraMapper) Issues(raw []dto.JiraIssue) []model.Issue {
	issues := make([]model.Issue, 0, len(raw))
	for _, r := range raw {
		issues = append(issues, m.Issue(r))
	}
	return issues
}

func (m *JiraMapper) Comment(raw dto.JiraComment) model.Comment {
	return model.Comment{
		ID:      raw.ID,
		Author:  displayNameOr(raw.Author, ""),
		Body:    richtext.ExtractJSON(raw.Body),
		Created: raw.Created,
	}
}

func (m *JiraMapper) Comments(raw []dto.JiraComment) []model.Comment {
	comments := make([]model.Comment, 0, len(raw))
	for _, r := range raw {
		comments = append(comments, m.Comment(r))
	}
	return comments
}

func (m *JiraMapper) Transitions(raw []dto.JiraNamed) []model.Transition {
	transitions := make([]model.Transition, 0, len(raw))
	for _, t := range raw {
		transitions = append(transitions, model.Transition{ID: t.ID, Name: t.Name})
	}
	return transitions
}

func nameOr(n *dto.JiraNamed, fallback string) string {
	if n == nil || n.Name == "" {
		return fallback
	}
	return n.Name
}

func displayNameOr(u *dto.JiraUser, fallback string) string {
	if u == nil || u.DisplayName == "" {
		return fallback
	}
	return u.DisplayName
}
