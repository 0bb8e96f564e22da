package mapper_test

import (
	"time"

	"basegraph.app/pulse/internal/mapper"
	"basegraph.app/pulse/internal/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

var _ = Describe("GitLabMapper", func() {
	var m *mapper.GitLabMapper

	BeforeEach(func() {
		m = mapper.NewGitLabMapper()
	})

	It("maps an issue with scoped labels", func() {
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		gi := &gitlab.Issue{
			IID:         42,
			Title:       "Refund webhook retries",
			State:       "opened",
			Description: "Retries stop after 3 attempts",
			Labels:      []string{"backend", "priority::high", "component::billing"},
			Assignees:   []*gitlab.IssueAssignee{{Name: "Alice", Username: "alice"}},
			Author:      &gitlab.IssueAuthor{Name: "Bob", Username: "bob"},
			CreatedAt:   &created,
		}

		Expect(m.Issue(gi)).To(Equal(model.Issue{
			Key:         "#42",
			Summary:     "Refund webhook retries",
			Status:      mapper.GitLabStatusOpen,
			Priority:    "high",
			Assignee:    "Alice",
			Reporter:    "Bob",
			Description: "Retries stop after 3 attempts",
			Created:     "2024-03-01T12:00:00Z",
			Updated:     "",
			Labels:      []string{"backend", "priority::high", "component::billing"},
			Components:  []string{"billing"},
		}))
	})

	It("applies defaults for unassigned issues", func() {
		issue := m.Issue(&gitlab.Issue{IID: 1, State: "closed"})

		Expect(issue.Status).To(Equal(mapper.GitLabStatusClosed))
		Expect(issue.Priority).To(Equal(model.DefaultPriority))
		Expect(issue.Assignee).To(Equal(model.UnassignedAssignee))
		Expect(issue.Reporter).To(Equal(model.DefaultReporter))
	})

	It("skips nil entries in a list", func() {
		issues := m.Issues([]*gitlab.Issue{{IID: 1, State: "opened"}, nil, {IID: 2, State: "closed"}})
		Expect(issues).To(HaveLen(2))
		Expect(issues[1].Key).To(Equal("#2"))
	})
})
