package main

import (
	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/report"
	"basegraph.app/pulse/internal/service/issue_tracker"
	"basegraph.app/pulse/internal/transport"
	"github.com/spf13/cobra"
)

func (a *app) jiraService() (issue_tracker.IssueTrackerService, error) {
	if err := a.cfg.Jira.Validate(); err != nil {
		return nil, err
	}
	client := issue_tracker.NewJiraClient(a.cfg.Jira, transport.WithTimeout(a.cfg.HTTPTimeout))
	return issue_tracker.NewJiraIssueTrackerService(client), nil
}

func newJiraCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:              "jira",
		Short:            "Jira issues, comments and parent-issue reports",
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: withService("jira"),
		RunE:             groupRunE("pulse jira <get|search|comments|add-comment|transitions|subtasks|status-summary|assignee-workload> [args...]"),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <issue-key>",
			Short: "Fetch one issue",
			Args:  usageArgs(1, 1, "jira get <issue-key>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.jiraService()
				if err != nil {
					return err
				}
				issue, err := svc.FetchIssue(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(issue)
			},
		},
		&cobra.Command{
			Use:   "search <jql> [max]",
			Short: "Search issues with JQL",
			Args:  usageArgs(1, 2, "jira search <jql> [max]"),
			RunE: func(cmd *cobra.Command, args []string) error {
				limit, err := optionalLimit(args, 1, issue_tracker.DefaultSearchLimit)
				if err != nil {
					return err
				}
				svc, err := a.jiraService()
				if err != nil {
					return err
				}
				list, err := svc.SearchIssues(cmd.Context(), issue_tracker.SearchParams{
					JQL:        args[0],
					MaxResults: limit,
				})
				if err != nil {
					return err
				}
				return a.print(list)
			},
		},
		&cobra.Command{
			Use:   "comments <issue-key>",
			Short: "List comments on an issue",
			Args:  usageArgs(1, 1, "jira comments <issue-key>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.jiraService()
				if err != nil {
					return err
				}
				comments, err := svc.FetchComments(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(model.CommentList{Comments: comments})
			},
		},
		&cobra.Command{
			Use:   "add-comment <issue-key> <text>",
			Short: "Add a plain-text comment",
			Args:  usageArgs(2, 2, "jira add-comment <issue-key> <text>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.jiraService()
				if err != nil {
					return err
				}
				receipt, err := svc.AddComment(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.print(receipt)
			},
		},
		&cobra.Command{
			Use:   "transitions <issue-key>",
			Short: "List available workflow transitions",
			Args:  usageArgs(1, 1, "jira transitions <issue-key>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.jiraService()
				if err != nil {
					return err
				}
				transitions, err := svc.FetchTransitions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(model.TransitionList{Transitions: transitions})
			},
		},
		&cobra.Command{
			Use:   "subtasks <parent-key> [max]",
			Short: "List the children of a parent issue",
			Args:  usageArgs(1, 2, "jira subtasks <parent-key> [max]"),
			RunE: func(cmd *cobra.Command, args []string) error {
				children, err := a.jiraChildren(cmd, args)
				if err != nil {
					return err
				}
				return a.print(model.ChildIssues{
					Parent: args[0],
					Total:  children.Total,
					Issues: children.Issues,
				})
			},
		},
		&cobra.Command{
			Use:   "status-summary <parent-key> [max]",
			Short: "Group a parent's children by status",
			Args:  usageArgs(1, 2, "jira status-summary <parent-key> [max]"),
			RunE: func(cmd *cobra.Command, args []string) error {
				children, err := a.jiraChildren(cmd, args)
				if err != nil {
					return err
				}
				return a.print(report.ParentSummary{
					Parent:        args[0],
					StatusSummary: a.engine.StatusSummary(children.Issues),
				})
			},
		},
		&cobra.Command{
			Use:   "assignee-workload <parent-key> [max]",
			Short: "Group a parent's children by assignee with risk levels",
			Args:  usageArgs(1, 2, "jira assignee-workload <parent-key> [max]"),
			RunE: func(cmd *cobra.Command, args []string) error {
				children, err := a.jiraChildren(cmd, args)
				if err != nil {
					return err
				}
				return a.print(report.ParentWorkload{
					Parent:         args[0],
					WorkloadReport: a.engine.AssigneeWorkload(children.Issues),
				})
			},
		},
	)
	return cmd
}

func (a *app) jiraChildren(cmd *cobra.Command, args []string) (*model.IssueList, error) {
	limit, err := optionalLimit(args, 1, issue_tracker.DefaultChildrenLimit)
	if err != nil {
		return nil, err
	}
	svc, err := a.jiraService()
	if err != nil {
		return nil, err
	}
	return svc.FetchChildren(cmd.Context(), args[0], limit)
}
