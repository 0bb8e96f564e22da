package main

import (
	"fmt"
	"net/http"
	"strconv"

	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/report"
	"basegraph.app/pulse/internal/service/issue_tracker"
	"github.com/spf13/cobra"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

func (a *app) gitLabService() (issue_tracker.MilestoneTrackerService, error) {
	if err := a.cfg.GitLab.Validate(); err != nil {
		return nil, err
	}
	client, err := issue_tracker.NewGitLabClient(a.cfg.GitLab,
		gitlab.WithHTTPClient(&http.Client{Timeout: a.cfg.HTTPTimeout}))
	if err != nil {
		return nil, err
	}
	return issue_tracker.NewGitLabIssueTrackerService(client), nil
}

func newGitLabCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:              "gitlab",
		Short:            "GitLab issues and milestone reports",
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: withService("gitlab"),
		RunE:             groupRunE("pulse gitlab <get|status-summary|assignee-workload> [args...]"),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <project> <iid>",
			Short: "Fetch one issue",
			Args:  usageArgs(2, 2, "gitlab get <project> <iid>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				iid, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil || iid <= 0 {
					return fmt.Errorf("invalid issue iid %q", args[1])
				}
				svc, err := a.gitLabService()
				if err != nil {
					return err
				}
				issue, err := svc.FetchIssue(cmd.Context(), args[0], iid)
				if err != nil {
					return err
				}
				return a.print(issue)
			},
		},
		&cobra.Command{
			Use:   "status-summary <project> <milestone> [max]",
			Short: "Group a milestone's issues by status",
			Args:  usageArgs(2, 3, "gitlab status-summary <project> <milestone> [max]"),
			RunE: func(cmd *cobra.Command, args []string) error {
				issues, err := a.milestoneIssues(cmd, args)
				if err != nil {
					return err
				}
				return a.print(report.ParentSummary{
					Parent:        args[1],
					StatusSummary: a.engine.StatusSummary(issues),
				})
			},
		},
		&cobra.Command{
			Use:   "assignee-workload <project> <milestone> [max]",
			Short: "Group a milestone's issues by assignee with risk levels",
			Args:  usageArgs(2, 3, "gitlab assignee-workload <project> <milestone> [max]"),
			RunE: func(cmd *cobra.Command, args []string) error {
				issues, err := a.milestoneIssues(cmd, args)
				if err != nil {
					return err
				}
				return a.print(report.ParentWorkload{
					Parent:         args[1],
					WorkloadReport: a.engine.AssigneeWorkload(issues),
				})
			},
		},
	)
	return cmd
}

func (a *app) milestoneIssues(cmd *cobra.Command, args []string) ([]model.Issue, error) {
	limit, err := optionalLimit(args, 2, issue_tracker.DefaultChildrenLimit)
	if err != nil {
		return nil, err
	}
	svc, err := a.gitLabService()
	if err != nil {
		return nil, err
	}
	return svc.FetchMilestoneIssues(cmd.Context(), issue_tracker.FetchMilestoneIssuesParams{
		Project:    args[0],
		Milestone:  args[1],
		MaxResults: limit,
	})
}
