// Package report aggregates canonical issues into status and workload
// reports. Every function here is pure over its input.
package report

import (
	"math"

	"basegraph.app/pulse/internal/model"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Incomplete-count thresholds for the risk ladder.
const (
	HighRiskThreshold   = 5
	MediumRiskThreshold = 3
)

// DefaultTerminalStatuses are the statuses that count as finished work.
// Matching is exact and case-sensitive.
var DefaultTerminalStatuses = []string{"해결됨", "닫힘", "완료", "Done", "Closed"}

type Engine struct {
	terminal map[string]struct{}
}

type Option func(*Engine)

// WithTerminalStatuses replaces the terminal status set.
func WithTerminalStatuses(statuses ...string) Option {
	return func(e *Engine) {
		e.terminal = make(map[string]struct{}, len(statuses))
		for _, s := range statuses {
			e.terminal[s] = struct{}{}
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	WithTerminalStatuses(DefaultTerminalStatuses...)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) IsTerminal(status string) bool {
	_, ok := e.terminal[status]
	return ok
}

// ClassifyRisk maps an incomplete issue count onto the risk ladder.
func ClassifyRisk(incomplete int) RiskLevel {
	switch {
	case incomplete >= HighRiskThreshold:
		return RiskHigh
	case incomplete >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

type StatusIssue struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Assignee string `json:"assignee"`
	Priority string `json:"priority"`
}

type StatusGroup struct {
	Status     string        `json:"-"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
	Issues     []StatusIssue `json:"issues"`
}

type StatusSummary struct {
	Total    int                   `json:"total"`
	ByStatus Ordered[*StatusGroup] `json:"by_status"`
}

// StatusSummary groups issues by status in first-seen order.
func (e *Engine) StatusSummary(issues []model.Issue) StatusSummary {
	groups := newOrdered[*StatusGroup]()
	for _, issue := range issues {
		group, ok := groups.Get(issue.Status)
		if !ok {
			group = &StatusGroup{Status: issue.Status, Issues: []StatusIssue{}}
			groups.Set(issue.Status, group)
		}
		group.Count++
		group.Issues = append(group.Issues, StatusIssue{
			Key:      issue.Key,
			Summary:  issue.Summary,
			Assignee: issue.Assignee,
			Priority: issue.Priority,
		})
	}

	total := len(issues)
	for _, group := range groups.Values() {
		group.Percentage = percentage(group.Count, total)
	}

	return StatusSummary{Total: total, ByStatus: groups}
}

type WorkItem struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type AssigneeWorkload struct {
	Assignee        string       `json:"-"`
	Total           int          `json:"total"`
	ByStatus        Ordered[int] `json:"by_status"`
	Issues          []WorkItem   `json:"issues"`
	IncompleteCount int          `json:"incomplete_count"`
	RiskLevel       RiskLevel    `json:"risk_level" jsonschema:"enum=Low,enum=Medium,enum=High"`
}

type WorkloadReport struct {
	TotalIssues int                        `json:"total_issues"`
	Assignees   Ordered[*AssigneeWorkload] `json:"assignees"`
}

// AssigneeWorkload groups issues by assignee, tallies statuses per assignee
// and classifies each assignee's risk from the non-terminal count.
func (e *Engine) AssigneeWorkload(issues []model.Issue) WorkloadReport {
	assignees := newOrdered[*AssigneeWorkload]()
	for _, issue := range issues {
		w, ok := assignees.Get(issue.Assignee)
		if !ok {
			w = &AssigneeWorkload{
				Assignee: issue.Assignee,
				ByStatus: newOrdered[int](),
				Issues:   []WorkItem{},
			}
			assignees.Set(issue.Assignee, w)
		}

		w.Total++
		count, _ := w.ByStatus.Get(issue.Status)
		w.ByStatus.Set(issue.Status, count+1)
		w.Issues = append(w.Issues, WorkItem{
			Key:      issue.Key,
			Summary:  issue.Summary,
			Status:   issue.Status,
			Priority: issue.Priority,
		})
	}

	for _, w := range assignees.Values() {
		w.IncompleteCount = e.incomplete(w.ByStatus)
		w.RiskLevel = ClassifyRisk(w.IncompleteCount)
	}

	return WorkloadReport{TotalIssues: len(issues), Assignees: assignees}
}

func (e *Engine) incomplete(byStatus Ordered[int]) int {
	n := 0
	for pair := byStatus.Oldest(); pair != nil; pair = pair.Next() {
		if !e.IsTerminal(pair.Key) {
			n += pair.Value
		}
	}
	return n
}

// percentage is count/total*100 rounded to one decimal, halves to even
// (1 of 16 is 6.2); 0 when total is 0.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(float64(count)/float64(total)*1000) / 10
}

// ParentSummary is a status summary scoped to a parent issue or milestone.
type ParentSummary struct {
	Parent string `json:"parent"`
	StatusSummary
}

// ParentWorkload is a workload report scoped to a parent issue or milestone.
type ParentWorkload struct {
	Parent string `json:"parent"`
	WorkloadReport
}
