package report_test

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func issuesWithStatuses(assignee string, statuses ...string) []model.Issue {
	issues := make([]model.Issue, 0, len(statuses))
	for i, s := range statuses {
		issues = append(issues, model.Issue{
			Key:      fmt.Sprintf("PK-%d", i+1),
			Summary:  "task " + s,
			Status:   s,
			Priority: model.DefaultPriority,
			Assignee: assignee,
		})
	}
	return issues
}

func randomIssues(r *rand.Rand, n int) []model.Issue {
	statuses := []string{"열림", "진행중", "완료", "Done", "Closed", "해결됨", "닫힘", "In Review"}
	assignees := []string{"Kim", "Lee", "Park", model.UnassignedAssignee}
	issues := make([]model.Issue, 0, n)
	for i := 0; i < n; i++ {
		issues = append(issues, model.Issue{
			Key:      fmt.Sprintf("PK-%d", i),
			Status:   statuses[r.Intn(len(statuses))],
			Assignee: assignees[r.Intn(len(assignees))],
		})
	}
	return issues
}

var _ = Describe("Engine", func() {
	var engine *report.Engine

	BeforeEach(func() {
		engine = report.NewEngine()
	})

	Describe("StatusSummary", func() {
		It("groups and computes percentages", func() {
			issues := issuesWithStatuses("Kim", "진행중", "진행중", "완료")

			summary := engine.StatusSummary(issues)

			Expect(summary.Total).To(Equal(3))
			Expect(summary.ByStatus.Keys()).To(Equal([]string{"진행중", "완료"}))

			inProgress, _ := summary.ByStatus.Get("진행중")
			Expect(inProgress.Count).To(Equal(2))
			Expect(inProgress.Percentage).To(Equal(66.7))
			Expect(inProgress.Issues).To(Equal([]report.StatusIssue{
				{Key: "PK-1", Summary: "task 진행중", Assignee: "Kim", Priority: model.DefaultPriority},
				{Key: "PK-2", Summary: "task 진행중", Assignee: "Kim", Priority: model.DefaultPriority},
			}))

			done, _ := summary.ByStatus.Get("완료")
			Expect(done.Count).To(Equal(1))
			Expect(done.Percentage).To(Equal(33.3))
		})

		It("keeps first-seen status order in JSON", func() {
			summary := engine.StatusSummary(issuesWithStatuses("Kim", "완료", "열림", "완료", "진행중"))

			b, err := json.Marshal(summary)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(MatchRegexp(`"by_status":\{"완료":.*"열림":.*"진행중":`))
			Expect(b).To(MatchJSON(`{
				"total": 4,
				"by_status": {
					"완료": {"count": 2, "percentage": 50, "issues": [
						{"key": "PK-1", "summary": "task 완료", "assignee": "Kim", "priority": "N/A"},
						{"key": "PK-3", "summary": "task 완료", "assignee": "Kim", "priority": "N/A"}
					]},
					"열림": {"count": 1, "percentage": 25, "issues": [
						{"key": "PK-2", "summary": "task 열림", "assignee": "Kim", "priority": "N/A"}
					]},
					"진행중": {"count": 1, "percentage": 25, "issues": [
						{"key": "PK-4", "summary": "task 진행중", "assignee": "Kim", "priority": "N/A"}
					]}
				}
			}`))
		})

		DescribeTable("rounds exact halves to even",
			func(first, rest int, firstPct, restPct float64) {
				statuses := make([]string, 0, first+rest)
				for i := 0; i < first; i++ {
					statuses = append(statuses, "A")
				}
				for i := 0; i < rest; i++ {
					statuses = append(statuses, "B")
				}

				summary := engine.StatusSummary(issuesWithStatuses("Kim", statuses...))

				a, _ := summary.ByStatus.Get("A")
				b, _ := summary.ByStatus.Get("B")
				Expect(a.Percentage).To(Equal(firstPct))
				Expect(b.Percentage).To(Equal(restPct))
				Expect(a.Percentage + b.Percentage).To(BeNumerically("~", 100.0, 1e-9))
			},
			Entry("1 of 16", 1, 15, 6.2, 93.8),
			Entry("3 of 16", 3, 13, 18.8, 81.2),
			Entry("5 of 16", 5, 11, 31.2, 68.8),
		)

		It("returns an empty report for no issues", func() {
			summary := engine.StatusSummary(nil)

			Expect(summary.Total).To(Equal(0))
			Expect(summary.ByStatus.Len()).To(Equal(0))
			b, err := json.Marshal(summary)
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(MatchJSON(`{"total": 0, "by_status": {}}`))
		})

		It("holds the count and percentage invariants for random inputs", func() {
			r := rand.New(rand.NewSource(7))
			for round := 0; round < 200; round++ {
				issues := randomIssues(r, 1+r.Intn(60))
				summary := engine.StatusSummary(issues)

				count := 0
				pct := 0.0
				for _, g := range summary.ByStatus.Values() {
					count += g.Count
					pct += g.Percentage
					Expect(g.Issues).To(HaveLen(g.Count))
				}
				Expect(summary.Total).To(Equal(len(issues)))
				Expect(count).To(Equal(summary.Total))
				// each group rounds by at most 0.05
				Expect(pct).To(BeNumerically("~", 100.0, math.Max(0.2, float64(summary.ByStatus.Len())*0.05+1e-9)))
			}
		})
	})

	Describe("AssigneeWorkload", func() {
		It("classifies a mostly open queue as medium risk", func() {
			workload := engine.AssigneeWorkload(issuesWithStatuses("Kim", "열림", "열림", "열림", "진행중", "완료"))

			Expect(workload.TotalIssues).To(Equal(5))
			kim, ok := workload.Assignees.Get("Kim")
			Expect(ok).To(BeTrue())
			Expect(kim.Total).To(Equal(5))
			Expect(kim.ByStatus.Keys()).To(Equal([]string{"열림", "진행중", "완료"}))
			open, _ := kim.ByStatus.Get("열림")
			Expect(open).To(Equal(3))
			Expect(kim.IncompleteCount).To(Equal(4))
			Expect(kim.RiskLevel).To(Equal(report.RiskMedium))
		})

		It("groups unassigned work under the sentinel", func() {
			issues := append(
				issuesWithStatuses(model.UnassignedAssignee, "열림"),
				issuesWithStatuses("Lee", "Done", "Closed")...,
			)
			workload := engine.AssigneeWorkload(issues)

			Expect(workload.Assignees.Keys()).To(Equal([]string{model.UnassignedAssignee, "Lee"}))
			lee, _ := workload.Assignees.Get("Lee")
			Expect(lee.IncompleteCount).To(Equal(0))
			Expect(lee.RiskLevel).To(Equal(report.RiskLow))
		})

		It("matches terminal statuses exactly", func() {
			workload := engine.AssigneeWorkload(issuesWithStatuses("Kim", "done", "CLOSED", "Done"))
			kim, _ := workload.Assignees.Get("Kim")
			Expect(kim.IncompleteCount).To(Equal(2))
		})

		It("honours a custom terminal set", func() {
			custom := report.NewEngine(report.WithTerminalStatuses("Shipped"))
			workload := custom.AssigneeWorkload(issuesWithStatuses("Kim", "Shipped", "Done"))
			kim, _ := workload.Assignees.Get("Kim")
			Expect(kim.IncompleteCount).To(Equal(1))
		})

		It("serialises in the report shape", func() {
			workload := engine.AssigneeWorkload(issuesWithStatuses("Kim", "열림", "완료"))

			b, err := json.Marshal(workload)
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(MatchJSON(`{
				"total_issues": 2,
				"assignees": {
					"Kim": {
						"total": 2,
						"by_status": {"열림": 1, "완료": 1},
						"issues": [
							{"key": "PK-1", "summary": "task 열림", "status": "열림", "priority": "N/A"},
							{"key": "PK-2", "summary": "task 완료", "status": "완료", "priority": "N/A"}
						],
						"incomplete_count": 1,
						"risk_level": "Low"
					}
				}
			}`))
		})

		It("holds the tally invariants for random inputs", func() {
			r := rand.New(rand.NewSource(11))
			for round := 0; round < 200; round++ {
				issues := randomIssues(r, r.Intn(60))
				workload := engine.AssigneeWorkload(issues)

				total := 0
				for _, w := range workload.Assignees.Values() {
					sum, terminal := 0, 0
					for pair := w.ByStatus.Oldest(); pair != nil; pair = pair.Next() {
						sum += pair.Value
						if engine.IsTerminal(pair.Key) {
							terminal += pair.Value
						}
					}
					Expect(w.Total).To(Equal(sum))
					Expect(w.IncompleteCount).To(Equal(w.Total - terminal))
					Expect(w.IncompleteCount).To(BeNumerically("<=", w.Total))
					Expect(w.RiskLevel).To(Equal(report.ClassifyRisk(w.IncompleteCount)))
					total += w.Total
				}
				Expect(total).To(Equal(workload.TotalIssues))
			}
		})
	})

	Describe("ClassifyRisk", func() {
		DescribeTable("applies the threshold ladder",
			func(incomplete int, expected report.RiskLevel) {
				Expect(report.ClassifyRisk(incomplete)).To(Equal(expected))
			},
			Entry("none", 0, report.RiskLow),
			Entry("two", 2, report.RiskLow),
			Entry("three", 3, report.RiskMedium),
			Entry("four", 4, report.RiskMedium),
			Entry("five", 5, report.RiskHigh),
			Entry("many", 40, report.RiskHigh),
		)
	})
})
