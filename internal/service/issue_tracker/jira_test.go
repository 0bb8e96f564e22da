package issue_tracker_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"basegraph.app/pulse/core/config"
	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/service/issue_tracker"
	"basegraph.app/pulse/internal/transport"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func childIssue(key, status, assignee string) gin.H {
	fields := gin.H{
		"summary": "summary of " + key,
		"status":  gin.H{"name": status},
	}
	if assignee != "" {
		fields["assignee"] = gin.H{"displayName": assignee}
	}
	return gin.H{"key": key, "fields": fields}
}

var _ = Describe("JiraIssueTrackerService", func() {
	var (
		router     *gin.Engine
		server     *httptest.Server
		service    issue_tracker.IssueTrackerService
		ctx        context.Context
		lastSearch map[string]any
		lastBody   map[string]any
		lastFields string
	)

	BeforeEach(func() {
		ctx = context.Background()
		lastSearch = nil
		lastBody = nil
		lastFields = ""

		router = gin.New()
		api := router.Group("/rest/api/3")
		api.GET("/issue/:key", func(c *gin.Context) {
			if c.Param("key") == "PK-404" {
				c.String(http.StatusNotFound, `{"errorMessages":["Issue does not exist"]}`)
				return
			}
			lastFields = c.Query("fields")
			c.JSON(http.StatusOK, gin.H{
				"key": c.Param("key"),
				"fields": gin.H{
					"summary":  "Login broken",
					"status":   gin.H{"name": "열림"},
					"priority": gin.H{"name": "High"},
					"reporter": gin.H{"displayName": "Lee"},
					"description": gin.H{"type": "doc", "content": []gin.H{
						{"type": "paragraph", "content": []gin.H{{"type": "text", "text": "500 on submit"}}},
					}},
					"labels":     []string{"auth"},
					"components": []gin.H{{"name": "Web"}},
				},
			})
		})
		api.POST("/search/jql", func(c *gin.Context) {
			_ = c.ShouldBindJSON(&lastSearch)
			c.JSON(http.StatusOK, gin.H{
				"total": 3,
				"issues": []gin.H{
					childIssue("PK-2", "진행중", "Kim"),
					childIssue("PK-3", "진행중", ""),
					childIssue("PK-4", "완료", "Kim"),
				},
			})
		})
		api.GET("/issue/:key/comment", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"comments": []gin.H{
				{"id": "1", "author": gin.H{"displayName": "Park"}, "created": "2024-01-01T00:00:00.000+0000",
					"body": gin.H{"type": "doc", "content": []gin.H{
						{"type": "paragraph", "content": []gin.H{{"type": "text", "text": "checked"}}},
					}}},
			}})
		})
		api.POST("/issue/:key/comment", func(c *gin.Context) {
			_ = c.ShouldBindJSON(&lastBody)
			c.JSON(http.StatusCreated, gin.H{"id": "10050"})
		})
		api.GET("/issue/:key/transitions", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"transitions": []gin.H{
				{"id": "11", "name": "To Do"},
				{"id": "21", "name": "In Progress"},
			}})
		})

		server = httptest.NewServer(router)
		DeferCleanup(server.Close)

		client := issue_tracker.NewJiraClient(config.JiraConfig{
			BaseURL:  server.URL,
			Email:    "dev@example.com",
			APIToken: "token",
		})
		service = issue_tracker.NewJiraIssueTrackerService(client)
	})

	Describe("FetchIssue", func() {
		It("returns the canonical issue", func() {
			issue, err := service.FetchIssue(ctx, "PK-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(*issue).To(Equal(model.Issue{
				Key:         "PK-1",
				Summary:     "Login broken",
				Status:      "열림",
				Priority:    "High",
				Assignee:    model.UnassignedAssignee,
				Reporter:    "Lee",
				Description: "500 on submit",
				Labels:      []string{"auth"},
				Components:  []string{"Web"},
			}))
			Expect(lastFields).To(Equal("summary,status,assignee,description,priority,reporter,created,updated,labels,components"))
		})

		It("maps a 404 to a friendly transport error", func() {
			_, err := service.FetchIssue(ctx, "PK-404")

			var terr *transport.Error
			Expect(errors.As(err, &terr)).To(BeTrue())
			Expect(terr.StatusCode).To(Equal(http.StatusNotFound))
			Expect(err.Error()).To(ContainSubstring("HTTP 404: issue not found"))
		})
	})

	Describe("SearchIssues", func() {
		It("posts the jql with default fields and limit", func() {
			list, err := service.SearchIssues(ctx, issue_tracker.SearchParams{JQL: "assignee=currentUser()"})
			Expect(err).ToNot(HaveOccurred())

			Expect(lastSearch["jql"]).To(Equal("assignee=currentUser()"))
			Expect(lastSearch["maxResults"]).To(BeNumerically("==", 10))
			Expect(lastSearch["fields"]).To(ConsistOf("summary", "status", "priority", "assignee"))
			Expect(*list.Total).To(Equal(3))
			Expect(list.Issues).To(HaveLen(3))
			Expect(list.Issues[1].Assignee).To(Equal(model.UnassignedAssignee))
		})
	})

	Describe("FetchChildren", func() {
		It("searches by parent with the full field set", func() {
			list, err := service.FetchChildren(ctx, "PK-1", 0)
			Expect(err).ToNot(HaveOccurred())

			Expect(lastSearch["jql"]).To(Equal("parent=PK-1"))
			Expect(lastSearch["maxResults"]).To(BeNumerically("==", 100))
			Expect(lastSearch["fields"]).To(ContainElement("components"))
			Expect(list.Issues).To(HaveLen(3))
		})
	})

	Describe("FetchComments", func() {
		It("maps comment bodies to text", func() {
			comments, err := service.FetchComments(ctx, "PK-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(comments).To(Equal([]model.Comment{
				{ID: "1", Author: "Park", Body: "checked", Created: "2024-01-01T00:00:00.000+0000"},
			}))
		})
	})

	Describe("AddComment", func() {
		It("posts a document body and returns the new id", func() {
			receipt, err := service.AddComment(ctx, "PK-1", "deployed to staging")
			Expect(err).ToNot(HaveOccurred())
			Expect(receipt.CommentID).To(Equal("10050"))

			b, err := json.Marshal(lastBody)
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(MatchJSON(`{"body":{"type":"doc","version":1,"content":[
				{"type":"paragraph","content":[{"type":"text","text":"deployed to staging"}]}
			]}}`))
		})
	})

	Describe("FetchTransitions", func() {
		It("lists id and name", func() {
			transitions, err := service.FetchTransitions(ctx, "PK-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(transitions).To(Equal([]model.Transition{
				{ID: "11", Name: "To Do"},
				{ID: "21", Name: "In Progress"},
			}))
		})
	})
})
