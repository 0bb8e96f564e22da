package richtext_test

import (
	"encoding/json"

	"basegraph.app/pulse/internal/richtext"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func text(s string) richtext.Node {
	return richtext.Node{Type: richtext.TypeText, Text: s}
}

func paragraph(children ...richtext.Node) richtext.Node {
	return richtext.Node{Type: richtext.TypeParagraph, Content: children}
}

func doc(children ...richtext.Node) *richtext.Node {
	return &richtext.Node{Type: richtext.TypeDoc, Version: 1, Content: children}
}

var _ = Describe("Extract", func() {
	It("returns empty for nil", func() {
		Expect(richtext.Extract(nil)).To(Equal(""))
	})

	It("returns empty for a document without content", func() {
		Expect(richtext.Extract(doc())).To(Equal(""))
	})

	It("joins paragraphs with newlines and concatenates inline text", func() {
		root := doc(
			paragraph(text("Hello "), text("world")),
			paragraph(text("second line")),
		)
		Expect(richtext.Extract(root)).To(Equal("Hello world\nsecond line"))
	})

	It("drops unknown node kinds without failing", func() {
		root := doc(
			richtext.Node{Type: "rule"},
			paragraph(text("a"), richtext.Node{Type: "hardBreak"}, text("b")),
			richtext.Node{Type: "mediaSingle", Content: []richtext.Node{{Type: "media"}}},
		)
		Expect(richtext.Extract(root)).To(Equal("ab"))
	})

	It("finds paragraphs nested in containers", func() {
		root := doc(
			paragraph(text("intro")),
			richtext.Node{Type: "bulletList", Content: []richtext.Node{
				{Type: "listItem", Content: []richtext.Node{paragraph(text("first"))}},
				{Type: "listItem", Content: []richtext.Node{paragraph(text("second"))}},
			}},
			richtext.Node{Type: "panel", Content: []richtext.Node{
				paragraph(text("note")),
			}},
		)
		Expect(richtext.Extract(root)).To(Equal("intro\nfirst\nsecond\nnote"))
	})

	It("ignores text outside paragraphs", func() {
		root := doc(
			richtext.Node{Type: "heading", Content: []richtext.Node{text("Title")}},
			paragraph(text("body")),
		)
		Expect(richtext.Extract(root)).To(Equal("body"))
	})

	It("skips paragraphs that hold no text", func() {
		root := doc(paragraph(text("a")), paragraph(), paragraph(text("b")))
		Expect(richtext.Extract(root)).To(Equal("a\nb"))
	})

	It("accepts a paragraph as the root", func() {
		p := paragraph(text("only"))
		Expect(richtext.Extract(&p)).To(Equal("only"))
	})
})

var _ = Describe("ExtractJSON", func() {
	DescribeTable("handles every field encoding",
		func(raw string, expected string) {
			Expect(richtext.ExtractJSON(json.RawMessage(raw))).To(Equal(expected))
		},
		Entry("absent", "", ""),
		Entry("null", "null", ""),
		Entry("plain string", `"plain body"`, "plain body"),
		Entry("document", `{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"hi"}]}]}`, "hi"),
		Entry("document with marks", `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"bold","marks":[{"type":"strong"}]}]}]}`, "bold"),
		Entry("unexpected number", `42`, ""),
		Entry("broken object", `{"type":`, ""),
	)
})

var _ = Describe("Document", func() {
	It("builds one paragraph per line", func() {
		d := richtext.Document("first\nsecond")
		Expect(d.Type).To(Equal(richtext.TypeDoc))
		Expect(d.Version).To(Equal(1))
		Expect(d.Content).To(HaveLen(2))
		Expect(richtext.Extract(&d)).To(Equal("first\nsecond"))
	})

	It("serialises to the comment body shape", func() {
		d := richtext.Document("done")
		b, err := json.Marshal(d)
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(MatchJSON(`{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"done"}]}]}`))
	})
})
