// Package richtext flattens Atlassian Document Format trees into plain text
// and builds minimal documents from plain text.
package richtext

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	TypeDoc       = "doc"
	TypeParagraph = "paragraph"
	TypeText      = "text"
)

// Node is one element of a rich-text tree. Marks and attrs are not modelled;
// they never carry text.
type Node struct {
	Type    string `json:"type"`
	Version int    `json:"version,omitempty"`
	Content []Node `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Extract returns the plain text of root. Text nodes inside a paragraph are
// concatenated and paragraphs are joined with a newline in document order.
// Other node kinds contribute only through the paragraphs and text they
// contain. A nil root yields "".
func Extract(root *Node) string {
	if root == nil {
		return ""
	}
	var lines []string
	collectParagraphs(*root, &lines)
	return strings.Join(lines, "\n")
}

func collectParagraphs(n Node, lines *[]string) {
	if n.Type == TypeParagraph {
		var sb strings.Builder
		if appendText(n, &sb) {
			*lines = append(*lines, sb.String())
		}
		return
	}
	for _, child := range n.Content {
		collectParagraphs(child, lines)
	}
}

// appendText reports whether any text node was found below n.
func appendText(n Node, sb *strings.Builder) bool {
	found := false
	for _, child := range n.Content {
		if child.Type == TypeText {
			sb.WriteString(child.Text)
			found = true
			continue
		}
		if appendText(child, sb) {
			found = true
		}
	}
	return found
}

// ExtractJSON extracts text from a raw field that is either a document object
// (REST v3), a plain string (REST v2 and Server) or absent.
func ExtractJSON(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{':
		var doc Node
		if err := json.Unmarshal(raw, &doc); err != nil {
			return ""
		}
		return Extract(&doc)
	default:
		return ""
	}
}

// Document builds a version 1 document with one paragraph per line of text.
func Document(text string) Node {
	lines := strings.Split(text, "\n")
	paragraphs := make([]Node, 0, len(lines))
	for _, line := range lines {
		p := Node{Type: TypeParagraph}
		if line != "" {
			p.Content = []Node{{Type: TypeText, Text: line}}
		}
		paragraphs = append(paragraphs, p)
	}
	return Node{Type: TypeDoc, Version: 1, Content: paragraphs}
}
