package render

import "github.com/alnah/go-codestory/internal/pipeline"

// DiagramLabel is the caption of the callout wrapping diagram fences.
const DiagramLabel = "Flowchart Diagram"

// NodeKind identifies the variant of a Node.
type NodeKind int

// Node kinds.
const (
	NodeHeading NodeKind = iota
	NodeCode
	NodeCallout
	NodeList
	NodeParagraph
)

// String returns the lower-case name of the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeHeading:
		return "heading"
	case NodeCode:
		return "code"
	case NodeCallout:
		return "callout"
	case NodeList:
		return "list"
	case NodeParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Node is one element of a render Tree. Implementations are HeadingNode,
// CodeNode, CalloutNode, ListNode and ParagraphNode.
type Node interface {
	Kind() NodeKind
	node()
}

// Tree is the ordered node sequence of one document.
type Tree struct {
	Nodes []Node
}

// HeadingNode renders a header at its clamped level.
type HeadingNode struct {
	Level int
	Text  string
}

// CodeNode is a code block with a copy affordance. ID is unique within the
// tree and addresses the node in the rendered view. Content is verbatim.
type CodeNode struct {
	ID       int
	Language string
	Content  string
}

// CalloutNode wraps a diagram code block in a labeled container.
type CalloutNode struct {
	Label string
	Code  CodeNode
}

// MarkerStyle selects the bullet drawn before a list item.
type MarkerStyle int

// Marker styles.
const (
	MarkerDefault MarkerStyle = iota
	MarkerChapter
)

// ListNode is an ordered or unordered container of items.
type ListNode struct {
	Ordered bool
	Items   []ItemNode
}

// ItemNode is one list entry. Chapter items carry Title and no spans; other
// items carry their formatted spans.
type ItemNode struct {
	Marker MarkerStyle
	Title  string
	Spans  []pipeline.Span
}

// ParagraphNode is a line of formatted prose.
type ParagraphNode struct {
	Spans []pipeline.Span
}

func (HeadingNode) Kind() NodeKind   { return NodeHeading }
func (CodeNode) Kind() NodeKind      { return NodeCode }
func (CalloutNode) Kind() NodeKind   { return NodeCallout }
func (ListNode) Kind() NodeKind      { return NodeList }
func (ParagraphNode) Kind() NodeKind { return NodeParagraph }

func (HeadingNode) node()   {}
func (CodeNode) node()      {}
func (CalloutNode) node()   {}
func (ListNode) node()      {}
func (ParagraphNode) node() {}

// ToRenderTree maps doc to a render tree, one node per block. Code nodes are
// numbered from 0 in document order.
func ToRenderTree(doc pipeline.Document) Tree {
	tree := Tree{Nodes: make([]Node, 0, len(doc.Blocks))}
	codeID := 0

	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case pipeline.Header:
			tree.Nodes = append(tree.Nodes, HeadingNode{Level: b.Level, Text: b.Text})
		case pipeline.CodeFence:
			code := CodeNode{ID: codeID, Language: b.Language, Content: b.Content()}
			codeID++
			if b.IsDiagram {
				tree.Nodes = append(tree.Nodes, CalloutNode{Label: DiagramLabel, Code: code})
			} else {
				tree.Nodes = append(tree.Nodes, code)
			}
		case pipeline.ListBlock:
			tree.Nodes = append(tree.Nodes, listNode(b))
		case pipeline.Paragraph:
			tree.Nodes = append(tree.Nodes, ParagraphNode{Spans: pipeline.Format(b.Text)})
		}
	}

	return tree
}

func listNode(b pipeline.ListBlock) ListNode {
	list := ListNode{Ordered: b.Ordered, Items: make([]ItemNode, 0, len(b.Items))}
	for _, item := range b.Items {
		if item.IsChapterReference {
			list.Items = append(list.Items, ItemNode{Marker: MarkerChapter, Title: item.DisplayTitle})
			continue
		}
		list.Items = append(list.Items, ItemNode{Marker: MarkerDefault, Spans: pipeline.Format(item.Text)})
	}
	return list
}

// CodeNodes returns every code node of the tree, callouts unwrapped, in
// document order.
func (t Tree) CodeNodes() []CodeNode {
	var nodes []CodeNode
	for _, n := range t.Nodes {
		switch n := n.(type) {
		case CodeNode:
			nodes = append(nodes, n)
		case CalloutNode:
			nodes = append(nodes, n.Code)
		}
	}
	return nodes
}

// CodeNode returns the code node with the given id.
func (t Tree) CodeNode(id int) (CodeNode, bool) {
	for _, c := range t.CodeNodes() {
		if c.ID == id {
			return c, true
		}
	}
	return CodeNode{}, false
}
