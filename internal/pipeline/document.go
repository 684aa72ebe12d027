package pipeline

import "strings"

// BlockKind identifies the variant of a Block.
type BlockKind int

// Block kinds.
const (
	BlockHeader BlockKind = iota
	BlockCodeFence
	BlockList
	BlockParagraph
)

// String returns the lower-case name of the kind.
func (k BlockKind) String() string {
	switch k {
	case BlockHeader:
		return "header"
	case BlockCodeFence:
		return "code"
	case BlockList:
		return "list"
	case BlockParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Block is one structural element of a Document.
// The set of implementations is closed: Header, CodeFence, ListBlock, Paragraph.
type Block interface {
	Kind() BlockKind
	block()
}

// Document is the ordered block sequence parsed from raw markdown.
type Document struct {
	Blocks []Block
}

// Header is an ATX header line. Level is always within [1, 6].
type Header struct {
	Level int
	Text  string
}

// CodeFence is a fenced code block. Lines are kept verbatim.
type CodeFence struct {
	Language  string
	Lines     []string
	IsDiagram bool
}

// Content joins the fence lines with line breaks.
func (c CodeFence) Content() string {
	return strings.Join(c.Lines, "\n")
}

// ListBlock is a run of list items. Ordered is fixed by the first item line.
type ListBlock struct {
	Ordered bool
	Items   []ListItem
}

// ListItem is one entry of a ListBlock.
// DisplayTitle is set only when IsChapterReference is true.
type ListItem struct {
	Text               string
	IsChapterReference bool
	DisplayTitle       string
}

// Paragraph is a single physical line of prose.
type Paragraph struct {
	Text string
}

func (Header) Kind() BlockKind    { return BlockHeader }
func (CodeFence) Kind() BlockKind { return BlockCodeFence }
func (ListBlock) Kind() BlockKind { return BlockList }
func (Paragraph) Kind() BlockKind { return BlockParagraph }

func (Header) block()    {}
func (CodeFence) block() {}
func (ListBlock) block() {}
func (Paragraph) block() {}
