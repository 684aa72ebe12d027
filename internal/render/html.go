package render

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-codestory/internal/assets"
	"github.com/alnah/go-codestory/internal/pipeline"
)

// Attribute names shared by the writer and Display.
const (
	attrNode = "data-node"
	attrCopy = "data-copy"
)

// Page is a standalone reader document.
type Page struct {
	Title string
	CSS   string
	Tree  Tree
}

// WriteHTML writes the reader markup of tree as an article fragment.
func WriteHTML(w io.Writer, tree Tree) error {
	if err := html.Render(w, articleNode(tree)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// WritePage writes a complete HTML document embedding the page stylesheet.
func WritePage(w io.Writer, page Page) error {
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	title := element(atom.Title)
	title.AppendChild(text(page.Title))
	head.AppendChild(title)
	if page.CSS != "" {
		style := element(atom.Style)
		style.AppendChild(text(assets.SanitizeCSS(page.CSS)))
		head.AppendChild(style)
	}

	body := element(atom.Body)
	body.AppendChild(articleNode(page.Tree))

	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func articleNode(tree Tree) *html.Node {
	article := element(atom.Article, attr("class", "tutorial"))
	for _, n := range tree.Nodes {
		article.AppendChild(nodeHTML(n))
	}
	return article
}

func nodeHTML(n Node) *html.Node {
	switch n := n.(type) {
	case HeadingNode:
		h := element(headingAtom(n.Level))
		h.AppendChild(text(n.Text))
		return h
	case CodeNode:
		return codeHTML(n)
	case CalloutNode:
		div := element(atom.Div, attr("class", "diagram"))
		label := element(atom.Div, attr("class", "diagram-label"))
		label.AppendChild(text(n.Label))
		div.AppendChild(label)
		div.AppendChild(codeHTML(n.Code))
		return div
	case ListNode:
		return listHTML(n)
	case ParagraphNode:
		p := element(atom.P)
		appendSpans(p, n.Spans)
		return p
	default:
		return &html.Node{Type: html.CommentNode, Data: "unknown node"}
	}
}

var headingAtoms = [pipeline.MaxHeaderLevel]atom.Atom{
	atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
}

// headingAtom returns the h1..h6 atom for level, clamped.
func headingAtom(level int) atom.Atom {
	level = max(1, min(level, pipeline.MaxHeaderLevel))
	return headingAtoms[level-1]
}

func codeHTML(n CodeNode) *html.Node {
	id := strconv.Itoa(n.ID)

	block := element(atom.Div, attr("class", "code-block"))
	header := element(atom.Div, attr("class", "code-header"))
	if n.Language != "" {
		lang := element(atom.Span, attr("class", "code-language"))
		lang.AppendChild(text(n.Language))
		header.AppendChild(lang)
	}
	button := element(atom.Button,
		attr("type", "button"),
		attr("class", "copy-button"),
		attr(attrCopy, id),
		attr("title", "Copy code"),
	)
	button.AppendChild(text("Copy"))
	header.AppendChild(button)
	block.AppendChild(header)

	codeAttrs := []html.Attribute{attr(attrNode, id)}
	if n.Language != "" {
		codeAttrs = append(codeAttrs, attr("class", "language-"+n.Language))
	}
	code := element(atom.Code, codeAttrs...)
	code.AppendChild(text(n.Content))
	pre := element(atom.Pre)
	pre.AppendChild(code)
	block.AppendChild(pre)

	return block
}

func listHTML(n ListNode) *html.Node {
	tag := atom.Ul
	if n.Ordered {
		tag = atom.Ol
	}
	list := element(tag)
	for _, item := range n.Items {
		if item.Marker == MarkerChapter {
			li := element(atom.Li, attr("class", "chapter"))
			li.AppendChild(text(item.Title))
			list.AppendChild(li)
			continue
		}
		li := element(atom.Li)
		appendSpans(li, item.Spans)
		list.AppendChild(li)
	}
	return list
}

func appendSpans(parent *html.Node, spans []pipeline.Span) {
	for _, sp := range spans {
		switch sp.Kind {
		case pipeline.SpanCode:
			wrapText(parent, element(atom.Code), sp.Text)
		case pipeline.SpanBold:
			wrapSpan(parent, element(atom.Strong), sp)
		case pipeline.SpanItalic:
			wrapSpan(parent, element(atom.Em), sp)
		case pipeline.SpanLink:
			if !SafeURL(sp.URL) {
				appendContent(parent, sp)
				continue
			}
			a := element(atom.A,
				attr("href", sp.URL),
				attr("target", "_blank"),
				attr("rel", "noopener noreferrer"),
			)
			wrapSpan(parent, a, sp)
		default:
			parent.AppendChild(text(sp.Text))
		}
	}
}

// appendContent appends the children of sp, or its text when it has none.
func appendContent(parent *html.Node, sp pipeline.Span) {
	if len(sp.Children) == 0 {
		parent.AppendChild(text(sp.Text))
		return
	}
	appendSpans(parent, sp.Children)
}

func wrapSpan(parent, el *html.Node, sp pipeline.Span) {
	appendContent(el, sp)
	parent.AppendChild(el)
}

// SafeURL reports whether a link target may be written as an href:
// relative references and the http, https and mailto schemes.
func SafeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return true
	default:
		return false
	}
}

func wrapText(parent, el *html.Node, s string) {
	el.AppendChild(text(s))
	parent.AppendChild(el)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
