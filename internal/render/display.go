package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TextSource reads the text a code node currently displays.
type TextSource interface {
	DisplayedText(id int) (string, bool)
}

// Display is a parsed reader view. It answers what each code node shows,
// which can drift from the content the tree was built with once the view
// has been re-rendered or edited.
type Display struct {
	code map[int]string
}

var _ TextSource = (*Display)(nil)

// ParseDisplay parses a reader view, either a full document or a fragment
// as written by WriteHTML.
func ParseDisplay(r io.Reader) (*Display, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read display: %w", err)
	}
	root, err := parseHTML(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse display: %w", err)
	}

	d := &Display{code: make(map[int]string)}
	d.collect(root)
	return d, nil
}

// DisplayedText returns the text content of code node id.
func (d *Display) DisplayedText(id int) (string, bool) {
	if d == nil {
		return "", false
	}
	s, ok := d.code[id]
	return s, ok
}

// DisplayedCode returns the displayed text of code node id in htmlContent.
func DisplayedCode(htmlContent string, id int) (string, bool) {
	d, err := ParseDisplay(strings.NewReader(htmlContent))
	if err != nil {
		return "", false
	}
	return d.DisplayedText(id)
}

func (d *Display) collect(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Code {
		if v, ok := attrValue(n, attrNode); ok {
			if id, err := strconv.Atoi(v); err == nil {
				if _, seen := d.code[id]; !seen {
					d.code[id] = textContent(n)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.collect(c)
	}
}

// parseHTML parses a full document or a body fragment into one tree.
func parseHTML(content string) (*html.Node, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		return html.Parse(strings.NewReader(content))
	}

	context := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
