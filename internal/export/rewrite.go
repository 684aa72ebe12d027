package export

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteFragment resolves references in one section's HTML:
//   - img[src] relative paths become file:// URLs under sourceDir
//   - a[href] pointing at another exported file becomes its #anchor
//
// URLs, anchors and absolute paths are left alone, as is anything that
// would resolve outside sourceDir.
func rewriteFragment(fragment, sourceDir string, anchors map[string]string) (string, error) {
	absSourceDir := ""
	if sourceDir != "" {
		abs, err := filepath.Abs(sourceDir)
		if err != nil {
			return "", err
		}
		absSourceDir = abs
	}
	if absSourceDir == "" && len(anchors) == 0 {
		return fragment, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		rewriteNode(n, absSourceDir, anchors)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, sourceDir string, anchors map[string]string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			if sourceDir != "" {
				rewriteImage(n, sourceDir)
			}
		case atom.A:
			rewriteLink(n, anchors)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, sourceDir, anchors)
	}
}

func rewriteImage(n *html.Node, sourceDir string) {
	for i, attr := range n.Attr {
		if attr.Key != "src" || !isRelativePath(attr.Val) {
			continue
		}
		abs := filepath.Join(sourceDir, filepath.FromSlash(attr.Val))
		if !isPathUnderDir(abs, sourceDir) {
			continue
		}
		n.Attr[i].Val = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}
}

func rewriteLink(n *html.Node, anchors map[string]string) {
	for i, attr := range n.Attr {
		if attr.Key != "href" || !isRelativePath(attr.Val) {
			continue
		}
		target := attr.Val
		if idx := strings.IndexByte(target, '#'); idx >= 0 {
			target = target[:idx]
		}
		if anchor, ok := anchors[path.Base(target)]; ok {
			n.Attr[i].Val = "#" + anchor
		}
	}
}

// isRelativePath reports whether p is a relative file reference.
func isRelativePath(p string) bool {
	switch {
	case p == "",
		strings.HasPrefix(p, "#"),
		strings.HasPrefix(p, "//"),
		strings.Contains(p, ":"),
		filepath.IsAbs(p),
		strings.HasPrefix(p, "/"):
		return false
	}
	return true
}

// isPathUnderDir checks that abs stays inside dir.
func isPathUnderDir(abs, dir string) bool {
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
