package codestory_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-codestory"
)

func writeTaskDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "t1")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestReader_WithTranslation(t *testing.T) {
	t.Parallel()

	root := writeTaskDir(t, map[string]string{
		"01_intro.md": "# Intro\n\nHello reader.\n\n```go\nfmt.Println(\"hi\")\n```\n",
	})
	upper := codestory.TranslatorFunc(func(_ context.Context, text, _, _ string) (string, error) {
		return strings.ToUpper(text), nil
	})
	cache := codestory.NewTranslationCache()
	t.Cleanup(func() { _ = cache.Close() })

	reader := codestory.NewReader(codestory.DirSource{Root: root},
		codestory.WithTranslation(upper, codestory.WithTranslationCache(cache)),
	)
	tut, err := reader.Open(context.Background(), "t1", "hi")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if len(tut.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(tut.Pages))
	}
	content := tut.Pages[0].Content
	if !strings.Contains(content, "HELLO READER.") || !strings.Contains(content, "fmt.Println(\"hi\")") {
		t.Errorf("Content = %q, want translated prose and verbatim code", content)
	}
	if cache.Len() == 0 {
		t.Error("translations were not cached")
	}

	var sections []codestory.Section = tut.Sections()
	if len(sections) != 1 || sections[0].Markdown != content {
		t.Errorf("Sections() = %#v", sections)
	}
}

func TestRenderTree_NodeTypes(t *testing.T) {
	t.Parallel()

	raw := "# Title\n\nSee **[docs](https://x.test)**.\n\n- 01_intro.md\n\n```mermaid\ngraph TD\n```\n\n```go\nx := 1\n```"
	tree := codestory.ToRenderTree(codestory.Parse(raw))

	var kinds []codestory.NodeKind
	for _, n := range tree.Nodes {
		kinds = append(kinds, n.Kind())
		switch n := n.(type) {
		case codestory.HeadingNode:
			if n.Level != 1 || n.Text != "Title" {
				t.Errorf("heading = %+v", n)
			}
		case codestory.ParagraphNode:
			bold := n.Spans[1]
			if bold.Kind != codestory.SpanBold || len(bold.Children) != 1 || bold.Children[0].Kind != codestory.SpanLink {
				t.Errorf("paragraph spans = %#v, want a bold link", n.Spans)
			}
		case codestory.ListNode:
			if n.Items[0].Marker != codestory.MarkerChapter || n.Items[0].Title != "intro" {
				t.Errorf("list item = %+v", n.Items[0])
			}
		case codestory.CalloutNode:
			if n.Code.Language != "mermaid" {
				t.Errorf("callout = %+v", n)
			}
		case codestory.CodeNode:
			if n.Content != "x := 1" {
				t.Errorf("code = %+v", n)
			}
		default:
			t.Errorf("unexpected node %T", n)
		}
	}

	want := []codestory.NodeKind{
		codestory.NodeHeading, codestory.NodeParagraph, codestory.NodeList,
		codestory.NodeCallout, codestory.NodeCode,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}
