package render

import (
	"strings"
	"testing"

	"github.com/alnah/go-codestory/internal/pipeline"
)

func renderString(t *testing.T, tree Tree) string {
	t.Helper()
	var b strings.Builder
	if err := WriteHTML(&b, tree); err != nil {
		t.Fatalf("WriteHTML() error: %v", err)
	}
	return b.String()
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading levels",
			input:    "# One\n###### Six",
			contains: []string{"<h1>One</h1>", "<h6>Six</h6>"},
		},
		{
			name:  "inline spans",
			input: "a `b` **c** *d* [e](https://x.test/?q=1&r=2)",
			contains: []string{
				"<p>a <code>b</code> <strong>c</strong> <em>d</em> ",
				`<a href="https://x.test/?q=1&amp;r=2" target="_blank" rel="noopener noreferrer">e</a>`,
			},
		},
		{
			name:  "code block with copy button",
			input: "```go\nif a < b && c {\n```",
			contains: []string{
				`<button type="button" class="copy-button" data-copy="0" title="Copy code">Copy</button>`,
				`<code data-node="0" class="language-go">if a &lt; b &amp;&amp; c {</code>`,
				`<span class="code-language">go</span>`,
			},
		},
		{
			name:     "code without language",
			input:    "```\nplain\n```",
			contains: []string{`<code data-node="0">plain</code>`},
			excludes: []string{"code-language", "language-"},
		},
		{
			name:  "diagram callout",
			input: "```mermaid\ngraph TD\n```",
			contains: []string{
				`<div class="diagram"><div class="diagram-label">Flowchart Diagram</div>`,
			},
		},
		{
			name:     "chapter and default items",
			input:    "1. 02_setup.md\n2. read *this*",
			contains: []string{"<ol>", `<li class="chapter">setup</li>`, "<li>read <em>this</em></li>"},
			excludes: []string{"<ul>"},
		},
		{
			name:     "escaped paragraph text",
			input:    "<script>alert(1)</script>",
			contains: []string{"<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>"},
			excludes: []string{"<script>"},
		},
		{
			name:     "script link rendered as text",
			input:    "[x](javascript:alert(1))",
			contains: []string{"<p>x)</p>"},
			excludes: []string{"href", "javascript"},
		},
		{
			name:     "data link rendered as text",
			input:    "see [img](DATA:text/html,hi)",
			contains: []string{"<p>see img</p>"},
			excludes: []string{"<a"},
		},
		{
			name:     "relative link kept",
			input:    "[next](02_setup.md)",
			contains: []string{`<a href="02_setup.md" target="_blank" rel="noopener noreferrer">next</a>`},
		},
		{
			name:     "link inside bold",
			input:    "**[b](https://x.test/v)**",
			contains: []string{`<strong><a href="https://x.test/v" target="_blank" rel="noopener noreferrer">b</a></strong>`},
		},
		{
			name:     "emphasis inside link text",
			input:    "[*a*](https://x.test/u)",
			contains: []string{`<a href="https://x.test/u" target="_blank" rel="noopener noreferrer"><em>a</em></a>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := renderString(t, ToRenderTree(pipeline.Parse(tt.input)))
			if !strings.HasPrefix(got, `<article class="tutorial">`) {
				t.Errorf("output does not start with the article: %q", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output contains %q\ngot: %s", bad, got)
				}
			}
		})
	}
}

func TestSafeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/a", true},
		{"HTTP://example.com", true},
		{"mailto:me@example.com", true},
		{"01_intro.md", true},
		{"#setup", true},
		{"../img/a.png", true},
		{"javascript:alert(1)", false},
		{"JavaScript:alert(1)", false},
		{"vbscript:msgbox", false},
		{"data:text/html,hi", false},
		{"file:///etc/passwd", false},
		{" javascript:alert(1)", false},
		{"java\tscript:alert(1)", false},
	}

	for _, tt := range tests {
		if got := SafeURL(tt.url); got != tt.want {
			t.Errorf("SafeURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestWriteHTML_DisplayedCodeRoundTrip(t *testing.T) {
	t.Parallel()

	contents := []string{
		"x := 1",
		"a < b && c > d",
		"\n\nleading blank lines",
		"<div>\"quoted\" 'single'</div>",
		"unicode नमस्ते\n\ttabbed",
	}

	for i, content := range contents {
		tree := Tree{Nodes: []Node{
			ParagraphNode{Spans: []pipeline.Span{pipeline.Plain("before")}},
			CodeNode{ID: i, Content: content},
		}}
		out := renderString(t, tree)

		got, ok := DisplayedCode(out, i)
		if !ok {
			t.Fatalf("DisplayedCode(%d) not found in %q", i, out)
		}
		if got != content {
			t.Errorf("DisplayedCode(%d) = %q, want %q", i, got, content)
		}
	}
}

func TestWritePage(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	page := Page{
		Title: "A & B",
		CSS:   "body { color: red; } </style><script>",
		Tree:  ToRenderTree(pipeline.Parse("```\ncode\n```")),
	}
	if err := WritePage(&b, page); err != nil {
		t.Fatalf("WritePage() error: %v", err)
	}
	got := b.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>A &amp; B</title>",
		`<style>body { color: red; } <\/style><script></style>`,
		`<article class="tutorial">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page missing %q\ngot: %s", want, got)
		}
	}

	if text, ok := DisplayedCode(got, 0); !ok || text != "code" {
		t.Errorf("DisplayedCode on page = %q, %v", text, ok)
	}
}

func TestDisplay_MissingAndMalformed(t *testing.T) {
	t.Parallel()

	if _, ok := DisplayedCode("<p>no code</p>", 0); ok {
		t.Error("found a code node in markup without one")
	}
	if _, ok := DisplayedCode(`<code data-node="x">a</code>`, 0); ok {
		t.Error("non-numeric data-node matched")
	}
	var d *Display
	if _, ok := d.DisplayedText(0); ok {
		t.Error("nil Display returned text")
	}
}
