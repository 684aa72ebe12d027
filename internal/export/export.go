// Package export assembles a tutorial into one self-contained, print-ready
// HTML document: a cover, a table of contents and one section per file with
// highlighted code.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"runtime"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-codestory/internal/assets"
	"github.com/alnah/go-codestory/internal/lang"
	"github.com/alnah/go-codestory/internal/logging"
)

// Sentinel errors for export.
var (
	ErrNoSections       = errors.New("nothing to export")
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrCoverRender      = errors.New("cover template rendering failed")
	ErrDocumentRender   = errors.New("document rendering failed")
	ErrUnknownHighlight = errors.New("unknown highlight style")
)

// DefaultHighlightStyle is the chroma style for code fences.
const DefaultHighlightStyle = "github"

// HighlightStyles lists the registered chroma style names, sorted.
func HighlightStyles() []string {
	return styles.Names()
}

// Section is one markdown file of the tutorial.
type Section struct {
	Name     string // file name, used to resolve links between chapters
	Title    string
	Markdown string
}

// Options describe one export.
type Options struct {
	Title    string
	Language string // frontend language code
	Date     string // already resolved, empty to omit

	// SourceDir resolves relative image paths to file:// URLs. Empty keeps
	// them unchanged.
	SourceDir string
}

type page struct {
	Title    string
	Lang     string
	CSS      template.CSS
	Cover    template.HTML
	Sections []renderedSection
}

type renderedSection struct {
	Anchor string
	Title  string
	HTML   template.HTML
}

type coverData struct {
	Title    string
	Language string
	Chapters int
	Date     string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
{{.Cover}}
<nav class="toc">
<ol>
{{- range .Sections}}
<li><a href="#{{.Anchor}}">{{.Title}}</a></li>
{{- end}}
</ol>
</nav>
{{- range .Sections}}
<section class="chapter" id="{{.Anchor}}">
{{.HTML}}
</section>
{{- end}}
</body>
</html>
`))

// Exporter converts tutorials to print HTML. It is safe for concurrent use.
type Exporter struct {
	md          goldmark.Markdown
	loader      assets.AssetLoader
	style       string
	concurrency int
	logger      logging.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithAssetLoader loads the print style and cover template from loader.
func WithAssetLoader(loader assets.AssetLoader) Option {
	return func(e *Exporter) { e.loader = loader }
}

// WithHighlightStyle selects the chroma style for code fences.
func WithHighlightStyle(name string) Option {
	return func(e *Exporter) { e.style = name }
}

// WithConcurrency bounds how many sections convert at once.
func WithConcurrency(n int) Option {
	return func(e *Exporter) { e.concurrency = n }
}

// WithLogger sets the export logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// New creates an Exporter with GFM extensions and class-based highlighting.
func New(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		loader:      assets.NewEmbeddedLoader(),
		style:       DefaultHighlightStyle,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if _, ok := styles.Registry[e.style]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlight, e.style)
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	e.logger = logging.OrNoOp(e.logger)

	e.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(e.style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return e, nil
}

// Tutorial renders sections in order into one HTML document.
func (e *Exporter) Tutorial(ctx context.Context, sections []Section, opts Options) ([]byte, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	css, err := e.stylesheet()
	if err != nil {
		return nil, err
	}
	cover, err := e.cover(opts, len(sections))
	if err != nil {
		return nil, err
	}

	anchors := Anchors(sections)
	links := make(map[string]string, len(sections))
	for i, s := range sections {
		if s.Name != "" {
			links[s.Name] = anchors[i]
		}
	}

	rendered := make([]renderedSection, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, s := range sections {
		g.Go(func() error {
			fragment, err := e.convert(gctx, s.Markdown)
			if err != nil {
				return fmt.Errorf("section %q: %w", s.Name, err)
			}
			fragment, err = rewriteFragment(fragment, opts.SourceDir, links)
			if err != nil {
				return fmt.Errorf("section %q: %w", s.Name, err)
			}
			rendered[i] = renderedSection{
				Anchor: anchors[i],
				Title:  sectionTitle(s, i),
				HTML:   template.HTML(fragment),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Tutorial"
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, page{
		Title:    title,
		Lang:     lang.VoiceLocale(opts.Language),
		CSS:      template.CSS(css),
		Cover:    cover,
		Sections: rendered,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	e.logger.Debug("tutorial exported", "sections", len(sections), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// convert runs goldmark, honoring cancellation between sections.
func (e *Exporter) convert(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// stylesheet joins the print style with the highlight classes.
func (e *Exporter) stylesheet() (string, error) {
	css, err := e.loader.LoadStyle(assets.PrintStyle)
	if err != nil {
		return "", fmt.Errorf("loading print style: %w", err)
	}

	var chroma bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&chroma, styles.Get(e.style)); err != nil {
		return "", fmt.Errorf("writing highlight style: %w", err)
	}
	return assets.SanitizeCSS(css + "\n" + chroma.String()), nil
}

func (e *Exporter) cover(opts Options, chapters int) (template.HTML, error) {
	src, err := e.loader.LoadTemplate(assets.CoverTemplate)
	if err != nil {
		return "", fmt.Errorf("loading cover template: %w", err)
	}
	tmpl, err := template.New("cover").Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoverRender, err)
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Tutorial"
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, coverData{
		Title:    title,
		Language: lang.Name(lang.Normalize(opts.Language)),
		Chapters: chapters,
		Date:     opts.Date,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoverRender, err)
	}
	return template.HTML(buf.String()), nil
}

// Anchors returns a unique URL-safe id per section, derived from its title
// or name. Sections that slug to nothing get "chapter-N".
func Anchors(sections []Section) []string {
	seen := make(map[string]int, len(sections))
	out := make([]string, len(sections))
	for i, s := range sections {
		base := anchorBase(s, i)
		id := base
		if n := seen[base]; n > 0 {
			id = base + "-" + strconv.Itoa(n+1)
		}
		seen[base]++
		out[i] = id
	}
	return out
}

func anchorBase(s Section, i int) string {
	candidate := strings.TrimSuffix(s.Name, ".md")
	if candidate == "" {
		candidate = s.Title
	}
	if normalized, err := slug.Normalize(candidate); err == nil && normalized != "" {
		return normalized
	}
	return "chapter-" + strconv.Itoa(i+1)
}

func sectionTitle(s Section, i int) string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	if s.Name != "" {
		return strings.ReplaceAll(strings.TrimSuffix(s.Name, ".md"), "_", " ")
	}
	return "Chapter " + strconv.Itoa(i+1)
}
