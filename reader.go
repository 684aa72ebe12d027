package codestory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-codestory/internal/lang"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/pipeline"
	"github.com/alnah/go-codestory/internal/render"
	"github.com/alnah/go-codestory/internal/tasks"
	"github.com/alnah/go-codestory/internal/translate"
)

// Reader loads, translates and renders the files of a task.
type Reader struct {
	source     TaskSource
	translator *translate.Service
	backend    Translator
	backendOpt []translate.Option
	sourceLang string
	logger     logging.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithTranslation translates pages through t, one request per text chunk.
// Without it every page is shown in its source language.
func WithTranslation(t Translator, opts ...TranslationOption) Option {
	return func(r *Reader) {
		r.backend = t
		r.backendOpt = opts
	}
}

// WithTranslator sets an already built translation service. It takes
// precedence over WithTranslation.
func WithTranslator(s *translate.Service) Option {
	return func(r *Reader) {
		r.translator = s
	}
}

// WithSourceLanguage sets the language the files are written in.
// Defaults to English.
func WithSourceLanguage(code string) Option {
	return func(r *Reader) {
		r.sourceLang = lang.Normalize(code)
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Reader) {
		r.logger = logging.OrNoOp(l)
	}
}

// NewReader creates a Reader over source.
func NewReader(source TaskSource, opts ...Option) *Reader {
	r := &Reader{
		source:     source,
		sourceLang: lang.Default,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.translator == nil && r.backend != nil {
		svcOpts := append([]translate.Option{translate.WithLogger(r.logger)}, r.backendOpt...)
		r.translator = translate.NewService(r.backend, svcOpts...)
	}
	return r
}

// Page is one rendered file of a tutorial.
type Page struct {
	Name     string
	Path     string
	Title    string
	Original string // markdown as loaded
	Content  string // markdown as displayed, translated when available
	Document Document
	Tree     RenderTree
}

// Notice reports a file shown untranslated because every chunk failed.
type Notice struct {
	File     string
	Language string
}

func (n Notice) Error() string {
	return fmt.Sprintf("%s in %s", ErrTranslationUnavailable, lang.Name(n.Language))
}

func (n Notice) Unwrap() error {
	return ErrTranslationUnavailable
}

// Tutorial is an opened task in one language.
type Tutorial struct {
	TaskID   string
	Language string
	Pages    []Page
	Notices  []Notice
}

// Err joins the notices, or returns nil when there are none.
func (t *Tutorial) Err() error {
	if t == nil || len(t.Notices) == 0 {
		return nil
	}
	errs := make([]error, len(t.Notices))
	for i, n := range t.Notices {
		errs[i] = n
	}
	return errors.Join(errs...)
}

// Sections returns the displayed pages in export order.
func (t *Tutorial) Sections() []Section {
	if t == nil {
		return nil
	}
	sections := make([]Section, len(t.Pages))
	for i, p := range t.Pages {
		sections[i] = Section{Name: p.Name, Title: p.Title, Markdown: p.Content}
	}
	return sections
}

// Open loads the files of taskID and shows them in the target language.
func (r *Reader) Open(ctx context.Context, taskID, target string) (*Tutorial, error) {
	if r.source == nil {
		return nil, ErrNoTaskSource
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, ErrEmptyTaskID
	}
	if !lang.IsSupported(target) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, target)
	}

	files, err := r.source.Files(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("loading task %s: %w", taskID, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, taskID)
	}
	files = tasks.Normalize(files)

	pages := make([]Page, len(files))
	for i, f := range files {
		pages[i] = Page{Name: f.Name, Path: f.Path, Title: f.DisplayName(), Original: f.Content}
	}
	r.logger.Debug("task loaded", "task", taskID, "files", len(pages))

	return r.Translate(ctx, &Tutorial{TaskID: taskID, Language: r.sourceLang, Pages: pages}, target)
}

// Translate returns a copy of tut shown in the target language. Pages are
// always translated from their originals, so switching back to the source
// language restores them untouched.
func (r *Reader) Translate(ctx context.Context, tut *Tutorial, target string) (*Tutorial, error) {
	if tut == nil {
		return nil, ErrNoFiles
	}
	if !lang.IsSupported(target) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, target)
	}
	target = lang.Normalize(target)

	out := &Tutorial{TaskID: tut.TaskID, Language: target, Pages: make([]Page, len(tut.Pages))}
	contents := make([]string, len(tut.Pages))
	for i, p := range tut.Pages {
		contents[i] = p.Original
	}

	if r.translator != nil && !translate.Passthrough(r.sourceLang, target) {
		docs := make([]translate.Document, len(tut.Pages))
		for i, p := range tut.Pages {
			docs[i] = translate.Document{Name: p.Name, Content: p.Original}
		}
		for i, res := range r.translator.Documents(ctx, docs, r.sourceLang, target) {
			contents[i] = res.Content
			if res.Unavailable() {
				out.Notices = append(out.Notices, Notice{File: tut.Pages[i].Name, Language: target})
			}
		}
	}

	for i, p := range tut.Pages {
		p.Content = contents[i]
		p.Document = pipeline.Parse(p.Content)
		p.Tree = render.ToRenderTree(p.Document)
		out.Pages[i] = p
	}
	if len(out.Notices) > 0 {
		r.logger.Warn("some pages are shown untranslated", "task", tut.TaskID,
			"target", target, "pages", len(out.Notices))
	}
	return out, nil
}
