package translate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alnah/go-codestory/internal/lang"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/pipeline"
)

// Service runs fence-safe translation on top of a Translator.
type Service struct {
	translator Translator
	cache      *Cache
	logger     logging.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the translation cache. The caller owns its lifecycle.
func WithCache(c *Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLogger sets the logger for chunk failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service. A nil translator fails every request.
func NewService(t Translator, opts ...Option) *Service {
	s := &Service{translator: t}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNoOp(s.logger)
	return s
}

// Passthrough reports whether translating from source to target is the
// identity: English targets and same-language pairs are never sent out.
func Passthrough(source, target string) bool {
	return target == lang.English || target == source
}

// Text translates one piece of text from source to target.
func (s *Service) Text(ctx context.Context, text, source, target string) (string, error) {
	if Passthrough(source, target) {
		return text, nil
	}
	if !lang.IsSupported(target) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, target)
	}
	if cached, ok := s.cache.Get(source, target, text); ok {
		return cached, nil
	}
	if s.translator == nil {
		return "", fmt.Errorf("%w: no translator configured", ErrTranslatorFailed)
	}

	out, err := s.translator.Translate(ctx, text, source, target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslatorFailed, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyTranslation
	}

	if s.cache != nil {
		if err := s.cache.Put(source, target, text, out); err != nil {
			s.logger.Debug("translation not cached", "error", err)
		}
	}
	return out, nil
}

// Result is the outcome of translating one markdown document.
type Result struct {
	Content string

	// Requested counts the Text chunks sent to the translator; Failed counts
	// those that kept their source text.
	Requested int
	Failed    int
}

// Unavailable reports whether every requested chunk failed.
func (r Result) Unavailable() bool {
	return r.Requested > 0 && r.Failed == r.Requested
}

// Markdown translates raw markdown chunk by chunk. Code chunks and
// whitespace are preserved exactly; failed chunks keep their source text.
func (s *Service) Markdown(ctx context.Context, raw, source, target string) Result {
	return s.markdown(ctx, s.logger, raw, source, target)
}

func (s *Service) markdown(ctx context.Context, logger logging.Logger, raw, source, target string) Result {
	if Passthrough(source, target) {
		return Result{Content: raw}
	}

	chunks := pipeline.ToChunks(raw)
	out := make([]string, len(chunks))
	failed := make([]bool, len(chunks))
	requested := 0

	var wg sync.WaitGroup
	for i, c := range chunks {
		out[i] = c.Content
		if c.Kind == pipeline.ChunkCode {
			continue
		}
		lead, core, trail := splitSpace(c.Content)
		if core == "" {
			continue
		}

		requested++
		wg.Add(1)
		go func() {
			defer wg.Done()
			translated, err := s.Text(ctx, core, source, target)
			if err != nil {
				failed[i] = true
				logger.WithFields(map[string]any{"chunk": i, "target": target}).
					Warn("chunk translation failed, keeping source text", "error", err)
				return
			}
			out[i] = lead + translated + trail
		}()
	}
	wg.Wait()

	res := Result{Content: strings.Join(out, ""), Requested: requested}
	for _, f := range failed {
		if f {
			res.Failed++
		}
	}
	return res
}

// Document is one named markdown file.
type Document struct {
	Name    string
	Content string
}

// Documents translates every document concurrently. Results are in input
// order and each one fails independently.
func (s *Service) Documents(ctx context.Context, docs []Document, source, target string) []Result {
	results := make([]Result, len(docs))

	var wg sync.WaitGroup
	for i, d := range docs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger := s.logger.WithFields(map[string]any{"file": d.Name})
			results[i] = s.markdown(ctx, logger, d.Content, source, target)
			if results[i].Unavailable() {
				logger.Warn("translation unavailable", "target", target, "chunks", results[i].Requested)
			}
		}()
	}
	wg.Wait()

	return results
}

// splitSpace cuts s into leading whitespace, core and trailing whitespace.
func splitSpace(s string) (lead, core, trail string) {
	core = strings.TrimLeft(s, " \t\r\n")
	lead = s[:len(s)-len(core)]
	trimmed := strings.TrimRight(core, " \t\r\n")
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}
