package codestory

import (
	"github.com/alnah/go-codestory/internal/export"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/pipeline"
	"github.com/alnah/go-codestory/internal/render"
	"github.com/alnah/go-codestory/internal/speech"
	"github.com/alnah/go-codestory/internal/tasks"
	"github.com/alnah/go-codestory/internal/translate"
)

// Kinds of the document model.
type (
	BlockKind = pipeline.BlockKind
	SpanKind  = pipeline.SpanKind
	ChunkKind = pipeline.ChunkKind
)

// Block kinds.
const (
	BlockHeader    = pipeline.BlockHeader
	BlockCodeFence = pipeline.BlockCodeFence
	BlockList      = pipeline.BlockList
	BlockParagraph = pipeline.BlockParagraph
)

// Span kinds. Bold, italic and link spans may carry Children.
const (
	SpanPlain  = pipeline.SpanPlain
	SpanCode   = pipeline.SpanCode
	SpanBold   = pipeline.SpanBold
	SpanItalic = pipeline.SpanItalic
	SpanLink   = pipeline.SpanLink
)

// Chunk kinds.
const (
	ChunkText = pipeline.ChunkText
	ChunkCode = pipeline.ChunkCode
)

// Render tree nodes. A RenderNode is one of the *Node types below; switch on
// the concrete type or on Kind.
type (
	RenderNode    = render.Node
	NodeKind      = render.NodeKind
	HeadingNode   = render.HeadingNode
	CodeNode      = render.CodeNode
	CalloutNode   = render.CalloutNode
	ListNode      = render.ListNode
	ItemNode      = render.ItemNode
	ParagraphNode = render.ParagraphNode
	MarkerStyle   = render.MarkerStyle
)

// Node kinds.
const (
	NodeHeading   = render.NodeHeading
	NodeCode      = render.NodeCode
	NodeCallout   = render.NodeCallout
	NodeList      = render.NodeList
	NodeParagraph = render.NodeParagraph
)

// Marker styles of list items.
const (
	MarkerDefault = render.MarkerDefault
	MarkerChapter = render.MarkerChapter
)

// Section is one displayed page in export order.
type Section = export.Section

// Logger is the leveled logging contract accepted by WithLogger.
type Logger = logging.Logger

// Speech engine contract types.
type (
	Utterance     = speech.Utterance
	SpeechSession = speech.Session
	SpeechParams  = speech.Params
)

// Translation building blocks.
type (
	// TranslatorFunc adapts a function to Translator.
	TranslatorFunc = translate.TranslatorFunc

	// TranslationCache memoizes translated chunks. Share one between
	// Readers to reuse translations; the caller closes it.
	TranslationCache = translate.Cache

	// TranslationOption configures the service built by WithTranslation.
	TranslationOption = translate.Option
)

// NewTranslationCache creates an empty TranslationCache.
func NewTranslationCache() *TranslationCache {
	return translate.NewCache()
}

// WithTranslationCache makes translation look up and store chunks in c.
func WithTranslationCache(c *TranslationCache) TranslationOption {
	return translate.WithCache(c)
}

// Task sources.
type (
	// DirSource reads task output from the directory Root/<task id>.
	DirSource = tasks.DirSource

	// HTTPSource reads task output and job status from a generation backend.
	HTTPSource = tasks.HTTPSource
)

// NewHTTPSource creates an HTTPSource for the backend at baseURL. A nil
// logger disables logging.
func NewHTTPSource(baseURL string, logger Logger) *HTTPSource {
	return tasks.NewHTTPSource(baseURL, logger)
}
