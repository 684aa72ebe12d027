package codestory

import (
	"github.com/alnah/go-codestory/internal/pipeline"
	"github.com/alnah/go-codestory/internal/render"
	"github.com/alnah/go-codestory/internal/speech"
	"github.com/alnah/go-codestory/internal/tasks"
	"github.com/alnah/go-codestory/internal/translate"
)

// Document model.
type (
	Document  = pipeline.Document
	Block     = pipeline.Block
	Header    = pipeline.Header
	CodeFence = pipeline.CodeFence
	ListBlock = pipeline.ListBlock
	ListItem  = pipeline.ListItem
	Paragraph = pipeline.Paragraph
	Span      = pipeline.Span
	Chunk     = pipeline.Chunk
)

// RenderTree is the display-ready tree built from a Document.
type RenderTree = render.Tree

// Capability contracts.
type (
	TaskSource   = tasks.Source
	TaskFile     = tasks.File
	Translator   = translate.Translator
	Clipboard    = render.Clipboard
	SpeechEngine = speech.Engine
)

var (
	_ TaskSource   = (*tasks.HTTPSource)(nil)
	_ TaskSource   = tasks.DirSource{}
	_ Translator   = (*translate.LibreTranslator)(nil)
	_ Translator   = (*translate.OpenAITranslator)(nil)
	_ Translator   = (*translate.GlossaryTranslator)(nil)
	_ Translator   = translate.Chain(nil)
	_ Clipboard    = (*render.CommandClipboard)(nil)
	_ Clipboard    = (*render.TerminalClipboard)(nil)
	_ SpeechEngine = (*speech.CommandEngine)(nil)
)

// Parse splits raw markdown into blocks. It accepts any input.
func Parse(raw string) Document {
	return pipeline.Parse(raw)
}

// Format tokenizes the inline markers of one line of text.
func Format(text string) []Span {
	return pipeline.Format(text)
}

// ToRenderTree maps each block of doc to one display node.
func ToRenderTree(doc Document) RenderTree {
	return render.ToRenderTree(doc)
}

// ToChunks splits raw into alternating text and code chunks whose
// concatenation is raw.
func ToChunks(raw string) []Chunk {
	return pipeline.ToChunks(raw)
}

// JoinChunks concatenates chunk contents in order.
func JoinChunks(chunks []Chunk) string {
	return pipeline.JoinChunks(chunks)
}

// ToSpeechText strips markup from raw, replaces code fences with a spoken
// placeholder and applies the length policy.
func ToSpeechText(raw string) string {
	return pipeline.ToSpeechText(raw)
}

// SpeechText is ToSpeechText for a language code: sentences also split on
// danda punctuation for Hindi and Telugu, which get a space after it.
func SpeechText(raw, lang string) string {
	return pipeline.SpeechText(raw, lang)
}

// SpeechTextFull is SpeechText without the length policy.
func SpeechTextFull(raw, lang string) string {
	return pipeline.SpeechTextFull(raw, lang)
}
