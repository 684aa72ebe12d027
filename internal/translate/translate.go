// Package translate translates tutorial markdown without touching code.
//
// Raw text is split with pipeline.ToChunks and every non-blank Text chunk is
// sent to the Translator as its own concurrent request. Code chunks are
// copied through byte for byte. A failed chunk keeps its source text and
// never delays or aborts its siblings; a file is reported unavailable only
// when every requested chunk failed.
package translate

import (
	"context"
	"errors"
)

// Sentinel errors for translation.
var (
	ErrTranslatorFailed    = errors.New("translator failed")
	ErrEmptyTranslation    = errors.New("empty translation")
	ErrCacheClosed         = errors.New("translation cache closed")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Translator is the translation capability. Source and target are frontend
// language codes such as "en", "hi" or "hinglish".
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(ctx context.Context, text, source, target string) (string, error)

// Translate calls f.
func (f TranslatorFunc) Translate(ctx context.Context, text, source, target string) (string, error) {
	return f(ctx, text, source, target)
}
