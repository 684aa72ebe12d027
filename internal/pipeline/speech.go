package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CodePlaceholder replaces every fenced code block in speech text.
const CodePlaceholder = "A code example is shown on screen."

// Speech length policy. Longer text is cut to the first sentences so the
// speech engine starts without a long synthesis delay.
const (
	MaxSpeechLength    = 200
	MaxSpokenSentences = 3
)

// ToSpeechText extracts speech-ready English plain text from raw markdown,
// with the length policy applied.
func ToSpeechText(raw string) string {
	return SpeechText(raw, "en")
}

// SpeechText is SpeechTextFull followed by the length policy: text longer
// than MaxSpeechLength runes is cut to its first MaxSpokenSentences
// sentences.
func SpeechText(raw, lang string) string {
	text := SpeechTextFull(raw, lang)
	if utf8.RuneCountInString(text) > MaxSpeechLength {
		text = firstSentences(text, sentenceTerminators(lang), MaxSpokenSentences)
	}
	return text
}

// SpeechTextFull extracts plain text from raw markdown for the given
// frontend language code, whatever its length.
//
// Header markers, list markers and inline markers are dropped while their
// text is kept; link URLs are dropped. Each fence becomes CodePlaceholder.
// Lines of one paragraph are joined with a space and paragraphs with ". ",
// unless the previous paragraph already ends a sentence. Hindi and Telugu
// get a space after danda punctuation.
func SpeechTextFull(raw, lang string) string {
	text := joinParagraphs(speechParagraphs(raw))
	if usesDanda(lang) {
		text = spaceAfterDanda(text)
	}
	return text
}

// speechParagraphs strips markup line by line and groups lines into
// paragraphs separated by blank lines and fences.
func speechParagraphs(raw string) []string {
	var (
		paragraphs []string
		current    []string
		inFence    bool
	)

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if inFence {
			if IsFenceClose(line) {
				inFence = false
			}
			continue
		}
		if IsFenceOpen(line) {
			flush()
			paragraphs = append(paragraphs, CodePlaceholder)
			inFence = true
			continue
		}

		text := speechLine(strings.TrimSpace(line))
		if text == "" {
			flush()
			continue
		}
		current = append(current, text)
	}
	flush()

	return paragraphs
}

// speechLine removes block and inline markers from one trimmed line.
func speechLine(trimmed string) string {
	if isHeader(trimmed) {
		trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	}
	if isListItem(trimmed) {
		trimmed = stripItemMarker(trimmed)
	}
	return strings.TrimSpace(SpansText(Format(trimmed)))
}

// joinParagraphs joins paragraphs with a sentence pause.
func joinParagraphs(paragraphs []string) string {
	var b strings.Builder
	for i, p := range paragraphs {
		if i > 0 {
			if endsSentence(paragraphs[i-1]) {
				b.WriteString(" ")
			} else {
				b.WriteString(". ")
			}
		}
		b.WriteString(p)
	}
	return b.String()
}

// endsSentence reports whether s ends with sentence punctuation.
func endsSentence(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune(".!?:।॥", r)
}

// usesDanda reports whether the language writes the danda terminator.
func usesDanda(lang string) bool {
	return lang == "hi" || lang == "te"
}

// sentenceTerminators returns the punctuation that ends a sentence.
func sentenceTerminators(lang string) string {
	if usesDanda(lang) {
		return ".।॥"
	}
	return "."
}

// spaceAfterDanda inserts a pause after danda punctuation not already
// followed by whitespace.
func spaceAfterDanda(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if (r == '।' || r == '॥') && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// firstSentences keeps at most n non-empty segments split on terminators,
// rejoined with ". ".
func firstSentences(text, terminators string, n int) string {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(terminators, r)
	})

	kept := make([]string, 0, n)
	for _, seg := range segments {
		if seg = strings.TrimSpace(seg); seg == "" {
			continue
		}
		kept = append(kept, seg)
		if len(kept) == n {
			break
		}
	}
	return strings.Join(kept, ". ")
}
