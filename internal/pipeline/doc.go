// Package pipeline implements the markdown structural transforms.
//
// Raw markdown text is the single source of truth. Four independent passes
// derive from it using the same line grammar:
//   - Parse builds the block Document (headers, fences, lists, paragraphs)
//   - Format tokenizes paragraph and list item text into inline spans
//   - ToChunks splits raw text into Text and Code chunks for translation
//   - SpeechText extracts a speech-ready plain string
//
// Every transform is a total, pure function: no input makes it fail, and
// fence content is never tokenized, reordered or rewritten by any of them.
// The grammar helpers in grammar.go are the one place that decides what a
// fence, a header or a list item line looks like.
package pipeline
