package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for the parse pre-pass.
var (
	// Compress 3+ newlines to exactly 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Underscore rules used as visual separators by generated tutorials
	underscoreRun = regexp.MustCompile(`_{3,}`)
)

// MarkdownPreprocessor defines the contract for the parse pre-pass.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(content string) string
}

// ParsePreprocessor cleans raw text before block parsing.
type ParsePreprocessor struct{}

// PreprocessMarkdown compresses blank lines, deletes underscore rules and
// trims outer whitespace. Order matters: underscore deletion can leave
// trailing whitespace that the final trim removes.
func (p *ParsePreprocessor) PreprocessMarkdown(content string) string {
	content = compressBlankLines(content)
	content = deleteUnderscoreRuns(content)
	return strings.TrimSpace(content)
}

// compressBlankLines limits consecutive newlines to 2.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// deleteUnderscoreRuns removes runs of 3 or more underscores entirely.
func deleteUnderscoreRuns(content string) string {
	return underscoreRun.ReplaceAllString(content, "")
}
