package pipeline

import (
	"regexp"
	"strings"
)

// FenceDelimiter opens and closes a code fence.
const FenceDelimiter = "```"

// MaxHeaderLevel is the deepest header level; longer # runs are clamped to it.
const MaxHeaderLevel = 6

// Precompiled regex patterns for line classification.
var (
	// List item markers, matched against a trimmed line
	unorderedItemPattern = regexp.MustCompile(`^[-*+]\s`)
	orderedItemPattern   = regexp.MustCompile(`^\d+\.\s`)
	itemMarkerPattern    = regexp.MustCompile(`^(?:[-*+]|\d+\.)\s`)
)

// IsFenceOpen reports whether line starts a code fence.
// The trimmed line must begin with the delimiter; trailing text is the language.
func IsFenceOpen(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), FenceDelimiter)
}

// IsFenceClose reports whether line closes an open code fence.
// Only a line that is exactly the delimiter once trimmed closes a fence, so
// "```go" inside a fence is content.
func IsFenceClose(line string) bool {
	return strings.TrimSpace(line) == FenceDelimiter
}

// fenceLanguage returns the info text after the opening delimiter.
func fenceLanguage(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), FenceDelimiter))
}

// isHeader reports whether a trimmed line is a header line.
func isHeader(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#")
}

// splitHeader returns the clamped level and the text after the # run and
// one optional space.
func splitHeader(trimmed string) (int, string) {
	run := 0
	for run < len(trimmed) && trimmed[run] == '#' {
		run++
	}
	text := strings.TrimPrefix(trimmed[run:], " ")
	return clampLevel(run), text
}

// clampLevel keeps a header level inside [1, MaxHeaderLevel].
func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > MaxHeaderLevel {
		return MaxHeaderLevel
	}
	return level
}

// isListItem reports whether a trimmed line carries a list marker.
func isListItem(trimmed string) bool {
	return unorderedItemPattern.MatchString(trimmed) || orderedItemPattern.MatchString(trimmed)
}

// isOrderedItem reports whether a trimmed line carries an ordinal marker.
func isOrderedItem(trimmed string) bool {
	return orderedItemPattern.MatchString(trimmed)
}

// stripItemMarker removes the bullet or ordinal marker from a trimmed line.
func stripItemMarker(trimmed string) string {
	return itemMarkerPattern.ReplaceAllString(trimmed, "")
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
