package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for list item cleanup.
var (
	doubleUnderscore = regexp.MustCompile(`__+`)

	// Chapter title cleanup
	mdSuffix      = regexp.MustCompile(`\.md.*$`)
	leadingDigits = regexp.MustCompile(`^\d+[\s_]*`)
	dashRun       = regexp.MustCompile(`[_-]+`)
)

var defaultPreprocessor MarkdownPreprocessor = &ParsePreprocessor{}

// Parse turns raw markdown into a Document. It never fails: malformed input
// degrades to paragraphs and an unterminated fence runs to end of input.
func Parse(raw string) Document {
	p := &blockParser{lines: strings.Split(defaultPreprocessor.PreprocessMarkdown(raw), "\n")}
	return Document{Blocks: p.parse()}
}

// blockParser scans lines with a cursor. Each parse* method consumes the
// lines of one block and leaves the cursor on the next unread line.
type blockParser struct {
	lines []string
	pos   int
}

func (p *blockParser) parse() []Block {
	var blocks []Block
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		trimmed := strings.TrimSpace(line)

		switch {
		case isBlankLine(line):
			p.pos++
		case IsFenceOpen(trimmed):
			blocks = append(blocks, p.parseFence(trimmed))
		case isHeader(trimmed):
			level, text := splitHeader(trimmed)
			blocks = append(blocks, Header{Level: level, Text: strings.ReplaceAll(text, "_", " ")})
			p.pos++
		case isListItem(trimmed):
			blocks = append(blocks, p.parseList(trimmed))
		default:
			blocks = append(blocks, Paragraph{Text: trimmed})
			p.pos++
		}
	}
	return blocks
}

// parseFence consumes the opening line, the verbatim content lines and the
// closing delimiter if there is one.
func (p *blockParser) parseFence(opening string) CodeFence {
	fence := CodeFence{Language: fenceLanguage(opening)}
	p.pos++

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		if IsFenceClose(line) {
			break
		}
		fence.Lines = append(fence.Lines, line)
	}

	fence.IsDiagram = isDiagram(fence.Language, fence.Lines)
	return fence
}

// isDiagram detects flowchart fences by language tag or content.
func isDiagram(language string, lines []string) bool {
	lang := strings.ToLower(language)
	if strings.Contains(lang, "mermaid") || strings.Contains(lang, "flowchart") {
		return true
	}
	for _, l := range lines {
		if strings.Contains(l, "flowchart") || strings.Contains(l, "graph") {
			return true
		}
	}
	return false
}

// parseList consumes item lines, tolerating blank lines, until the first
// non-blank line that carries no list marker.
func (p *blockParser) parseList(first string) ListBlock {
	list := ListBlock{Ordered: isOrderedItem(first)}

	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if trimmed == "" {
			p.pos++
			continue
		}
		if !isListItem(trimmed) {
			break
		}
		list.Items = append(list.Items, newListItem(stripItemMarker(trimmed)))
		p.pos++
	}

	return list
}

// newListItem normalizes underscores and detects chapter references.
func newListItem(text string) ListItem {
	text = doubleUnderscore.ReplaceAllString(text, "_")
	text = strings.TrimSpace(strings.ReplaceAll(text, "_", " "))

	item := ListItem{Text: text}
	if isChapterReference(text) {
		item.IsChapterReference = true
		item.DisplayTitle = chapterTitle(text)
	}
	return item
}

// isChapterReference reports whether item text names a tutorial file.
func isChapterReference(text string) bool {
	if strings.Contains(text, ".md") {
		return true
	}
	return text != "" && text[0] >= '0' && text[0] <= '9'
}

// chapterTitle turns "02 getting-started.md" into "getting started".
func chapterTitle(text string) string {
	title := mdSuffix.ReplaceAllString(text, "")
	title = leadingDigits.ReplaceAllString(title, "")
	title = dashRun.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}
