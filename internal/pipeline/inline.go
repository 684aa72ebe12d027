package pipeline

import "strings"

// SpanKind identifies the variant of an inline Span.
type SpanKind int

// Span kinds.
const (
	SpanPlain SpanKind = iota
	SpanCode
	SpanBold
	SpanItalic
	SpanLink
)

// String returns the lower-case name of the kind.
func (k SpanKind) String() string {
	switch k {
	case SpanPlain:
		return "plain"
	case SpanCode:
		return "code"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanLink:
		return "link"
	default:
		return "unknown"
	}
}

// Span is one inline token of paragraph or list item text.
// URL is set only for SpanLink. Children is set when a bold or italic span
// wraps a link, or a link text carries emphasis; Text is then the visible
// text of the children.
type Span struct {
	Kind     SpanKind
	Text     string
	URL      string
	Children []Span
}

// Plain returns a plain text span.
func Plain(text string) Span { return Span{Kind: SpanPlain, Text: text} }

// Code returns an inline code span.
func Code(text string) Span { return Span{Kind: SpanCode, Text: text} }

// Bold returns a bold span.
func Bold(text string) Span { return Span{Kind: SpanBold, Text: text} }

// Italic returns an italic span.
func Italic(text string) Span { return Span{Kind: SpanItalic, Text: text} }

// Link returns a link span.
func Link(text, url string) Span { return Span{Kind: SpanLink, Text: text, URL: url} }

// Nested returns a span of kind whose content is children.
func Nested(kind SpanKind, url string, children ...Span) Span {
	return Span{Kind: kind, Text: SpansText(children), URL: url, Children: children}
}

// Format tokenizes inline markdown into spans.
//
// `code` is recognized first and its content is never scanned again. In the
// text left between code spans, **bold** is matched before *italic*, and
// both treat every [text](url) as opaque: a link may sit inside emphasis
// ("**[a](u)**" is a bold span holding the link) and emphasis may sit
// inside link text. Emphasis does not nest in emphasis: "*a **b** c*"
// keeps its outer asterisks as plain text. Unterminated markers stay
// literal. Every level runs in linear time.
func Format(text string) []Span {
	return codeLevel.scan(text, text)
}

// level matches one inline construct and hands unmatched text to next, or
// to tail after the last level of a chain.
type level struct {
	match func(s, view string, i int, c *closers) (span Span, end int, ok bool)
	open  byte
	next  *level
	tail  func(s string) []Span
}

var (
	linkLevel   = &level{open: '['}
	italicLevel = &level{open: '*'}
	boldLevel   = &level{open: '*'}
	codeLevel   = &level{open: '`'}
)

// The matchers reach back into the chain (link text is scanned for
// emphasis and emphasis for links), so the levels are wired here.
func init() {
	linkLevel.match = matchLink
	italicLevel.match, italicLevel.tail = matchItalic, formatLinks
	boldLevel.match, boldLevel.next = matchBold, italicLevel
	codeLevel.match, codeLevel.tail = matchCode, formatText
}

// formatText formats text free of inline code. Emphasis is matched over a
// view of s with every link blanked out, so markers inside a link are
// invisible to it.
func formatText(s string) []Span {
	return boldLevel.scan(s, maskLinks(s))
}

// formatLinks formats text free of code and emphasis markers.
func formatLinks(s string) []Span {
	return linkLevel.scan(s, s)
}

// maskLinks returns s with the bytes of every link replaced by a byte no
// level opens or closes on. The result has the length of s.
func maskLinks(s string) string {
	var b []byte
	c := &closers{}
	for i := 0; i < len(s); {
		j := strings.IndexByte(s[i:], '[')
		if j < 0 {
			break
		}
		i += j
		_, end, ok := matchLink(s, s, i, c)
		if !ok {
			i++
			continue
		}
		if b == nil {
			b = []byte(s)
		}
		for k := i; k < end; k++ {
			b[k] = maskByte
		}
		i = end
	}
	if b == nil {
		return s
	}
	return string(b)
}

const maskByte = 0

// scan walks view from one opening byte to the next, emitting matched spans
// and delegating the text between them to the next level. view has the
// length of s and decides where markers are; span content comes from s.
func (l *level) scan(s, view string) []Span {
	var spans []Span
	c := &closers{}
	last := 0

	for i := 0; i < len(view); {
		j := strings.IndexByte(view[i:], l.open)
		if j < 0 {
			break
		}
		i += j

		span, end, ok := l.match(s, view, i, c)
		if !ok {
			i++
			continue
		}

		spans = append(spans, l.rest(s[last:i], view[last:i])...)
		spans = append(spans, span)
		i, last = end, end
	}

	return append(spans, l.rest(s[last:], view[last:])...)
}

// rest formats text that this level left unmatched.
func (l *level) rest(s, view string) []Span {
	switch {
	case s == "":
		return nil
	case l.next != nil:
		return l.next.scan(s, view)
	case l.tail != nil:
		return l.tail(s)
	default:
		return []Span{Plain(s)}
	}
}

// emphasis builds a bold or italic span, keeping any links in content.
func emphasis(kind SpanKind, content string) Span {
	children := formatLinks(content)
	if len(children) == 1 && children[0].Kind == SpanPlain {
		return Span{Kind: kind, Text: content}
	}
	return Nested(kind, "", children...)
}

// closers memoizes the next index of a closing byte so repeated failed
// openers do not rescan the same stretch of text.
type closers struct {
	at   [256]int
	from [256]int
	set  [256]bool
}

// next returns the index of b at or after i in s, or -1.
func (c *closers) next(s string, i int, b byte) int {
	if c.set[b] && c.from[b] <= i && (c.at[b] >= i || c.at[b] < 0) {
		return c.at[b]
	}
	at := -1
	if i < len(s) {
		if j := strings.IndexByte(s[i:], b); j >= 0 {
			at = i + j
		}
	}
	c.at[b], c.from[b], c.set[b] = at, i, true
	return at
}

// matchCode matches `x` with at least one byte between the backticks.
func matchCode(s, view string, i int, c *closers) (Span, int, bool) {
	j := c.next(view, i+1, '`')
	if j <= i+1 {
		return Span{}, 0, false
	}
	return Code(s[i+1 : j]), j + 1, true
}

// matchBold matches **x** where x is non-empty and contains no asterisk
// outside a link.
func matchBold(s, view string, i int, c *closers) (Span, int, bool) {
	if i+1 >= len(view) || view[i+1] != '*' {
		return Span{}, 0, false
	}
	j := c.next(view, i+2, '*')
	if j <= i+2 || j+1 >= len(view) || view[j+1] != '*' {
		return Span{}, 0, false
	}
	return emphasis(SpanBold, s[i+2:j]), j + 2, true
}

// matchItalic matches *x* where x is non-empty and contains no asterisk
// outside a link.
func matchItalic(s, view string, i int, c *closers) (Span, int, bool) {
	j := c.next(view, i+1, '*')
	if j <= i+1 {
		return Span{}, 0, false
	}
	return emphasis(SpanItalic, s[i+1:j]), j + 1, true
}

// matchLink matches [text](url) with non-empty text and url.
// Text runs to the first ']' and url to the first ')'. Emphasis in the text
// is kept as children.
func matchLink(s, view string, i int, c *closers) (Span, int, bool) {
	j := c.next(view, i+1, ']')
	if j <= i+1 || j+1 >= len(view) || view[j+1] != '(' {
		return Span{}, 0, false
	}
	k := c.next(view, j+2, ')')
	if k <= j+2 {
		return Span{}, 0, false
	}
	text, url := s[i+1:j], s[j+2:k]
	children := boldLevel.scan(text, text)
	if len(children) == 1 && children[0].Kind == SpanPlain {
		return Link(text, url), k + 1, true
	}
	return Nested(SpanLink, url, children...), k + 1, true
}

// SpansText concatenates the visible text of spans, dropping markers and URLs.
func SpansText(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}
