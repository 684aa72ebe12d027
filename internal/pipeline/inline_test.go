package pipeline

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "plain only",
			input: "just words",
			want:  []Span{Plain("just words")},
		},
		{
			name:  "italic and code",
			input: "Some *text* with `code`.",
			want: []Span{
				Plain("Some "), Italic("text"), Plain(" with "), Code("code"), Plain("."),
			},
		},
		{
			name:  "bold at start",
			input: "**bold** text",
			want:  []Span{Bold("bold"), Plain(" text")},
		},
		{
			name:  "link",
			input: "see [docs](https://example.com/a)",
			want:  []Span{Plain("see "), Link("docs", "https://example.com/a")},
		},
		{
			name:  "all four kinds",
			input: "a `b` **c** *d* [e](f)",
			want: []Span{
				Plain("a "), Code("b"), Plain(" "), Bold("c"), Plain(" "),
				Italic("d"), Plain(" "), Link("e", "f"),
			},
		},
		{
			name:  "code content is never scanned",
			input: "`a *b* [c](d)`",
			want:  []Span{Code("a *b* [c](d)")},
		},
		{
			name:  "link inside bold",
			input: "**[a](u)**",
			want:  []Span{Nested(SpanBold, "", Link("a", "u"))},
		},
		{
			name:  "link inside italic with text around it",
			input: "*see [a](u) now*",
			want:  []Span{Nested(SpanItalic, "", Plain("see "), Link("a", "u"), Plain(" now"))},
		},
		{
			name:  "italic inside link text",
			input: "[*a*](u)",
			want:  []Span{Nested(SpanLink, "u", Italic("a"))},
		},
		{
			name:  "links in and out of emphasis",
			input: "[*a*](u) and **[b](v)**",
			want: []Span{
				Nested(SpanLink, "u", Italic("a")), Plain(" and "), Nested(SpanBold, "", Link("b", "v")),
			},
		},
		{
			name:  "asterisk in a link url does not close emphasis",
			input: "*a [b](u*v) c*",
			want:  []Span{Nested(SpanItalic, "", Plain("a "), Link("b", "u*v"), Plain(" c"))},
		},
		{
			name:  "emphasis crossing a link boundary stays literal",
			input: "*a [b*](u)",
			want:  []Span{Plain("*a "), Link("b*", "u")},
		},
		{
			name:  "bold inside italic keeps outer markers",
			input: "*a **b** c*",
			want:  []Span{Plain("*a "), Bold("b"), Plain(" c*")},
		},
		{
			name:  "unterminated code",
			input: "`oops",
			want:  []Span{Plain("`oops")},
		},
		{
			name:  "empty code",
			input: "``",
			want:  []Span{Plain("``")},
		},
		{
			name:  "lone asterisks",
			input: "**",
			want:  []Span{Plain("**")},
		},
		{
			name:  "link needs adjacent parenthesis",
			input: "[a] (b)",
			want:  []Span{Plain("[a] (b)")},
		},
		{
			name:  "link needs text",
			input: "[](u)",
			want:  []Span{Plain("[](u)")},
		},
		{
			name:  "link needs url",
			input: "[a]()",
			want:  []Span{Plain("[a]()")},
		},
		{
			name:  "multiple code spans",
			input: "`x` and `y`",
			want:  []Span{Code("x"), Plain(" and "), Code("y")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Format(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Format(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat_PlainTextPreserved(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"no markers at all",
		"unicode नमस्ते తెలుగు",
		"trailing space ",
	}

	for _, in := range inputs {
		if got := SpansText(Format(in)); got != in {
			t.Errorf("SpansText(Format(%q)) = %q", in, got)
		}
	}
}

func TestFormat_LinearOnPathologicalInput(t *testing.T) {
	t.Parallel()

	// Thousands of unterminated openers must not rescan the tail each time.
	input := "`" + strings.Repeat("[a", 20000) + "*"
	got := SpansText(Format(input))
	if got != input {
		t.Errorf("unterminated markers were not kept literally")
	}
}

func TestSpanKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind SpanKind
		want string
	}{
		{SpanPlain, "plain"},
		{SpanCode, "code"},
		{SpanBold, "bold"},
		{SpanItalic, "italic"},
		{SpanLink, "link"},
		{SpanKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("SpanKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
