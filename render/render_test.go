package render

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Span
	}{
		{
			name:     "empty line",
			input:    "",
			expected: nil,
		},
		{
			name:     "plain text",
			input:    "just some words, nothing special",
			expected: []Span{Text("just some words, nothing special")},
		},
		{
			name:  "link and emphasis",
			input: "See [docs](http://x.test/a) for *details*",
			expected: []Span{
				Text("See "),
				Link("docs", "http://x.test/a"),
				Text(" for "),
				Emphasis("details"),
			},
		},
		{
			name:  "bare url",
			input: "visit https://example.com now",
			expected: []Span{
				Text("visit "),
				Link("https://example.com", "https://example.com"),
				Text(" now"),
			},
		},
		{
			name:     "url inside link label is not split",
			input:    "[https://a.test](https://b.test)",
			expected: []Span{Link("https://a.test", "https://b.test")},
		},
		{
			name:     "url inside emphasis stays emphasis",
			input:    "*see http://a.test*",
			expected: []Span{Emphasis("see http://a.test")},
		},
		{
			name:     "unmatched bracket",
			input:    "array[0] is first",
			expected: []Span{Text("array[0] is first")},
		},
		{
			name:     "link without target stays literal",
			input:    "[label] (x)",
			expected: []Span{Text("[label] (x)")},
		},
		{
			name:     "unmatched asterisk",
			input:    "5 * 3 = 15",
			expected: []Span{Text("5 * 3 = 15")},
		},
		{
			name:     "asterisk with partner on next line only",
			input:    "*open",
			expected: []Span{Text("*open")},
		},
		{
			name:  "double asterisks keep outer markers",
			input: "**bold**",
			expected: []Span{
				Text("*"),
				Emphasis("bold"),
				Text("*"),
			},
		},
		{
			name:  "whitespace preserved verbatim",
			input: "  two  spaces *x*  ",
			expected: []Span{
				Text("  two  spaces "),
				Emphasis("x"),
				Text("  "),
			},
		},
		{
			name:  "adjacent matches",
			input: "*a*[b](c)http://d.test",
			expected: []Span{
				Emphasis("a"),
				Link("b", "c"),
				Link("http://d.test", "http://d.test"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q)\n got: %#v\nwant: %#v", tt.input, got, tt.expected)
			}
			if PlainText(got) == "" && tt.input != "" {
				t.Errorf("Tokenize(%q) lost all text", tt.input)
			}
		})
	}
}

func TestTokenizeCoversWholeLine(t *testing.T) {
	// Without links or emphasis the display text must equal the input.
	lines := []string{
		"hello",
		"a [ b ] c",
		"x * y",
		"tabs\tand spaces",
	}
	for _, line := range lines {
		spans := Tokenize(line)
		if len(spans) != 1 || spans[0].Kind != SpanText || spans[0].Text != line {
			t.Errorf("Tokenize(%q) = %#v, want single text span", line, spans)
		}
	}
}

func TestStructure(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Block
	}{
		{
			name:  "bullets then paragraph",
			input: "- a\n- b\nc",
			expected: []Block{
				List([]Span{Text("a")}, []Span{Text("b")}),
				Paragraph([]Span{Text("c")}),
			},
		},
		{
			name:  "heading blank paragraph",
			input: "## Title\n\ntext",
			expected: []Block{
				Heading(2, []Span{Text("Title")}),
				Blank(),
				Paragraph([]Span{Text("text")}),
			},
		},
		{
			name:     "rule alone",
			input:    "---",
			expected: []Block{Rule()},
		},
		{
			name:     "long rule with surrounding whitespace",
			input:    "  -----  ",
			expected: []Block{Rule()},
		},
		{
			name:     "empty content is one blank line",
			input:    "",
			expected: []Block{Blank()},
		},
		{
			name:  "rule closes open list",
			input: "* one\n---\n* two",
			expected: []Block{
				List([]Span{Text("one")}),
				Rule(),
				List([]Span{Text("two")}),
			},
		},
		{
			name:  "heading closes open list",
			input: "- one\n# Next",
			expected: []Block{
				List([]Span{Text("one")}),
				Heading(1, []Span{Text("Next")}),
			},
		},
		{
			name:  "blank closes open list",
			input: "- one\n   \n- two",
			expected: []Block{
				List([]Span{Text("one")}),
				Blank(),
				List([]Span{Text("two")}),
			},
		},
		{
			name:  "indented bullets and inline spans",
			input: "  - see [site](https://x.test)\n  * *hot* take",
			expected: []Block{
				List(
					[]Span{Text("see "), Link("site", "https://x.test")},
					[]Span{Emphasis("hot"), Text(" take")},
				),
			},
		},
		{
			name:     "level six heading",
			input:    "###### deep",
			expected: []Block{Heading(6, []Span{Text("deep")})},
		},
		{
			name:     "seven hashes is a paragraph",
			input:    "####### too deep",
			expected: []Block{Paragraph([]Span{Text("####### too deep")})},
		},
		{
			name:     "hash without space is a paragraph",
			input:    "#hashtag",
			expected: []Block{Paragraph([]Span{Text("#hashtag")})},
		},
		{
			name:     "paragraph keeps leading whitespace",
			input:    "   indented",
			expected: []Block{Paragraph([]Span{Text("   indented")})},
		},
		{
			name:     "emphasis line is not a bullet",
			input:    "*note* this",
			expected: []Block{Paragraph([]Span{Emphasis("note"), Text(" this")})},
		},
		{
			name:     "bare dash is a paragraph",
			input:    "-",
			expected: []Block{Paragraph([]Span{Text("-")})},
		},
		{
			name:  "crlf line endings",
			input: "# T\r\n- a\r\n",
			expected: []Block{
				Heading(1, []Span{Text("T")}),
				List([]Span{Text("a")}),
				Blank(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Structure(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Structure(%q)\n got: %#v\nwant: %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStructureIsDeterministic(t *testing.T) {
	content := "# Hi\n\n- [a](http://a.test)\n- *b*\n---\nvisit https://c.test today\n"

	first := Structure(content)
	second := Structure(content)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Structure is not deterministic:\n%#v\n%#v", first, second)
	}
}

func TestHeadingClampsLevel(t *testing.T) {
	if got := Heading(0, nil).Level; got != 1 {
		t.Errorf("Heading(0).Level = %d, want 1", got)
	}
	if got := Heading(9, nil).Level; got != 6 {
		t.Errorf("Heading(9).Level = %d, want 6", got)
	}
}
