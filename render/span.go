// Package render turns raw chat message text into styled spans and
// structural blocks. Everything here is a pure function of its input.
package render

import "regexp"

// SpanKind identifies the style of an inline span.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanLink
	SpanEmphasis
)

func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanLink:
		return "link"
	case SpanEmphasis:
		return "emphasis"
	default:
		return "unknown"
	}
}

// Span is one styled fragment of a single line.
// Target is only set for SpanLink.
type Span struct {
	Kind   SpanKind
	Text   string
	Target string
}

func Text(s string) Span { return Span{Kind: SpanText, Text: s} }

func Link(display, target string) Span {
	return Span{Kind: SpanLink, Text: display, Target: target}
}

func Emphasis(s string) Span { return Span{Kind: SpanEmphasis, Text: s} }

// inlineRegex alternates, in priority order: markdown link, single-asterisk
// emphasis, bare absolute URL. Only one alternative can start at any given
// byte ('[', '*' or 'h'), so leftmost-first matching is unambiguous.
var inlineRegex = regexp.MustCompile(`\[([^\]\n]+)\]\(([^)\s]+)\)|\*([^*\n]+)\*|(https?://\S+)`)

// Tokenize splits one line into spans covering it with no gaps or overlaps.
// Unmatched '[' or '*' characters stay in SpanText. An empty line yields nil.
func Tokenize(line string) []Span {
	if line == "" {
		return nil
	}

	var spans []Span
	pos := 0

	for _, m := range inlineRegex.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[0], m[1]
		if start > pos {
			spans = append(spans, Text(line[pos:start]))
		}

		switch {
		case m[2] >= 0:
			spans = append(spans, Link(line[m[2]:m[3]], line[m[4]:m[5]]))
		case m[6] >= 0:
			spans = append(spans, Emphasis(line[m[6]:m[7]]))
		default:
			url := line[m[8]:m[9]]
			spans = append(spans, Link(url, url))
		}

		pos = end
	}

	if pos < len(line) {
		spans = append(spans, Text(line[pos:]))
	}

	return spans
}

// PlainText flattens spans back into their display text.
func PlainText(spans []Span) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range spans {
		b = append(b, s.Text...)
	}
	return string(b)
}
