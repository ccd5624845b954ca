package render

import (
	"regexp"
	"strings"
)

// BlockKind identifies one structural unit of a rendered message.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	BlockRule
	BlockBlank
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockList:
		return "list"
	case BlockRule:
		return "rule"
	case BlockBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Block is a tagged variant:
//   - BlockHeading uses Level (1-6) and Spans
//   - BlockList uses Items, one span sequence per bullet line
//   - BlockParagraph uses Spans
//   - BlockRule and BlockBlank carry nothing
type Block struct {
	Kind  BlockKind
	Level int
	Spans []Span
	Items [][]Span
}

func Heading(level int, spans []Span) Block {
	return Block{Kind: BlockHeading, Level: clampLevel(level), Spans: spans}
}

func List(items ...[]Span) Block { return Block{Kind: BlockList, Items: items} }

func Rule() Block { return Block{Kind: BlockRule} }

func Paragraph(spans []Span) Block { return Block{Kind: BlockParagraph, Spans: spans} }

func Blank() Block { return Block{Kind: BlockBlank} }

type lineKind int

const (
	lineParagraph lineKind = iota
	lineBlank
	lineRule
	lineHeading
	lineBullet
)

// classifiedLine is the result of classifyLine. text is the part of the
// line handed to Tokenize; level is only meaningful for headings.
type classifiedLine struct {
	kind  lineKind
	level int
	text  string
}

var (
	ruleRegex    = regexp.MustCompile(`^-{3,}$`)
	headingRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletRegex  = regexp.MustCompile(`^[*-]\s+(.+)$`)
)

// lineClassifiers run in priority order; the first one that accepts wins.
var lineClassifiers = []func(line string) (classifiedLine, bool){
	classifyRule,
	classifyHeading,
	classifyBullet,
	classifyBlank,
}

func classifyRule(line string) (classifiedLine, bool) {
	if ruleRegex.MatchString(strings.TrimSpace(line)) {
		return classifiedLine{kind: lineRule}, true
	}
	return classifiedLine{}, false
}

func classifyHeading(line string) (classifiedLine, bool) {
	m := headingRegex.FindStringSubmatch(line)
	if m == nil {
		return classifiedLine{}, false
	}
	return classifiedLine{kind: lineHeading, level: clampLevel(len(m[1])), text: m[2]}, true
}

func classifyBullet(line string) (classifiedLine, bool) {
	m := bulletRegex.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return classifiedLine{}, false
	}
	return classifiedLine{kind: lineBullet, text: m[1]}, true
}

func classifyBlank(line string) (classifiedLine, bool) {
	if strings.TrimSpace(line) == "" {
		return classifiedLine{kind: lineBlank}, true
	}
	return classifiedLine{}, false
}

func classifyLine(line string) classifiedLine {
	for _, classify := range lineClassifiers {
		if c, ok := classify(line); ok {
			return c
		}
	}
	return classifiedLine{kind: lineParagraph, text: line}
}

// Structure turns a message body into blocks, one per line except that each
// contiguous run of bullet lines becomes a single BlockList. The result
// depends only on content.
func Structure(content string) []Block {
	lines := strings.Split(content, "\n")
	blocks := make([]Block, 0, len(lines))

	var items [][]Span
	flush := func() {
		if items != nil {
			blocks = append(blocks, List(items...))
			items = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		c := classifyLine(line)

		switch c.kind {
		case lineBullet:
			items = append(items, Tokenize(c.text))
		case lineRule:
			flush()
			blocks = append(blocks, Rule())
		case lineHeading:
			flush()
			blocks = append(blocks, Heading(c.level, Tokenize(c.text)))
		case lineBlank:
			flush()
			blocks = append(blocks, Blank())
		default:
			flush()
			blocks = append(blocks, Paragraph(Tokenize(c.text)))
		}
	}
	flush()

	return blocks
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
