package storage

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

// PreviewWidth is the display width of a search result preview.
const PreviewWidth = 100

// MessageMatch represents a search result within the conversation
type MessageMatch struct {
	MessageIndex int
	Role         string
	Content      string
	Preview      string
	Timestamp    time.Time
	Score        int
}

// SearchMessages fuzzy-matches query against message contents, best
// match first. An empty query matches nothing.
func SearchMessages(messages []Message, query string) []MessageMatch {
	if strings.TrimSpace(query) == "" {
		return []MessageMatch{}
	}

	targets := make([]string, len(messages))
	for i, msg := range messages {
		targets[i] = msg.Content
	}

	results := fuzzy.Find(query, targets)
	matches := make([]MessageMatch, 0, len(results))
	for _, r := range results {
		msg := messages[r.Index]
		matches = append(matches, MessageMatch{
			MessageIndex: r.Index,
			Role:         msg.Role,
			Content:      msg.Content,
			Preview:      Preview(msg.Content, PreviewWidth),
			Timestamp:    msg.Timestamp,
			Score:        r.Score,
		})
	}

	return matches
}

// Preview flattens content to one line and truncates it to width cells.
func Preview(content string, width int) string {
	line := strings.Join(strings.Fields(content), " ")
	if runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, "...")
}
