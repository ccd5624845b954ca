package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"foliochat/model"
	"foliochat/render"
)

const (
	bulletPrefix = "  • "
	maxRuleWidth = 60
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	a.viewport.SetContent(a.renderConversation())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// renderConversation lays out every message. Assistant bodies are
// structured from their content on each call.
func (a *AppView) renderConversation() string {
	messages := a.dataModel.Session.Messages()
	width := a.contentWidth()

	var content strings.Builder
	for i, msg := range messages {
		content.WriteString(a.renderMessage(i, msg, width))
	}

	if a.dataModel.Session.Pending() {
		timestamp := DimStyle.Render(time.Now().Format("[15:04]"))
		content.WriteString(fmt.Sprintf("%s %s\n%s %s\n\n",
			timestamp,
			AssistantStyle.Render("Assistant"),
			a.loadingSpinner.View(),
			DimStyle.Render(waitingPlaceholder),
		))
	}

	return content.String()
}

func (a *AppView) renderMessage(idx int, msg Message, width int) string {
	highlightPrefix := ""
	if idx == a.highlightedMessageIdx && a.highlightFlashCount%2 == 1 {
		highlightPrefix = HighlightStyle.Render(">>> ")
	}

	timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

	if msg.Role == model.RoleUser {
		return formatUserMessage(highlightPrefix, timestamp, UserStyle.Render("You"), wrapText(msg.Content, width-2))
	}

	role := AssistantStyle.Render("Assistant")
	if msg.Failed {
		role = DangerStyle.Render("Assistant ✗")
	}

	body := renderBlocks(render.Structure(msg.Content), width)
	return fmt.Sprintf("%s%s %s\n%s\n\n", highlightPrefix, timestamp, role, body)
}

// messageOffset returns the viewport line on which message idx starts.
func (a *AppView) messageOffset(idx int) int {
	messages := a.dataModel.Session.Messages()
	width := a.contentWidth()

	lines := 0
	for i := 0; i < idx && i < len(messages); i++ {
		lines += strings.Count(a.renderMessage(i, messages[i], width), "\n")
	}
	return lines
}

func (a *AppView) contentWidth() int {
	if a.viewport.Width > 0 {
		return a.viewport.Width
	}
	return 80
}

func formatUserMessage(highlightPrefix, timestamp, role, content string) string {
	bar := UserStyle.Render("┃")

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s%s %s %s\n", highlightPrefix, bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

// renderBlocks draws structured message content at the given width.
func renderBlocks(blocks []render.Block, width int) string {
	lines := make([]string, 0, len(blocks))

	for _, b := range blocks {
		switch b.Kind {
		case render.BlockHeading:
			style := HeadingStyle
			if b.Level == 1 {
				style = TopHeadingStyle
			}
			lines = append(lines, style.Render(wrapText(render.PlainText(b.Spans), width)))

		case render.BlockList:
			for _, item := range b.Items {
				lines = append(lines, renderListItem(item, width))
			}

		case render.BlockRule:
			lines = append(lines, RuleStyle.Render(strings.Repeat("─", min(width, maxRuleWidth))))

		case render.BlockBlank:
			lines = append(lines, "")

		default:
			lines = append(lines, wrapText(renderSpans(b.Spans), width))
		}
	}

	return strings.Join(lines, "\n")
}

func renderListItem(spans []render.Span, width int) string {
	indent := runewidth.StringWidth(bulletPrefix)
	wrapped := wrapText(renderSpans(spans), width-indent)

	itemLines := strings.Split(wrapped, "\n")
	for i := range itemLines {
		if i == 0 {
			itemLines[i] = bulletPrefix + itemLines[i]
		} else {
			itemLines[i] = strings.Repeat(" ", indent) + itemLines[i]
		}
	}
	return strings.Join(itemLines, "\n")
}

// renderSpans styles one line of inline spans. Links show their label
// followed by the target when the two differ.
func renderSpans(spans []render.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case render.SpanLink:
			sb.WriteString(LinkStyle.Render(s.Text))
			if s.Target != s.Text {
				sb.WriteString(" ")
				sb.WriteString(DimStyle.Render("(" + s.Target + ")"))
			}
		case render.SpanEmphasis:
			sb.WriteString(EmphasisStyle.Render(s.Text))
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// wrapText word-wraps styled text to width cells.
func wrapText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
