package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type shortcut struct {
	key  string
	desc string
}

var (
	globalShortcuts = []shortcut{
		{"Alt+R", "Reset conversation"},
		{"Alt+F", "Search conversation"},
		{"Alt+X", "Export transcript"},
		{"Alt+A", "About"},
		{"Alt+H", "Toggle this help"},
		{"Alt+Q", "Quit"},
	}

	navigationShortcuts = []shortcut{
		{"Alt+J/K", "Half page down/up"},
		{"PgDn/PgUp", "Full page down/up"},
		{"Alt+g", "Jump to top"},
		{"Alt+G", "Jump to bottom"},
	}

	chatShortcuts = []shortcut{
		{"Enter", "Send message"},
		{"Alt+Enter", "New line"},
		{"Alt+Y", "Copy last reply"},
		{"Alt+C", "Copy conversation"},
	}
)

func shortcutSection(heading string, shortcuts []shortcut) string {
	blue := lipgloss.NewStyle().Foreground(accentColor)

	lines := []string{blue.Render("## " + heading)}
	for _, s := range shortcuts {
		lines = append(lines, fmt.Sprintf("• %-11s %s", s.key, s.desc))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHelpModal(width, height int) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("foliochat - Keyboard Shortcuts")

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().Foreground(accentColor).Render("## Tips"),
		wordWrap("• Links show their address in parentheses. Select them with the mouse to open.", 34),
		"• One question at a time",
	)

	column1 := lipgloss.JoinVertical(
		lipgloss.Left,
		shortcutSection("Global Actions", globalShortcuts),
		"",
		tips,
	)

	column2 := lipgloss.JoinVertical(
		lipgloss.Left,
		shortcutSection("Chat Navigation", navigationShortcuts),
		"",
		shortcutSection("Chat Actions", chatShortcuts),
	)

	columnStyle := lipgloss.NewStyle().Width(40).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"  ",
		columnStyle.Render(column2),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render("Press Alt+H or Esc to close this help")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
