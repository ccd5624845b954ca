package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const asciiArt = `
  __       _ _            _           _
 / _| ___ | (_) ___   ___| |__   __ _| |_
| |_ / _ \| | |/ _ \ / __| '_ \ / _' | __|
|  _| (_) | | | (_) | (__| | | | (_| | |_
|_|  \___/|_|_|\___/ \___|_| |_|\__,_|\__|
`

var features = []string{
	"• Ask the AGNETICT AI portfolio assistant anything",
	"• Replies rendered with headings, lists, links and emphasis",
	"• Fuzzy search through the conversation",
	"• Export conversations as JSON transcripts",
}

func renderAboutModal(width, height int, version, license string) string {
	var sb strings.Builder

	asciiStyle := lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true).
		Align(lipgloss.Center)

	sb.WriteString(asciiStyle.Render(asciiArt))
	sb.WriteString("\n\n")

	featureStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	for _, feature := range features {
		sb.WriteString(featureStyle.Render(feature))
		sb.WriteString("\n")
	}

	sb.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)

	sb.WriteString(labelStyle.Render("Version: "))
	sb.WriteString(featureStyle.Render(version))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("License: "))
	sb.WriteString(featureStyle.Render(license))
	sb.WriteString("\n\n\n")

	sb.WriteString(featureStyle.Render("Press Esc or Alt+A to close"))
	sb.WriteString("\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(sb.String()))
}
