package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foliochat/model"
	"foliochat/storage"
)

// Border(2) + Padding(2) + Title(1) + Blank(1) + SearchInput(1) + Blank(1) +
// "Found X matches:"(1) + Blank(1) + Footer(1) + Blank(1) = 12 lines
const (
	searchFixedOverhead  = 12
	searchScrollReserve  = 4 // "↑ X more above" (2) + "↓ X more below" (2)
	searchLinesPerResult = 6
)

// visibleSearchResults is how many results fit in a modal of the given height.
func visibleSearchResults(height int) int {
	availableLines := max(height-searchFixedOverhead-searchScrollReserve, 3)
	return max(availableLines/searchLinesPerResult, 1)
}

func renderMessageSearch(searchInput textinput.Model, results []storage.MessageMatch, selectedIdx, scrollIdx, width, height int) string {
	modalWidth := min(width-4, 100)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2)

	title := TitleStyle.Render("🔍 Search Conversation")
	searchView := searchInput.View()

	resultsView := ""
	if len(results) == 0 {
		if searchInput.Value() == "" {
			resultsView = DimStyle.Render("Type to search messages in this conversation...")
		} else {
			resultsView = DimStyle.Render("No matches found")
		}
	} else {
		startIdx := scrollIdx
		endIdx := min(scrollIdx+visibleSearchResults(height), len(results))

		resultsView = fmt.Sprintf("Found %d matches:\n\n", len(results))

		if startIdx > 0 {
			resultsView += DimStyle.Render(fmt.Sprintf("↑ %d more above\n\n", startIdx))
		}

		for i := startIdx; i < endIdx; i++ {
			match := results[i]

			roleStyle := UserStyle
			if match.Role == string(model.RoleAssistant) {
				roleStyle = AssistantStyle
			}

			matchText := fmt.Sprintf("%s [%s]\n  %s",
				roleStyle.Render(model.RoleLabel(model.Role(match.Role))),
				match.Timestamp.Format("Jan 2, 3:04 PM"),
				match.Preview,
			)

			if i == selectedIdx {
				matchText = SelectedStyle.Render("> " + matchText)
			} else {
				matchText = "  " + matchText
			}

			resultsView += matchText + "\n\n"
		}

		if endIdx < len(results) {
			resultsView += DimStyle.Render(fmt.Sprintf("↓ %d more below", len(results)-endIdx))
		}
	}

	footer := FormatFooter("Type", "to search", "↑/↓", "Navigate", "Enter", "Jump", "Esc", "Close")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		searchView,
		"",
		resultsView,
		"",
		footer,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		modalStyle.Width(modalWidth).Render(content))
}

func (a AppView) handleMessageSearchUpdate(msg tea.KeyMsg) (AppView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showMessageSearch = false
		a.messageSearchInput.Blur()
		return a, nil

	case "up", "alt+k":
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
		}
		if a.selectedSearchIdx < a.messageSearchScrollIdx {
			a.messageSearchScrollIdx = a.selectedSearchIdx
		}
		return a, nil

	case "down", "alt+j":
		if a.selectedSearchIdx < len(a.messageSearchResults)-1 {
			a.selectedSearchIdx++
		}
		if visible := visibleSearchResults(a.height); a.selectedSearchIdx >= a.messageSearchScrollIdx+visible {
			a.messageSearchScrollIdx = a.selectedSearchIdx - visible + 1
		}
		return a, nil

	case "enter":
		if a.selectedSearchIdx < 0 || a.selectedSearchIdx >= len(a.messageSearchResults) {
			return a, nil
		}
		messageIdx := a.messageSearchResults[a.selectedSearchIdx].MessageIndex

		a.highlightedMessageIdx = messageIdx
		a.highlightFlashCount = 1
		a.showMessageSearch = false
		a.messageSearchInput.Blur()
		a.updateViewportContent(false)

		viewportHeight := a.viewport.Height
		centerOffset := max(a.messageOffset(messageIdx)-viewportHeight/2, 0)
		if totalLines := a.viewport.TotalLineCount(); centerOffset > totalLines-viewportHeight {
			centerOffset = max(totalLines-viewportHeight, 0)
		}
		a.viewport.SetYOffset(centerOffset)

		return a, tea.Tick(flashInterval, func(time.Time) tea.Msg {
			return flashTickMsg{}
		})
	}

	var cmd tea.Cmd
	a.messageSearchInput, cmd = a.messageSearchInput.Update(msg)
	a.messageSearchResults = a.dataModel.SearchMessages(a.messageSearchInput.Value())
	a.selectedSearchIdx = 0
	a.messageSearchScrollIdx = 0
	return a, cmd
}
