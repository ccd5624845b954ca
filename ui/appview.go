package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"foliochat/config"
	appmodel "foliochat/model"
	"foliochat/storage"
)

const (
	inputPlaceholder   = "Ask me anything..."
	waitingPlaceholder = "Waiting for response..."
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	showHelp  bool
	showAbout bool

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	// Info modal state (export results)
	showInfoModal  bool
	infoModalTitle string
	infoModalMsg   string
	infoModalType  ModalType

	// Status bar notice (failures, copy/reset confirmations)
	notice        string
	noticeIsError bool
	noticeSeq     int

	showMessageSearch      bool
	messageSearchInput     textinput.Model
	messageSearchResults   []storage.MessageMatch
	selectedSearchIdx      int
	messageSearchScrollIdx int

	highlightedMessageIdx int
	highlightFlashCount   int
}

func NewAppView(cfg *config.Config, exchanger appmodel.Exchanger, transcripts *storage.TranscriptStorage, version, license string) AppView {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone sends (handled in Update)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	messageSearchInput := textinput.New()
	messageSearchInput.Prompt = "Search: "
	messageSearchInput.CharLimit = 100

	dataModel := appmodel.NewModel(cfg, exchanger, transcripts, version, license)

	return AppView{
		dataModel:             dataModel,
		textarea:              ta,
		viewport:              vp,
		loadingSpinner:        newLoadingSpinner(),
		messageSearchInput:    messageSearchInput,
		highlightedMessageIdx: -1,
	}
}

func newLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15")) // Bright white
	return s
}

func (a AppView) Init() tea.Cmd {
	return textarea.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading foliochat..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Info modal
	// 2. Help
	// 3. Message search
	// 4. About
	if a.showInfoModal {
		return RenderAcknowledgeModal(a.infoModalTitle, a.infoModalMsg, a.infoModalType, a.width, a.height)
	}

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if a.showMessageSearch {
		return renderMessageSearch(a.messageSearchInput, a.messageSearchResults, a.selectedSearchIdx, a.messageSearchScrollIdx, a.width, a.height)
	}

	if a.showAbout {
		return renderAboutModal(a.width, a.height, a.dataModel.Version, a.dataModel.License)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderTitle(),
		"",
		a.viewport.View(),
		a.textarea.View(),
		a.renderStatusBar(),
	)
}

// Title bar - "foliochat - AGNETICT AI | base URL"
func (a AppView) renderTitle() string {
	appText := AssistantStyle.Render("foliochat")
	assistantText := TitleStyle.Render(" - AGNETICT AI")

	endpoint := ""
	if a.dataModel.Config != nil && a.dataModel.Config.BaseURL != "" {
		endpoint = DimStyle.Render(" | " + a.dataModel.Config.BaseURL)
	}

	return appText + assistantText + endpoint
}

func (a AppView) renderStatusBar() string {
	if a.notice != "" {
		style := UserStyle
		if a.noticeIsError {
			style = DangerStyle
		}
		text := a.notice
		if a.width > 0 && runewidth.StringWidth(text) > a.width {
			text = runewidth.Truncate(text, a.width, "...")
		}
		return style.Render(text)
	}

	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+R %s  Alt+F %s  Alt+X %s  Alt+Y %s  Alt+Enter %s  Enter %s  Alt+H %s",
		descStyle.Render("Quit"),
		descStyle.Render("Reset"),
		descStyle.Render("Search"),
		descStyle.Render("Export"),
		descStyle.Render("Copy"),
		descStyle.Render("New Line"),
		descStyle.Render("Send"),
		descStyle.Render("Help"),
	)
	return StatusStyle.Render(statusBar)
}

func (a *AppView) closeAllModals() {
	a.showInfoModal = false
	a.showHelp = false
	a.showMessageSearch = false
	a.showAbout = false

	if a.messageSearchInput.Focused() {
		a.messageSearchInput.Blur()
	}
}
