package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"foliochat/config"
	appmodel "foliochat/model"
)

const (
	noticeDuration = 4 * time.Second
	flashInterval  = 300 * time.Millisecond
	flashCycles    = 6
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST to handle TickMsg before anything else
	if a.dataModel.Session.Pending() {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		a.updateViewportContent(true)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1 line), separator (1 line), textarea (3 lines), and status bar (1 line)
		viewportHeight := max(a.height-6, 1)
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		model, keyCmd := a.handleKey(msg)
		return model, tea.Batch(append(cmds, keyCmd)...)

	case exchangeReplyMsg, exchangeErrorMsg:
		notice := a.dataModel.ApplyExchangeResult(msg)
		if !a.dataModel.Session.Pending() {
			a.textarea.Placeholder = inputPlaceholder
		}
		a.updateViewportContent(true)
		if notice != "" {
			cmds = append(cmds, a.setNotice(notice, true))
		}
		return a, tea.Batch(cmds...)

	case remoteResetMsg:
		a.dataModel.HandleRemoteReset(msg)
		return a, tea.Batch(cmds...)

	case transcriptExportedMsg:
		if msg.Err != nil {
			cmds = append(cmds, a.setNotice(fmt.Sprintf("Export failed: %v", msg.Err), true))
			return a, tea.Batch(cmds...)
		}
		a.closeAllModals()
		a.showInfoModal = true
		a.infoModalTitle = "Conversation Exported"
		a.infoModalMsg = fmt.Sprintf("Transcript saved to:\n%s", msg.Path)
		a.infoModalType = ModalTypeInfo
		return a, tea.Batch(cmds...)

	case flashTickMsg:
		if a.highlightFlashCount > 0 && a.highlightFlashCount < flashCycles {
			a.highlightFlashCount++
			a.updateViewportContent(false)
			return a, tea.Tick(flashInterval, func(time.Time) tea.Msg {
				return flashTickMsg{}
			})
		}
		a.highlightedMessageIdx = -1
		a.highlightFlashCount = 0
		a.updateViewportContent(false)
		return a, nil

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
			a.noticeIsError = false
		}
		return a, tea.Batch(cmds...)
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// PRIORITY 0: Always-global shortcuts
	switch msg.String() {
	case "ctrl+c", "alt+q":
		if config.DebugLog != nil {
			config.DebugLog.Debugw("quit requested", "key", msg.String())
		}
		a.dataModel.Quitting = true
		return a, tea.Quit
	}

	// PRIORITY 1: Modal input routing
	if a.showInfoModal {
		switch msg.String() {
		case "enter", "esc":
			a.showInfoModal = false
		}
		return a, nil
	}

	if a.showMessageSearch {
		return a.handleMessageSearchUpdate(msg)
	}

	if a.showHelp {
		switch msg.String() {
		case "esc", "alt+h":
			a.showHelp = false
		}
		return a, nil
	}

	if a.showAbout {
		switch msg.String() {
		case "esc", "alt+a":
			a.showAbout = false
		}
		return a, nil
	}

	// PRIORITY 2: Main view shortcuts
	switch msg.String() {
	case "enter":
		return a.submitInput()

	case "alt+h":
		a.closeAllModals()
		a.showHelp = true
		return a, nil

	case "alt+a":
		a.closeAllModals()
		a.showAbout = true
		return a, nil

	case "alt+f":
		a.closeAllModals()
		a.showMessageSearch = true
		a.messageSearchInput.SetValue("")
		a.messageSearchResults = nil
		a.selectedSearchIdx = 0
		a.messageSearchScrollIdx = 0
		focusCmd := a.messageSearchInput.Focus()
		return a, focusCmd

	case "alt+r":
		return a.resetConversation()

	case "alt+x":
		return a, a.dataModel.ExportTranscript()

	case "alt+y":
		reply, ok := a.dataModel.Session.LastReply()
		if !ok {
			cmd := a.setNotice("Nothing to copy yet", false)
			return a, cmd
		}
		if err := clipboard.WriteAll(reply.Content); err != nil {
			cmd := a.setNotice(fmt.Sprintf("Copy failed: %v", err), true)
			return a, cmd
		}
		cmd := a.setNotice("Copied last reply to clipboard", false)
		return a, cmd

	case "alt+c":
		if err := clipboard.WriteAll(a.dataModel.ConversationText()); err != nil {
			cmd := a.setNotice(fmt.Sprintf("Copy failed: %v", err), true)
			return a, cmd
		}
		cmd := a.setNotice("Copied conversation to clipboard", false)
		return a, cmd

	case "alt+j", "alt+down":
		a.viewport.HalfViewDown()
		return a, nil

	case "alt+k", "alt+up":
		a.viewport.HalfViewUp()
		return a, nil

	case "alt+J", "pgdown":
		a.viewport.ViewDown()
		return a, nil

	case "alt+K", "pgup":
		a.viewport.ViewUp()
		return a, nil

	case "alt+g":
		a.viewport.GotoTop()
		return a, nil

	case "alt+G":
		a.viewport.GotoBottom()
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// submitInput sends the textarea contents. The input is left untouched
// when the message is rejected.
func (a AppView) submitInput() (tea.Model, tea.Cmd) {
	if a.dataModel.Session.Pending() {
		return a, nil
	}

	sendCmd, err := a.dataModel.SendMessage(a.textarea.Value())
	switch {
	case errors.Is(err, appmodel.ErrInvalidInput):
		return a, nil
	case err != nil:
		cmd := a.setNotice(err.Error(), true)
		return a, cmd
	}

	a.textarea.Reset()
	a.textarea.Placeholder = waitingPlaceholder
	a.loadingSpinner = newLoadingSpinner()
	a.updateViewportContent(true)

	return a, tea.Batch(sendCmd, a.loadingSpinner.Tick)
}

func (a AppView) resetConversation() (tea.Model, tea.Cmd) {
	resetCmd, err := a.dataModel.ResetConversation()
	if errors.Is(err, appmodel.ErrPending) {
		cmd := a.setNotice("Wait for the reply before resetting", true)
		return a, cmd
	}
	if err != nil {
		cmd := a.setNotice(err.Error(), true)
		return a, cmd
	}

	a.highlightedMessageIdx = -1
	a.highlightFlashCount = 0
	a.textarea.Reset()
	a.updateViewportContent(true)

	noticeCmd := a.setNotice("Conversation reset", false)
	return a, tea.Batch(resetCmd, noticeCmd, textarea.Blink)
}

// setNotice shows text in the status bar until it expires or is replaced.
func (a *AppView) setNotice(text string, isErr bool) tea.Cmd {
	a.noticeSeq++
	a.notice = text
	a.noticeIsError = isErr

	seq := a.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
