package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliochat/exchange"
	"foliochat/model/testutil"
	"foliochat/render"
	"foliochat/storage"
)

func newTestView(t *testing.T, ex *testutil.MockExchanger) AppView {
	t.Helper()
	ts, err := storage.NewTranscriptStorage(t.TempDir())
	require.NoError(t, err)

	a := NewAppView(testutil.TestConfig("http://localhost:8000"), ex, ts, "test", "Apache-2.0")
	return update(t, a, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, a AppView, msg tea.Msg) AppView {
	t.Helper()
	next, _ := a.Update(msg)
	view, ok := next.(AppView)
	require.True(t, ok, "got %T", next)
	return view
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func sendText(t *testing.T, a AppView, text string) AppView {
	t.Helper()
	a.textarea.SetValue(text)
	return update(t, a, enterKey)
}

func TestView_BeforeWindowSize(t *testing.T) {
	a := NewAppView(testutil.TestConfig(""), testutil.NewMockExchanger("ok"), nil, "", "")
	assert.Equal(t, "Loading foliochat...", a.View())
}

func TestEnter_SendsAndGatesWhilePending(t *testing.T) {
	mock := testutil.NewMockExchanger("ok")
	a := newTestView(t, mock)

	a = sendText(t, a, "hello")
	assert.True(t, a.dataModel.Session.Pending())
	assert.Equal(t, 2, a.dataModel.Session.Len())
	assert.Empty(t, a.textarea.Value())
	assert.Contains(t, a.renderConversation(), waitingPlaceholder)

	a = sendText(t, a, "again")
	assert.Equal(t, 2, a.dataModel.Session.Len(), "enter is ignored while a reply is pending")
	assert.Equal(t, "again", a.textarea.Value())

	a = update(t, a, exchangeReplyMsg{SessionID: a.dataModel.Session.ID(), Reply: testutil.MarkdownReply})
	assert.False(t, a.dataModel.Session.Pending())
	assert.Equal(t, 3, a.dataModel.Session.Len())
	assert.Equal(t, inputPlaceholder, a.textarea.Placeholder)

	conv := a.renderConversation()
	assert.Contains(t, conv, "hello")
	assert.Contains(t, conv, "Projects")
	assert.Contains(t, conv, "Portfolio")
	assert.NotContains(t, conv, waitingPlaceholder)
}

func TestEnter_IgnoresBlankInput(t *testing.T) {
	a := newTestView(t, testutil.NewMockExchanger("ok"))

	a = sendText(t, a, "   \n  ")
	assert.False(t, a.dataModel.Session.Pending())
	assert.Equal(t, 1, a.dataModel.Session.Len())
	assert.Empty(t, a.notice)
}

func TestExchangeError_ShowsFailure(t *testing.T) {
	a := newTestView(t, testutil.NewMockExchanger("ok"))
	a = sendText(t, a, "hello")

	a = update(t, a, exchangeErrorMsg{
		SessionID: a.dataModel.Session.ID(),
		Err:       &exchange.ServerError{Status: 500},
	})

	assert.False(t, a.dataModel.Session.Pending())
	assert.True(t, a.noticeIsError)
	assert.Equal(t, "Chat service error (HTTP 500)", a.notice)
	assert.Contains(t, a.renderConversation(), "Assistant ✗")
	assert.Contains(t, a.renderStatusBar(), "Chat service error")
}

func TestNoticeExpiry(t *testing.T) {
	a := newTestView(t, testutil.NewMockExchanger("ok"))

	a.setNotice("first", false)
	stale := a.noticeSeq
	a.setNotice("second", false)

	a = update(t, a, noticeExpiredMsg{seq: stale})
	assert.Equal(t, "second", a.notice)

	a = update(t, a, noticeExpiredMsg{seq: a.noticeSeq})
	assert.Empty(t, a.notice)
	assert.Contains(t, a.renderStatusBar(), "Quit")
}

func TestReset(t *testing.T) {
	mock := testutil.NewMockExchanger("ok")
	a := newTestView(t, mock)

	a = sendText(t, a, "hello")
	a = update(t, a, altKey('r'))
	assert.Equal(t, 2, a.dataModel.Session.Len(), "reset is refused while pending")
	assert.True(t, a.noticeIsError)

	a = update(t, a, exchangeReplyMsg{SessionID: a.dataModel.Session.ID(), Reply: "hi"})
	a = update(t, a, altKey('r'))
	assert.Equal(t, 1, a.dataModel.Session.Len())
	assert.Equal(t, "Conversation reset", a.notice)
	assert.Contains(t, a.renderConversation(), testutil.TestGreeting)
}

func TestExportResult_ShowsInfoModal(t *testing.T) {
	a := newTestView(t, testutil.NewMockExchanger("ok"))

	msg, ok := a.dataModel.ExportTranscript()().(transcriptExportedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	a = update(t, a, msg)
	assert.True(t, a.showInfoModal)
	assert.Contains(t, a.infoModalMsg, msg.Path)
	assert.Contains(t, a.View(), "Conversation Exported")

	a = update(t, a, enterKey)
	assert.False(t, a.showInfoModal)
	assert.Equal(t, 1, a.dataModel.Session.Len(), "enter closing a modal does not send")
}

func TestModalToggles(t *testing.T) {
	a := newTestView(t, testutil.NewMockExchanger("ok"))

	a = update(t, a, altKey('h'))
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")
	a = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, a.showHelp)

	a = update(t, a, altKey('a'))
	assert.True(t, a.showAbout)
	assert.Contains(t, a.View(), "Apache-2.0")
	a = update(t, a, altKey('a'))
	assert.False(t, a.showAbout)
}

func TestMessageSearch_JumpsToMatch(t *testing.T) {
	a := newTestView(t, testutil.NewMockExchanger("ok"))
	a = sendText(t, a, "projects please")
	a = update(t, a, exchangeReplyMsg{SessionID: a.dataModel.Session.ID(), Reply: testutil.MarkdownReply})

	a = update(t, a, altKey('f'))
	require.True(t, a.showMessageSearch)

	a = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Portfolio")})
	require.NotEmpty(t, a.messageSearchResults)
	assert.Equal(t, 2, a.messageSearchResults[0].MessageIndex)
	assert.Contains(t, a.View(), "Found")

	a = update(t, a, enterKey)
	assert.False(t, a.showMessageSearch)
	assert.Equal(t, 2, a.highlightedMessageIdx)
	assert.Equal(t, 1, a.highlightFlashCount)
	assert.Equal(t, 3, a.dataModel.Session.Len())

	for i := 0; i < flashCycles; i++ {
		a = update(t, a, flashTickMsg{})
	}
	assert.Equal(t, -1, a.highlightedMessageIdx)
	assert.Zero(t, a.highlightFlashCount)
}

func TestRenderBlocks(t *testing.T) {
	out := renderBlocks(render.Structure(testutil.MarkdownReply), 80)

	assert.Contains(t, out, "Projects")
	assert.Contains(t, out, bulletPrefix)
	assert.Contains(t, out, "Portfolio")
	assert.Contains(t, out, "(https://example.test/portfolio)")
	assert.Contains(t, out, "Agent")
	assert.Contains(t, out, "─")
	assert.Contains(t, out, "https://example.test/blog")
	assert.NotContains(t, out, "(https://example.test/blog)", "bare URLs are not repeated")
	assert.NotContains(t, out, "*Agent*")
	assert.NotContains(t, out, "## ")
}

func TestRenderListItem_HangingIndent(t *testing.T) {
	item := render.Tokenize(strings.Repeat("word ", 20))
	out := renderListItem(item, 30)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], bulletPrefix))
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "    "), "continuation line %q", line)
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "short line", 20, "short line"},
		{"wraps", "aaa bbb ccc", 7, "aaa bbb\nccc"},
		{"keeps blank lines", "a\n\nb", 10, "a\n\nb"},
		{"zero width", "unchanged text", 0, "unchanged text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordWrap(tt.text, tt.width))
		})
	}
}

func TestErrorModal(t *testing.T) {
	m := NewErrorModal("Configuration Error", "base_url is invalid")
	assert.Equal(t, "Terminal too small", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := next.View()
	assert.Contains(t, view, "Configuration Error")
	assert.Contains(t, view, "Press Enter to quit")

	_, cmd := next.Update(enterKey)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
