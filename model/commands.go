package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"foliochat/config"
	"foliochat/exchange"
	"foliochat/storage"
)

// failureDetailWidth bounds how much of a server error body is shown.
const failureDetailWidth = 200

// SendMessage appends text as a user message and returns a command that
// performs the exchange, yielding ExchangeReplyMsg or ExchangeErrorMsg.
// No request is made when an error is returned.
func (m *Model) SendMessage(text string) (tea.Cmd, error) {
	if m.Exchange == nil {
		return nil, fmt.Errorf("chat service is not configured")
	}
	if err := m.Session.AppendUser(text); err != nil {
		return nil, err
	}

	exchanger := m.Exchange
	sessionID := m.Session.ID()

	if config.DebugLog != nil {
		config.DebugLog.Debugw("sending message", "session_id", sessionID, "chars", len(text))
	}

	return func() tea.Msg {
		reply, err := exchanger.Send(context.Background(), sessionID, text)
		if err != nil {
			return ExchangeErrorMsg{SessionID: sessionID, Err: err}
		}
		return ExchangeReplyMsg{SessionID: sessionID, Reply: reply}
	}, nil
}

// ApplyExchangeResult records the outcome of SendMessage's command in the
// session and returns a short notification for the status bar ("" when
// there is nothing to report). Results that arrive when no exchange is
// pending are ignored.
func (m *Model) ApplyExchangeResult(msg tea.Msg) string {
	switch msg := msg.(type) {
	case ExchangeReplyMsg:
		if !m.Session.Pending() || msg.SessionID != m.Session.ID() {
			return ""
		}
		m.Session.AppendAssistant(msg.Reply)
		if config.DebugLog != nil {
			config.DebugLog.Debugw("reply received", "session_id", msg.SessionID, "chars", len(msg.Reply))
		}
		return ""

	case ExchangeErrorMsg:
		if !m.Session.Pending() || msg.SessionID != m.Session.ID() {
			return ""
		}
		m.Session.AppendFailure(FailureText(msg.Err))
		if config.DebugLog != nil {
			config.DebugLog.Warnw("exchange failed", "session_id", msg.SessionID, "error", msg.Err)
		}
		return FailureNotification(msg.Err)
	}

	return ""
}

// FailureText is the assistant-style message shown in the conversation
// after a failed exchange.
func FailureText(err error) string {
	var se *exchange.ServerError
	var ne *exchange.NetworkError

	switch {
	case errors.As(err, &se):
		text := fmt.Sprintf("Sorry, the chat service returned an error (HTTP %d). Please try again in a moment.", se.Status)
		if se.Body != "" {
			text += "\n\n*Details:* " + storage.Preview(se.Body, failureDetailWidth)
		}
		return text

	case errors.As(err, &ne):
		return "I couldn't reach the chat service (" + ne.Detail + ").\n\n" +
			"- Check that the server is running and the base URL is correct\n" +
			"- If it is hosted separately, make sure it allows cross-origin (CORS) requests from this client"

	case errors.Is(err, exchange.ErrMalformedResponse):
		return "The chat service sent a reply I couldn't read. Please try again."

	case err == nil:
		return "Something went wrong, but no error was reported."

	default:
		return "Something went wrong: " + err.Error()
	}
}

// FailureNotification is the one-line status bar text for a failed exchange.
func FailureNotification(err error) string {
	var se *exchange.ServerError

	switch {
	case errors.As(err, &se):
		return fmt.Sprintf("Chat service error (HTTP %d)", se.Status)
	case exchange.IsNetworkError(err):
		return "Cannot reach chat service"
	case errors.Is(err, exchange.ErrMalformedResponse):
		return "Unreadable reply from chat service"
	default:
		return "Message failed"
	}
}

// ResetConversation clears the conversation locally right away and returns
// a command that asks the service to forget the same session id, yielding
// RemoteResetMsg. The local reset never depends on the remote result.
// Returns ErrPending while an exchange is outstanding.
func (m *Model) ResetConversation() (tea.Cmd, error) {
	if m.Session.Pending() {
		return nil, ErrPending
	}

	sessionID := m.Session.ID()
	m.Session.Reset()

	if config.DebugLog != nil {
		config.DebugLog.Debugw("conversation reset", "session_id", sessionID)
	}

	if m.Exchange == nil {
		return nil, nil
	}

	exchanger := m.Exchange
	return func() tea.Msg {
		err := exchanger.ResetRemote(context.Background(), sessionID)
		return RemoteResetMsg{SessionID: sessionID, Err: err}
	}, nil
}

// HandleRemoteReset logs the outcome of a remote reset. Failures are
// never surfaced in the conversation.
func (m *Model) HandleRemoteReset(msg RemoteResetMsg) {
	if config.DebugLog == nil {
		return
	}
	if msg.Err != nil {
		config.DebugLog.Warnw("remote reset failed", "session_id", msg.SessionID, "error", msg.Err)
		return
	}
	config.DebugLog.Debugw("remote reset done", "session_id", msg.SessionID)
}

// ExportTranscript writes the conversation as JSON into the transcripts
// directory and yields TranscriptExportedMsg.
func (m *Model) ExportTranscript() tea.Cmd {
	transcripts := m.Transcripts
	t := &storage.Transcript{
		SessionID: m.Session.ID(),
		Messages:  toStorageMessages(m.Session.Messages()),
	}
	if m.Config != nil {
		t.BaseURL = m.Config.BaseURL
	}

	return func() tea.Msg {
		if transcripts == nil {
			return TranscriptExportedMsg{Err: fmt.Errorf("transcript storage not initialized")}
		}
		path, err := transcripts.Export(t)
		return TranscriptExportedMsg{Path: path, Err: err}
	}
}

// SearchMessages fuzzy-searches the current conversation.
func (m *Model) SearchMessages(query string) []storage.MessageMatch {
	return storage.SearchMessages(toStorageMessages(m.Session.Messages()), query)
}

// ConversationText renders the conversation as plain text for the clipboard.
func (m *Model) ConversationText() string {
	var b strings.Builder
	for i, msg := range m.Session.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(RoleLabel(msg.Role))
		b.WriteString(": ")
		b.WriteString(msg.Content)
	}
	return b.String()
}

func RoleLabel(r Role) string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

func toStorageMessages(messages []Message) []storage.Message {
	out := make([]storage.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, storage.Message{
			Role:      string(msg.Role),
			Content:   msg.Content,
			Failed:    msg.Failed,
			Timestamp: msg.Timestamp,
		})
	}
	return out
}
