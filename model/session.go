package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidInput is returned by AppendUser for empty or whitespace-only text.
	ErrInvalidInput = errors.New("message is empty")
	// ErrPending is returned when an exchange is already outstanding.
	ErrPending = errors.New("waiting for the previous reply")
)

// Session is one conversation: a stable id, the ordered messages and
// whether a reply is outstanding. It is owned by the UI event loop and is
// not safe for concurrent use.
type Session struct {
	id       string
	greeting string
	messages []Message
	pending  bool
}

// NewSession returns a started session seeded with greeting.
func NewSession(greeting string) *Session {
	s := &Session{greeting: greeting}
	s.Start()
	return s
}

// Start issues a fresh id and leaves only the greeting.
func (s *Session) Start() {
	s.id = uuid.New().String()
	s.seed()
}

// Reset leaves only the greeting and clears pending. The id is kept so the
// remote service can be told which conversation to forget.
func (s *Session) Reset() {
	s.seed()
}

func (s *Session) seed() {
	s.messages = []Message{{
		Role:      RoleAssistant,
		Content:   s.greeting,
		Timestamp: time.Now(),
	}}
	s.pending = false
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Pending() bool { return s.pending }
func (s *Session) Len() int      { return len(s.messages) }

// Messages returns a copy of the conversation in display order.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Last returns the most recent message.
func (s *Session) Last() (Message, bool) {
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// LastReply returns the most recent assistant message that is not a failure.
func (s *Session) LastReply() (Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if m := s.messages[i]; m.Role == RoleAssistant && !m.Failed {
			return m, true
		}
	}
	return Message{}, false
}

// AppendUser adds the user's text verbatim and marks a reply as pending.
// Messages are unchanged when an error is returned.
func (s *Session) AppendUser(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidInput
	}
	if s.pending {
		return ErrPending
	}

	s.messages = append(s.messages, Message{
		Role:      RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	s.pending = true
	return nil
}

// AppendAssistant adds a reply and clears pending.
func (s *Session) AppendAssistant(text string) {
	s.appendAssistant(text, false)
}

// AppendFailure adds a locally written explanation of a failed exchange and
// clears pending.
func (s *Session) AppendFailure(text string) {
	s.appendAssistant(text, true)
}

func (s *Session) appendAssistant(text string, failed bool) {
	s.messages = append(s.messages, Message{
		Role:      RoleAssistant,
		Content:   text,
		Timestamp: time.Now(),
		Failed:    failed,
	})
	s.pending = false
}
