package model

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a chat message in the conversation
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
	// Failed marks an assistant message written locally after a failed exchange
	Failed bool
}
