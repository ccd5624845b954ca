package model

import "context"

// Exchanger is the remote side of a conversation; *exchange.Client
// satisfies it.
type Exchanger interface {
	// Send delivers one user message and returns the assistant's reply.
	Send(ctx context.Context, sessionID, text string) (string, error)

	// ResetRemote asks the service to forget sessionID.
	ResetRemote(ctx context.Context, sessionID string) error
}
