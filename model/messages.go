package model

// ExchangeReplyMsg carries a successful reply for SessionID.
type ExchangeReplyMsg struct {
	SessionID string
	Reply     string
}

// ExchangeErrorMsg carries a failed exchange for SessionID.
type ExchangeErrorMsg struct {
	SessionID string
	Err       error
}

type RemoteResetMsg struct {
	SessionID string
	Err       error
}

type TranscriptExportedMsg struct {
	Path string
	Err  error
}

type FlashTickMsg struct{}
