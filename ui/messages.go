package ui

import (
	"foliochat/model"
)

type Message = model.Message

// Message type aliases - these are defined in the model package
type exchangeReplyMsg = model.ExchangeReplyMsg
type exchangeErrorMsg = model.ExchangeErrorMsg
type remoteResetMsg = model.RemoteResetMsg
type transcriptExportedMsg = model.TranscriptExportedMsg
type flashTickMsg = model.FlashTickMsg

// noticeExpiredMsg clears the status bar notice with the matching seq.
type noticeExpiredMsg struct {
	seq int
}
