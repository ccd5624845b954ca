package model

import (
	"foliochat/config"
	"foliochat/storage"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config      *config.Config
	Exchange    Exchanger
	Transcripts *storage.TranscriptStorage

	// Application data
	Session *Session

	// Runtime state (not UI)
	Quitting bool

	// Application metadata
	Version string
	License string
}

// NewModel creates a new Model with a freshly started session.
// transcripts may be nil, in which case exports fail with an error message.
func NewModel(cfg *config.Config, exchanger Exchanger, transcripts *storage.TranscriptStorage, version, license string) *Model {
	greeting := config.DefaultGreeting
	if cfg != nil && cfg.Greeting != "" {
		greeting = cfg.Greeting
	}

	m := &Model{
		Config:      cfg,
		Exchange:    exchanger,
		Transcripts: transcripts,
		Session:     NewSession(greeting),
		Version:     version,
		License:     license,
	}

	if config.DebugLog != nil {
		config.DebugLog.Debugw("session started", "session_id", m.Session.ID())
	}

	return m
}
