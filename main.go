package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"foliochat/config"
	"foliochat/exchange"
	"foliochat/storage"
	"foliochat/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

// showErrorModal displays a blocking error before the chat UI starts.
func showErrorModal(title, message string) {
	p := tea.NewProgram(
		ui.NewErrorModal(title, message),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		showErrorModal("Configuration Error", fmt.Sprintf(
			"%v\n\nFix %s or set FOLIOCHAT_BASE_URL before launching foliochat.",
			err, config.GetSettingsFilePath()))
		os.Exit(0)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir(), cfg.LogLevel)
	defer config.CloseDebugLog()

	client, err := exchange.NewClient(exchange.Config{BaseURL: cfg.BaseURL})
	if err != nil {
		showErrorModal("Configuration Error", err.Error())
		return
	}

	transcripts, err := storage.NewTranscriptStorage(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize transcript storage: %v\n", err)
		config.CloseDebugLog()
		os.Exit(1)
	}

	if config.DebugLog != nil {
		config.DebugLog.Infow("starting foliochat", "version", Version, "base_url", client.BaseURL())
	}

	p := tea.NewProgram(
		ui.NewAppView(cfg, client, transcripts, Version, License),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running foliochat: %v\n", err)
		config.CloseDebugLog()
		os.Exit(1)
	}
}
