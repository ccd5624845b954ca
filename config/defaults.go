package config

const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultGreeting = "Hello! I'm powered by AGNETICT AI. Ask me anything about AI, technology, or Anshul's work."
)

func DefaultSettings() *Settings {
	return &Settings{
		DataDirectory: GetDefaultDataDir(),
		Exchange: ExchangeConfig{
			BaseURL: DefaultBaseURL,
		},
		Chat: ChatConfig{
			Greeting: DefaultGreeting,
		},
		Logging: LoggingConfig{
			Level: "debug",
		},
	}
}

func GenerateSettingsTemplate() string {
	return `# foliochat Configuration
# Location: ~/.config/foliochat/settings.toml
# This file uses TOML format: https://toml.io

# Directory for exported transcripts and debug.log
data_directory = "~/.local/share/foliochat"

[exchange]
# Root URL of the chat service (POST /chat, POST /reset)
# Override with FOLIOCHAT_BASE_URL
base_url = "` + DefaultBaseURL + `"

[chat]
# First assistant message of every conversation
greeting = "` + DefaultGreeting + `"

[logging]
# Level for debug.log when FOLIOCHAT_DEBUG=1 (debug, info, warn, error)
level = "debug"
`
}
