package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type ExchangeConfig struct {
	BaseURL string `toml:"base_url"`
}

type ChatConfig struct {
	Greeting string `toml:"greeting"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// Settings mirrors settings.toml.
type Settings struct {
	DataDirectory string         `toml:"data_directory"`
	Exchange      ExchangeConfig `toml:"exchange"`
	Chat          ChatConfig     `toml:"chat"`
	Logging       LoggingConfig  `toml:"logging"`
}

type Config struct {
	DataDirectory string
	BaseURL       string
	Greeting      string
	LogLevel      string
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if baseURL := os.Getenv("FOLIOCHAT_BASE_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}
	if dataDir := os.Getenv("FOLIOCHAT_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

// Validate reports configuration the chat client cannot start with.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return fmt.Errorf("chat service URL is empty: set [exchange] base_url in %s or FOLIOCHAT_BASE_URL", GetSettingsFilePath())
	}

	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("chat service URL %q is invalid: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("chat service URL %q must start with http:// or https://", base)
	}
	if u.Host == "" {
		return fmt.Errorf("chat service URL %q has no host", base)
	}

	if strings.TrimSpace(c.DataDirectory) == "" {
		return fmt.Errorf("data directory is empty")
	}

	return nil
}

func fromSettings(s *Settings) *Config {
	return &Config{
		DataDirectory: s.DataDirectory,
		BaseURL:       s.Exchange.BaseURL,
		Greeting:      s.Chat.Greeting,
		LogLevel:      s.Logging.Level,
	}
}

// Load reads settings.toml (creating it from the template on first run),
// applies FOLIOCHAT_* overrides and makes sure the data directory exists.
func Load() (*Config, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	cfg := fromSettings(settings)
	cfg.applyEnvOverrides()

	defaults := DefaultSettings()
	if cfg.DataDirectory == "" {
		cfg.DataDirectory = defaults.DataDirectory
	}
	if cfg.Greeting == "" {
		cfg.Greeting = DefaultGreeting
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.Logging.Level
	}

	dataDir := cfg.DataDir()
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	return cfg, nil
}
