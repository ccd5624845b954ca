package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("FOLIOCHAT_BASE_URL", "")
	t.Setenv("FOLIOCHAT_DATA_DIR", "")
	t.Setenv("FOLIOCHAT_DEBUG", "")
	return home
}

func TestLoad_FirstRunCreatesSettings(t *testing.T) {
	withTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, SettingsExist())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultGreeting, cfg.Greeting)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NoError(t, cfg.Validate())

	info, err := os.Stat(GetSettingsFilePath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	info, err = os.Stat(cfg.DataDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLoad_TemplateRoundTrips(t *testing.T) {
	withTempHome(t)
	require.NoError(t, CreateDefaultSettings())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "~/.local/share/foliochat", settings.DataDirectory)
	assert.Equal(t, DefaultBaseURL, settings.Exchange.BaseURL)
	assert.Equal(t, DefaultGreeting, settings.Chat.Greeting)
	assert.Equal(t, "debug", settings.Logging.Level)
}

func TestLoad_ReadsSavedSettings(t *testing.T) {
	home := withTempHome(t)

	saved := &Settings{
		DataDirectory: filepath.Join(home, "chats"),
		Exchange:      ExchangeConfig{BaseURL: "https://chat.example.test/api"},
		Chat:          ChatConfig{Greeting: "Hi there"},
		Logging:       LoggingConfig{Level: "warn"},
	}
	require.NoError(t, SaveSettings(saved))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.test/api", cfg.BaseURL)
	assert.Equal(t, "Hi there", cfg.Greeting)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, "chats"), cfg.DataDir())
}

func TestLoad_EnvOverrides(t *testing.T) {
	home := withTempHome(t)
	t.Setenv("FOLIOCHAT_BASE_URL", "http://10.0.0.5:9000")
	t.Setenv("FOLIOCHAT_DATA_DIR", filepath.Join(home, "override"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.BaseURL)
	assert.Equal(t, filepath.Join(home, "override"), cfg.DataDir())
	assert.True(t, FileExists(cfg.DataDir()))
}

func TestLoad_EmptyFieldsFallBackToDefaults(t *testing.T) {
	withTempHome(t)
	require.NoError(t, EnsureDir(GetConfigDir()))
	require.NoError(t, os.WriteFile(GetSettingsFilePath(), []byte("data_directory = \"\"\n[chat]\ngreeting = \"\"\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultGreeting, cfg.Greeting)
	assert.Equal(t, GetDefaultDataDir(), cfg.DataDirectory)
}

func TestLoad_BadTOML(t *testing.T) {
	withTempHome(t)
	require.NoError(t, EnsureDir(GetConfigDir()))
	require.NoError(t, os.WriteFile(GetSettingsFilePath(), []byte("[exchange\nbase_url = "), 0600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr string
	}{
		{name: "http ok", baseURL: "http://localhost:8000"},
		{name: "https ok", baseURL: "https://example.test/chat-api/"},
		{name: "empty", baseURL: "  ", wantErr: "empty"},
		{name: "no scheme", baseURL: "localhost:8000", wantErr: "http://"},
		{name: "ftp", baseURL: "ftp://example.test", wantErr: "http://"},
		{name: "no host", baseURL: "http:///chat", wantErr: "no host"},
		{name: "unparseable", baseURL: "http://[::1", wantErr: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DataDirectory: "/tmp/x", BaseURL: tt.baseURL}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := withTempHome(t)
	t.Setenv("FOLIOCHAT_TEST_SUB", "sub")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, filepath.Clean(home), ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandPath("~/a/b"))
	assert.Equal(t, filepath.Join("/data", "sub"), ExpandPath("/data/$FOLIOCHAT_TEST_SUB/"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
		"":        zapcore.DebugLevel,
		"bogus":   zapcore.DebugLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func TestInitDebugLog(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(CloseDebugLog)

	t.Setenv("FOLIOCHAT_DEBUG", "")
	InitDebugLog(dir, "debug")
	assert.Nil(t, DebugLog)
	assert.False(t, FileExists(filepath.Join(dir, "debug.log")))

	t.Setenv("FOLIOCHAT_DEBUG", "1")
	InitDebugLog(dir, "debug")
	require.NotNil(t, DebugLog)

	DebugLog.Debugw("exchange request", "url", "http://localhost:8000/chat")
	CloseDebugLog()
	assert.Nil(t, DebugLog)

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"debug logging started"`)
	assert.Contains(t, lines[1], `"url":"http://localhost:8000/chat"`)
}

func TestInitDebugLog_RespectsLevel(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(CloseDebugLog)
	t.Setenv("FOLIOCHAT_DEBUG", "true")

	InitDebugLog(dir, "warn")
	require.NotNil(t, DebugLog)
	DebugLog.Debugw("hidden")
	DebugLog.Warnw("shown")
	CloseDebugLog()

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
