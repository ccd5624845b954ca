package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Message is the on-disk form of one conversation message.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Failed    bool      `json:"failed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is an exported conversation.
type Transcript struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SessionID  string    `json:"session_id"`
	BaseURL    string    `json:"base_url,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
	Messages   []Message `json:"messages"`
}

// TranscriptMetadata is a lightweight version of Transcript for listing
type TranscriptMetadata struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SessionID    string    `json:"session_id"`
	ExportedAt   time.Time `json:"exported_at"`
	MessageCount int       `json:"message_count"`
	Path         string    `json:"-"`
}

// TranscriptStorage writes transcripts under <dataDir>/transcripts.
type TranscriptStorage struct {
	dir string
}

func NewTranscriptStorage(dataDir string) (*TranscriptStorage, error) {
	dir := filepath.Join(dataDir, "transcripts")

	// 0700 - user-only access
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create transcripts directory: %w", err)
	}

	return &TranscriptStorage{dir: dir}, nil
}

func (s *TranscriptStorage) Dir() string {
	return s.dir
}

// Export writes t into the transcripts directory and returns the file path.
// ID, ExportedAt and Title are filled in when empty.
func (s *TranscriptStorage) Export(t *Transcript) (string, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.ExportedAt.IsZero() {
		t.ExportedAt = time.Now()
	}
	if t.Title == "" {
		t.Title = GenerateTitle(firstUserMessage(t.Messages))
	}

	path := filepath.Join(s.dir, GenerateExportFilename(t.Title, t.ExportedAt))
	if err := WriteTranscript(t, path); err != nil {
		return "", err
	}

	return path, nil
}

// WriteTranscript writes t to an explicit path, creating parent directories.
func WriteTranscript(t *Transcript, path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// 0600 - transcripts contain conversation data
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}

	return nil
}

func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}

	return &t, nil
}

// List returns metadata for all exported transcripts, newest first.
func (s *TranscriptStorage) List() ([]TranscriptMetadata, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcripts directory: %w", err)
	}

	var transcripts []TranscriptMetadata

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		t, err := LoadTranscript(path)
		if err != nil {
			continue // Skip corrupted files
		}

		transcripts = append(transcripts, TranscriptMetadata{
			ID:           t.ID,
			Title:        t.Title,
			SessionID:    t.SessionID,
			ExportedAt:   t.ExportedAt,
			MessageCount: len(t.Messages),
			Path:         path,
		})
	}

	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].ExportedAt.After(transcripts[j].ExportedAt)
	})

	return transcripts, nil
}

// SanitizeFilename removes or replaces characters that are invalid in filenames
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-", "\"", "-",
		"<", "-", ">", "-", "|", "-", " ", "-", "\n", "-", "\r", "-", "\t", "-",
	)
	name = replacer.Replace(name)

	name = strings.Trim(name, "-.")

	if len(name) > 50 {
		name = strings.TrimRight(truncateBytes(name, 50), "-.")
	}

	if name == "" {
		name = "conversation"
	}

	return name
}

// GenerateExportFilename builds foliochat-<title>-<timestamp>.json.
func GenerateExportFilename(title string, at time.Time) string {
	return fmt.Sprintf("foliochat-%s-%s.json", SanitizeFilename(title), at.Format("20060102-150405.000"))
}

// GenerateTitle names a transcript after its first user message.
func GenerateTitle(firstMessage string) string {
	name := strings.Join(strings.Fields(firstMessage), " ")
	if name == "" {
		return fmt.Sprintf("Conversation %s", time.Now().Format("Jan 2, 3:04 PM"))
	}

	if len(name) > 30 {
		name = truncateBytes(name, 30) + "..."
	}

	return name
}

func firstUserMessage(messages []Message) string {
	for _, m := range messages {
		if m.Role == "user" {
			return m.Content
		}
	}
	return ""
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
