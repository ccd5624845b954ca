package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugLog is nil unless FOLIOCHAT_DEBUG is set; callers guard every use.
var DebugLog *zap.SugaredLogger

func CheckDebug() bool {
	debug := os.Getenv("FOLIOCHAT_DEBUG")
	return debug == "true" || debug == "1"
}

// NewLogger builds a JSON logger writing to outputPaths. The terminal
// belongs to the TUI, so nothing goes to stdout unless asked for.
func NewLogger(level string, outputPaths ...string) (*zap.Logger, error) {
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(parseLevel(level)),
		Development: false,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      outputPaths,
		ErrorOutputPaths: outputPaths,
	}

	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}

// InitDebugLog opens <dataDir>/debug.log when debugging is enabled.
func InitDebugLog(dataDir, level string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// debug.log may contain message text (0600)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}
	f.Close()

	logger, err := NewLogger(level, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not start debug log: %v\n", err)
		return
	}

	DebugLog = logger.Sugar()
	DebugLog.Infow("debug logging started", "path", logPath, "FOLIOCHAT_DEBUG", os.Getenv("FOLIOCHAT_DEBUG"))
}

// CloseDebugLog flushes and detaches the debug log.
func CloseDebugLog() {
	if DebugLog == nil {
		return
	}
	_ = DebugLog.Sync()
	DebugLog = nil
}
